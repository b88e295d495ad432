package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// RunMigrations runs a goose command against the database at connString
func RunMigrations(ctx context.Context, connString, dir, command string) error {
	db, err := sql.Open(PgxDriverName, connString)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToOpenMigrationDB, err)
	}
	defer db.Close()

	if err := goose.SetDialect(GooseDialect); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetDialect, err)
	}

	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, db, dir)
	case MigrateDown:
		err = goose.DownContext(ctx, db, dir)
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, dir)
	case MigrateReset:
		err = goose.ResetContext(ctx, db, dir)
	default:
		return fmt.Errorf("%s: %q", ErrMsgUnknownMigrateCommand, command)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	logger.FromContext(ctx).Info(LogMsgMigrationsApplied, "command", command, "dir", dir)
	return nil
}

// Migrate applies all pending migrations
func Migrate(ctx context.Context, connString, dir string) error {
	return RunMigrations(ctx, connString, dir, MigrateUp)
}
