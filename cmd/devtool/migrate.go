package main

import (
	"context"
	"fmt"

	"github.com/osse101/EcoHunt_Go/internal/database"
)

// MigrateCommand runs goose migrations in-process against the configured
// database
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status, reset)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: %s, %s, %s, %s",
			database.MigrateUp, database.MigrateDown, database.MigrateStatus, database.MigrateReset)
	}
	subcmd := args[0]
	dir := getEnv("MIGRATIONS_DIR", defaultMigrations)

	header(fmt.Sprintf("Migrations: %s", subcmd))
	status(statusInfo, "Directory: %s", dir)

	if err := database.RunMigrations(context.Background(), databaseURL(), dir, subcmd); err != nil {
		return err
	}

	status(statusSuccess, "Migration command %q complete", subcmd)
	return nil
}
