package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// GooseDialect is the goose dialect for PostgreSQL
	GooseDialect = "postgres"

	// PgxDriverName is the database/sql driver registered by pgx/v5/stdlib
	PgxDriverName = "pgx"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToOpenMigrationDB = "failed to open migration connection"
	ErrMsgFailedToSetDialect      = "failed to set goose dialect"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
	ErrMsgUnknownMigrateCommand   = "unknown migrate command"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)

// Migrate commands understood by RunMigrations
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
	MigrateReset  = "reset"
)
