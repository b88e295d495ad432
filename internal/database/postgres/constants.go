package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeForeignKeyViolation is raised when history references a missing profile
	PgErrorCodeForeignKeyViolation = "23503"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToCommit           = "failed to commit transaction"
	ErrMsgFailedToUpsertProfile    = "failed to upsert profile"
	ErrMsgFailedToInsertHistory    = "failed to insert history entry"
	ErrMsgFailedToQueryHistory     = "failed to query history"
	ErrMsgFailedToMarshalPayload   = "failed to marshal event payload"
	ErrMsgFailedToSaveIssuance     = "failed to save issuance record"
	ErrMsgFailedToQueryIssuance    = "failed to query issuance record"
)

// Log Messages
const (
	LogMsgFailedToRollback = "Failed to rollback transaction"
)
