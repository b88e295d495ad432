package eventlog

// Payload keys read from event payloads
const (
	PayloadKeyUserID = "user_id"
)

// Query limits
const (
	DefaultUserEventLimit = 50
	MaxUserEventLimit     = 500
)

// Log messages - service events
const (
	LogMsgEventPayloadNotMap = "Event payload is not an object, skipping log"
	LogMsgFailedToLogEvent   = "Failed to log event to database"
	LogMsgEventLogged        = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobDisabled  = "Event log retention disabled, skipping cleanup"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldUserID        = "user_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retention_days"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deleted_count"
)
