package event

import "time"

// EventSchemaVersion is stamped on every published event
const EventSchemaVersion = "1.0"

// MetadataProcessID is the metadata key carrying the submission's process ID
const MetadataProcessID = "process_id"

// RetryQueueBufferSize bounds the events waiting for a retry
const RetryQueueBufferSize = 1000

// Dead-letter files
const (
	DeadLetterFilePermissions = 0o644
	DeadLetterDirPermissions  = 0o755
	DeadLetterMaxLineBytes    = 1 << 20

	// DeadLetterReplayedSuffix is appended to a file once it was replayed
	DeadLetterReplayedSuffix = ".replayed-%s"
	DeadLetterReplayedLayout = "20060102-150405"
)

// Error messages
const (
	ErrMsgDeadLetterOpen   = "failed to open dead-letter file"
	ErrMsgDeadLetterRotate = "failed to rotate dead-letter file"
)

// Log messages
const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgDeadLetterLineSkipped = "Skipping malformed dead-letter line"
	LogMsgDeadLettersReplayed   = "Dead-lettered events replayed"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay returns baseDelay * 2^(attempt-1)
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
