package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgRequestTooLarge       = "Request body too large"

	// Query and path parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingPathParam  = "Missing %s path parameter"
	ErrMsgInvalidLimit      = "limit must be a positive integer"
)

// Log messages
const (
	LogMsgDecodeFailed          = "Failed to decode request"
	LogMsgRequestDecoded        = "Request decoded"
	LogMsgServiceCallFailed     = "Service call failed"
	LogMsgActivityProcessed     = "Activity processed"
	LogMsgBatchProcessed        = "Activity batch processed"
	LogMsgStreamDecodeFailed    = "Failed to decode streamed submission"
	LogMsgStreamWriteFailed     = "Failed to write streamed result"
	LogMsgStreamClosed          = "Activity stream closed"
	LogMsgRewardIssued          = "Reward issuance retried"
	LogMsgReadinessCheckFailed  = "Readiness check failed"
	LogMsgEncodeResponseFailed  = "Failed to encode JSON response"
	LogMsgWriteResponseFailed   = "Failed to write response buffer"
	LogMsgOddRequestFieldsCount = "LogRequestFields called with odd number of arguments"
)

// Request limits
const (
	// MaxBatchSize caps the submissions accepted by one batch request
	MaxBatchSize = 100

	// DefaultEventsLimit and MaxEventsLimit bound the user event listing
	DefaultEventsLimit = 50
	MaxEventsLimit     = 500

	// ContentTypeNDJSON is used by the streaming activity endpoint
	ContentTypeNDJSON = "application/x-ndjson"
)

// Query and path parameter names
const (
	ParamUserID    = "userID"
	ParamEventType = "type"
	ParamLimit     = "limit"
)
