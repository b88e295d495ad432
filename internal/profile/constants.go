package profile

// Defaults
const (
	DefaultHistoryLimit = 1000
)

// Log messages
const (
	LogMsgProfileCreated   = "Created new user profile"
	LogMsgOutcomeRecorded  = "Recorded activity outcome"
	LogMsgProfileLoadError = "Failed to load profile"
)

// Error messages
const (
	ErrMsgEmptyUserID    = "user id is required"
	ErrMsgLoadProfile    = "failed to load profile"
	ErrMsgRecordActivity = "failed to record activity"
)
