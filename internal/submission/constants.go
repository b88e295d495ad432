package submission

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgProfileHydrated      = "Loaded stored profile for submission"
	LogMsgRecordOutcomeFailed  = "Failed to record activity outcome"
	LogMsgIssuanceRetried      = "Reward issuance retried"
	LogMsgIssuanceRetryFailed  = "Reward issuance retry failed"
	LogMsgIssuanceRetryRefused = "Reward already issued, retry refused"
	LogMsgSaveIssuanceFailed   = "Failed to store issuance record"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgLoadProfile     = "failed to load user profile"
	ErrMsgLoadHistory     = "failed to load user history"
	ErrMsgNoIssuer        = "no issuer configured"
	ErrMsgNoIssuanceStore = "no issuance store configured"
)

// IssuanceLockPrefix keys the lock serializing retries of one process
const IssuanceLockPrefix = "issuance:"
