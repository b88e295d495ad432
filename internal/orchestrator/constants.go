package orchestrator

import "time"

// DefaultSubmissionTimeout bounds one submission when no timeout is configured
const DefaultSubmissionTimeout = 30 * time.Second

// Summary limits
const (
	TopActivitiesLimit = 5
	CommonIssuesLimit  = 5
)

// ID prefixes
const (
	ProcessIDPrefix = "eco_"
	BatchIDPrefix   = "batch_"
)

// PhotoArchivePrefix prefixes the keys of photos archived after success
const PhotoArchivePrefix = "photos/"

// Metadata keys attached to issuance requests
const (
	IssueMetaActivityType = "activity_type"
	IssueMetaUserID       = "user_id"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgProcessingStarted   = "Processing activity submission"
	LogMsgProcessingCompleted = "Activity submission processed"
	LogMsgProcessingFailed    = "Activity submission failed, granting fallback reward"
	LogMsgPipelinePanic       = "Recovered panic in processing pipeline"
	LogMsgIssuanceFailed      = "Reward issuance failed, reward kept"
	LogMsgIssuanceSkipped     = "Reward issuance skipped"
	LogMsgBatchStarted        = "Processing submission batch"
	LogMsgBatchCompleted      = "Submission batch processed"
	LogMsgBatchSubmitFailed   = "Could not queue batch item, processing inline"
	LogMsgMonitorStopped      = "Activity stream monitor stopped"
	LogMsgEffectPanic         = "Recovered panic while settling submission"
	LogMsgPhotoArchiveFailed  = "Could not archive submission photo"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgPanic           = "panic"
	ErrMsgPhotoStoreUnset = "photo reference given but no photo store is configured"
	ErrMsgFetchPhoto      = "failed to fetch photo"
	ErrMsgStepCancelled   = "stopped before"
	ErrMsgSettled         = "submission already settled"
)

// Pipeline step names used in errors and logs
const (
	StepVerification = "verification"
	StepImpact       = "impact"
	StepValidation   = "validation"
	StepBehavior     = "behavior"
	StepReward       = "reward"
	StepGamification = "gamification"
	StepIssuance     = "issuance"
)
