package config

import "time"

// Default file locations. The tokenomics and catalog files are embedded
// unless TOKENOMICS_PATH or GAMIFICATION_CATALOG_PATH point elsewhere.
const (
	DefaultMigrationsDir  = "migrations"
	DefaultDeadLetterPath = "logs/deadletter.jsonl"
)

// Photo store backends
const (
	PhotoStoreMemory = "memory"
	PhotoStoreS3     = "s3"
)

// Reward issuance backends
const (
	IssuerSimulated = "simulated"
	IssuerEthereum  = "ethereum"
	IssuerDisabled  = "disabled"
)

// Verification failure policies
const (
	VerificationPolicyDegrade = "degrade"
	VerificationPolicyAbort   = "abort"
)

// Defaults
const (
	DefaultPort                 = 8080
	DefaultSubmissionTimeout    = 30 * time.Second
	DefaultWorkerCount          = 8
	DefaultWorkerQueueSize      = 256
	DefaultDBMaxConns           = 20
	DefaultDBMaxConnIdleTime    = 5 * time.Minute
	DefaultDBMaxConnLifetime    = time.Hour
	DefaultProfileCacheSize     = 1024
	DefaultProfileCacheTTL      = 2 * time.Minute
	DefaultEventRetentionDays   = 30
	DefaultEventCleanupInterval = 24 * time.Hour
	DefaultStatsExportInterval  = 15 * time.Second
	DefaultTokenDecimals        = 18
	DefaultPhotoMemoryCapacity  = 128
	DefaultMaxRequestBytes      = 12 << 20 // inline photos arrive base64 encoded
)

// Error messages
const (
	ErrMsgInvalidPort         = "invalid PORT value"
	ErrMsgAPIKeyRequired      = "API_KEY environment variable must be set for security"
	ErrMsgUnknownPhotoStore   = "unknown PHOTO_STORE backend"
	ErrMsgUnknownIssuer       = "unknown ISSUER backend"
	ErrMsgUnknownPolicy       = "unknown VERIFICATION_FAILURE_POLICY"
	ErrMsgS3BucketRequired    = "PHOTO_STORE_BUCKET must be set when PHOTO_STORE=s3"
	ErrMsgEthSettingsRequired = "ETH_RPC_URL, ETH_PRIVATE_KEY and TOKEN_CONTRACT_ADDRESS must be set when ISSUER=ethereum"
	ErrMsgNonPositiveTimeout  = "SUBMISSION_TIMEOUT must be positive"
	ErrMsgNonPositiveWorkers  = "WORKER_COUNT must be positive"
)
