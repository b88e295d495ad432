package verification

import "time"

// Sub-check names, used as keys in SubcheckErrors
const (
	SubcheckActivityDetection = "activityDetection"
	SubcheckAuthenticity      = "authenticityCheck"
	SubcheckRelevance         = "environmentalRelevance"
	SubcheckFraud             = "fraudAssessment"
	SubcheckQuality           = "qualityAssessment"
)

// Sub-check weights. They sum to 1.0.
const (
	WeightActivityDetection = 0.35
	WeightAuthenticity      = 0.25
	WeightRelevance         = 0.20
	WeightFraud             = 0.15
	WeightQuality           = 0.05
)

// Weights maps each sub-check to its weight
var Weights = map[string]float64{
	SubcheckActivityDetection: WeightActivityDetection,
	SubcheckAuthenticity:      WeightAuthenticity,
	SubcheckRelevance:         WeightRelevance,
	SubcheckFraud:             WeightFraud,
	SubcheckQuality:           WeightQuality,
}

// Verdict thresholds on the 0-100 overall score
const (
	VerifiedThreshold = 70
	PremiumThreshold  = 90
	StandardThreshold = 80
	BasicThreshold    = 70
)

// Neutral values for unrecognised results
const (
	NeutralScore      = 0.5
	NeutralConfidence = 0.5
)

// Heuristic detector thresholds (0-1)
const (
	DetectionThreshold    = 0.7
	AuthenticityThreshold = 0.8
	RelevanceThreshold    = 0.7
	HighFraudThreshold    = 0.7

	CueSaturation = 2 // matches needed for full credit in a cue group
)

// Activity detection evidence weights
const (
	WeightObjectDetection     = 0.4
	WeightSceneClassification = 0.3
	WeightActivityRecognition = 0.25
	WeightTemporalConsistency = 0.05
)

// Relevance weights
const (
	WeightRelevanceContext   = 0.4
	WeightRelevanceIndicator = 0.6
)

// Fraud weights
const (
	WeightFraudStockPhoto  = 0.35
	WeightFraudAIGenerated = 0.25
	WeightFraudEditing     = 0.2
	WeightFraudTemporal    = 0.2
	FraudMissingTimestamp  = 0.3
)

// Quality weights and resolution bands
const (
	WeightQualityResolution = 0.5
	WeightQualityFileSize   = 0.2
	WeightQualityMetadata   = 0.3

	HighResolutionPixels   = 2_000_000
	MediumResolutionPixels = 1_000_000
	LowResolutionPixels    = 300_000
	LargeFileBytes         = 200 * 1024
	MediumFileBytes        = 50 * 1024
)

// Duplicate tracking
const (
	DefaultDuplicateCacheSize = 10_000
	DefaultDuplicateTTL       = 30 * 24 * time.Hour
	StalePhotoAge             = 30 * 24 * time.Hour
	ClockSkewAllowance        = 5 * time.Minute
)

// Log messages
const (
	LogMsgSubcheckFailed      = "Photo sub-check failed"
	LogMsgSubcheckPanicked    = "Photo sub-check panicked"
	LogMsgVerificationAborted = "Photo verification aborted"
	LogMsgVerificationDone    = "Photo verification completed"
)

// Error messages
const (
	ErrMsgEmptyResult   = "detector returned no result"
	ErrMsgDetectorPanic = "detector panicked"
	ErrMsgUnknownPolicy = "unknown failure policy"
	ErrMsgUnknownType   = "Unknown activity type"
)
