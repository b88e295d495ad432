package domain

import "time"

// Fallback reward granted when the pipeline cannot complete
const (
	FallbackTokenAmount    = 5.0
	FallbackReason         = "processing_fallback"
	FallbackRecommendation = "Please resubmit with higher quality photo and complete metadata"
)

// FallbackReward is the minimal compensation attached to failed results
type FallbackReward struct {
	TokenAmount    float64 `json:"tokenAmount"`
	Reason         string  `json:"reason"`
	Recommendation string  `json:"recommendation"`
}

// NewFallbackReward returns the fixed fallback grant
func NewFallbackReward() *FallbackReward {
	return &FallbackReward{
		TokenAmount:    FallbackTokenAmount,
		Reason:         FallbackReason,
		Recommendation: FallbackRecommendation,
	}
}

// ProcessResult is the unified outcome of processing one submission. On
// failure only the identity fields, Error, ErrorKind and Fallback are set.
type ProcessResult struct {
	ProcessID      string                `json:"processId"`
	Success        bool                  `json:"success"`
	UserWallet     string                `json:"userWallet"`
	ActivityType   ActivityType          `json:"activityType"`
	Verification   *VerificationResult   `json:"verification,omitempty"`
	Sustainability *SustainabilityScore  `json:"sustainability,omitempty"`
	Carbon         *CarbonEstimate       `json:"carbon,omitempty"`
	Impact         *ImpactAssessment     `json:"impact,omitempty"`
	Validation     *ActivityValidation   `json:"validation,omitempty"`
	Behavior       *BehaviorProfile      `json:"behavior,omitempty"`
	Reward         *RewardResult         `json:"reward,omitempty"`
	Gamification   *GamificationStrategy `json:"gamification,omitempty"`
	Issuance       *IssuanceReceipt      `json:"issuance,omitempty"`
	Fallback       *FallbackReward       `json:"fallbackReward,omitempty"`
	PhotoRef       string                `json:"photoRef,omitempty"`
	Error          string                `json:"error,omitempty"`
	ErrorKind      ErrorKind             `json:"errorKind,omitempty"`
	ProcessingTime time.Duration         `json:"processingTimeNs"`
	ProcessedAt    time.Time             `json:"processedAt"`
}

// RewardAmount returns the granted amount, or zero when the result failed
func (r ProcessResult) RewardAmount() float64 {
	if !r.Success || r.Reward == nil {
		return 0
	}
	return r.Reward.RewardAmount
}

// ActivityCount pairs an activity type with its frequency
type ActivityCount struct {
	ActivityType ActivityType `json:"activityType"`
	Count        int          `json:"count"`
}

// IssueCount pairs a recurring problem with its frequency
type IssueCount struct {
	Issue string `json:"issue"`
	Count int    `json:"count"`
}

// BatchSummary aggregates the results of a batch or stream
type BatchSummary struct {
	Total                      int             `json:"total"`
	Successful                 int             `json:"successful"`
	Failed                     int             `json:"failed"`
	SuccessRate                float64         `json:"successRate"`
	TotalRewards               float64         `json:"totalRewards"`
	AverageSustainabilityScore float64         `json:"averageSustainabilityScore"`
	TopActivities              []ActivityCount `json:"topActivities"`
	CommonIssues               []IssueCount    `json:"commonIssues"`
}

// BatchResult is the response of a batch run, results in input order
type BatchResult struct {
	BatchID     string          `json:"batchId"`
	Results     []ProcessResult `json:"results"`
	Summary     BatchSummary    `json:"summary"`
	CompletedAt time.Time       `json:"completedAt"`
}

// OrchestratorStats is a snapshot of the orchestrator's running metrics
type OrchestratorStats struct {
	TotalProcessed        int64         `json:"totalProcessed"`
	Successful            int64         `json:"successful"`
	Failed                int64         `json:"failed"`
	SuccessRate           float64       `json:"successRate"`
	AverageProcessingTime time.Duration `json:"averageProcessingTimeNs"`
}

// StreamSummary aggregates the results a live stream produced so far
type StreamSummary struct {
	TotalProcessed   int          `json:"totalProcessed"`
	Summary          BatchSummary `json:"summary"`
	FirstProcessedAt time.Time    `json:"firstProcessedAt,omitempty"`
	LastProcessedAt  time.Time    `json:"lastProcessedAt,omitempty"`
}
