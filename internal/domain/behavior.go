package domain

// QualityTrend describes the direction of recent submission quality
type QualityTrend string

const (
	TrendImproving        QualityTrend = "improving"
	TrendDeclining        QualityTrend = "declining"
	TrendStable           QualityTrend = "stable"
	TrendInsufficientData QualityTrend = "insufficient_data"
)

// EngagementPattern buckets how often a user submits activities
type EngagementPattern string

const (
	EngagementNewUser    EngagementPattern = "new_user"
	EngagementHighly     EngagementPattern = "highly_engaged"
	EngagementRegularly  EngagementPattern = "regularly_engaged"
	EngagementModerately EngagementPattern = "moderately_engaged"
	EngagementOccasional EngagementPattern = "occasionally_engaged"
)

// RiskLevel is a coarse behaviour risk bucket
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskAssessment lists behaviour patterns that deserve a closer look
type RiskAssessment struct {
	Level RiskLevel `json:"level"`
	Flags []string  `json:"flags,omitempty"`
}

// BehaviorMetrics are the five long-run metrics behind the behaviour score (0-100)
type BehaviorMetrics struct {
	Consistency float64 `json:"consistency"`
	Quality     float64 `json:"quality"`
	Diversity   float64 `json:"diversity"`
	Community   float64 `json:"community"`
	Progression float64 `json:"progression"`
}

// BehaviorProfile is derived from a user's history on every analysis
type BehaviorProfile struct {
	ConsistencyScore    float64           `json:"consistencyScore"`
	DiversityScore      float64           `json:"diversityScore"`
	QualityTrend        QualityTrend      `json:"qualityTrend"`
	EngagementPattern   EngagementPattern `json:"engagementPattern"`
	SocialEngagement    float64           `json:"socialEngagement"`
	LearningProgression float64           `json:"learningProgression"`
	Risk                RiskAssessment    `json:"riskAssessment"`
	Metrics             BehaviorMetrics   `json:"metrics"`
	BehaviorScore       float64           `json:"behaviorScore"`
	Recommendations     []string          `json:"recommendations,omitempty"`

	// Sample is this submission's contribution to the running metrics. It is
	// folded in only once the submission completes.
	Sample BehaviorMetrics `json:"-"`
}
