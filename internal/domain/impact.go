package domain

// ImpactCategory buckets a carbon estimate. Negative carbon means net-positive impact.
type ImpactCategory string

const (
	ImpactNegative       ImpactCategory = "negative_impact"
	ImpactLowPositive    ImpactCategory = "low_positive_impact"
	ImpactMediumPositive ImpactCategory = "medium_positive_impact"
	ImpactHighPositive   ImpactCategory = "high_positive_impact"
)

// CarbonEstimate is the output of the carbon calculator
type CarbonEstimate struct {
	CarbonImpact      float64        `json:"carbonImpact"`
	ImpactCategory    ImpactCategory `json:"impactCategory"`
	QualityMultiplier float64        `json:"qualityMultiplier"`
	Confidence        float64        `json:"confidence"`
	Recommendations   []string       `json:"recommendations,omitempty"`
}

// SustainabilityBreakdown exposes the factors behind a sustainability score
type SustainabilityBreakdown struct {
	BaseScore          float64 `json:"baseScore"`
	QualityMultiplier  float64 `json:"qualityMultiplier"`
	LocationMultiplier float64 `json:"locationMultiplier"`
	ScaleMultiplier    float64 `json:"scaleMultiplier"`
}

// SustainabilityScore is a bounded 0-100 sustainability rating
type SustainabilityScore struct {
	Score          int                     `json:"score"`
	Breakdown      SustainabilityBreakdown `json:"breakdown"`
	Recommendation string                  `json:"recommendation"`
}

// ImpactLevel buckets the overall environmental impact score
type ImpactLevel string

const (
	ImpactLevelExcellent        ImpactLevel = "excellent"
	ImpactLevelGood             ImpactLevel = "good"
	ImpactLevelModerate         ImpactLevel = "moderate"
	ImpactLevelNeedsImprovement ImpactLevel = "needs_improvement"
)

// ImpactDimensions scores an activity along five environmental axes (0-100)
type ImpactDimensions struct {
	AirQuality     float64 `json:"airQuality"`
	WaterQuality   float64 `json:"waterQuality"`
	SoilHealth     float64 `json:"soilHealth"`
	Biodiversity   float64 `json:"biodiversity"`
	WasteReduction float64 `json:"wasteReduction"`
}

// ImpactAssessment is the multi-dimensional environmental impact of an activity
type ImpactAssessment struct {
	Dimensions   ImpactDimensions `json:"dimensions"`
	OverallScore int              `json:"overallScore"`
	ImpactLevel  ImpactLevel      `json:"impactLevel"`
	Rating       string           `json:"sustainabilityRating"`
	ActionPlan   []string         `json:"actionPlan,omitempty"`
}

// FraudRiskLevel is a coarse fraud bucket used by activity validation
type FraudRiskLevel string

const (
	FraudRiskLow    FraudRiskLevel = "low"
	FraudRiskMedium FraudRiskLevel = "medium"
	FraudRiskHigh   FraudRiskLevel = "high"
)

// ValidationChecks are the five scores of the activity validation pass (0-100)
type ValidationChecks struct {
	EnvironmentalRelevance float64 `json:"environmentalRelevance"`
	ActivityAuthenticity   float64 `json:"activityAuthenticity"`
	LocationConsistency    float64 `json:"locationConsistency"`
	TimeConsistency        float64 `json:"timeConsistency"`
	ImpactPotential        float64 `json:"impactPotential"`
}

// Mean returns the unweighted average of the five checks
func (c ValidationChecks) Mean() float64 {
	return (c.EnvironmentalRelevance + c.ActivityAuthenticity + c.LocationConsistency +
		c.TimeConsistency + c.ImpactPotential) / 5
}

// ActivityValidation is the second, metadata-driven authenticity pass
type ActivityValidation struct {
	IsValid         bool             `json:"isValid"`
	ValidationScore float64          `json:"validationScore"`
	Checks          ValidationChecks `json:"checks"`
	FraudRisk       FraudRiskLevel   `json:"fraudRisk"`
	Issues          []string         `json:"issues,omitempty"`
}
