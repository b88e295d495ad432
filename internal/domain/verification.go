package domain

// EligibilityTier is the verification-quality bucket derived from the photo
// verification score. It is unrelated to TokenTier.
type EligibilityTier string

const (
	EligibilityNotEligible EligibilityTier = "not_eligible"
	EligibilityBasic       EligibilityTier = "basic_tier"
	EligibilityStandard    EligibilityTier = "standard_tier"
	EligibilityPremium     EligibilityTier = "premium_tier"
)

// ActivityDetection is the result of looking for the claimed activity in a photo
type ActivityDetection struct {
	Detected         bool         `json:"detected"`
	Confidence       float64      `json:"confidence"`
	ActivityType     ActivityType `json:"activityType"`
	DetectedElements []string     `json:"detectedElements,omitempty"`
	Reason           string       `json:"reason,omitempty"`
}

// AuthenticityCheck reports whether a photo appears genuine and unedited
type AuthenticityCheck struct {
	IsAuthentic       bool               `json:"isAuthentic"`
	AuthenticityScore float64            `json:"authenticityScore"`
	Checks            map[string]float64 `json:"checks,omitempty"`
	RiskFactors       []string           `json:"riskFactors,omitempty"`
}

// RelevanceAssessment reports whether a photo shows an environmental context
type RelevanceAssessment struct {
	IsRelevant      bool     `json:"isRelevant"`
	RelevanceScore  float64  `json:"relevanceScore"`
	MatchedKeywords []string `json:"matchedKeywords,omitempty"`
}

// FraudAssessment estimates the likelihood that a submission is fraudulent
type FraudAssessment struct {
	FraudRisk   float64  `json:"fraudRisk"`
	IsHighRisk  bool     `json:"isHighRisk"`
	RiskFactors []string `json:"riskFactors,omitempty"`
}

// QualityAssessment rates the technical quality of a photo
type QualityAssessment struct {
	OverallScore float64            `json:"overallScore"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
	Issues       []string           `json:"issues,omitempty"`
}

// VerificationAnalysis holds the five sub-check results. A nil field means the
// sub-check failed.
type VerificationAnalysis struct {
	ActivityDetection      *ActivityDetection   `json:"activityDetection,omitempty"`
	AuthenticityCheck      *AuthenticityCheck   `json:"authenticityCheck,omitempty"`
	EnvironmentalRelevance *RelevanceAssessment `json:"environmentalRelevance,omitempty"`
	FraudAssessment        *FraudAssessment     `json:"fraudAssessment,omitempty"`
	QualityAssessment      *QualityAssessment   `json:"qualityAssessment,omitempty"`
}

// VerificationResult is the verdict of the photo verification scorer
type VerificationResult struct {
	IsVerified        bool                 `json:"isVerified"`
	VerificationScore int                  `json:"verificationScore"`
	Confidence        int                  `json:"confidence"`
	TokenEligibility  EligibilityTier      `json:"tokenEligibility"`
	DetailedAnalysis  VerificationAnalysis `json:"detailedAnalysis"`
	SubcheckErrors    map[string]string    `json:"subcheckErrors,omitempty"`
	Error             string               `json:"error,omitempty"`
}
