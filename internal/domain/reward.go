package domain

// TokenTier is the reward-quality bucket derived from the verification score.
// It is unrelated to EligibilityTier.
type TokenTier string

const (
	TokenTierBasic    TokenTier = "basic"
	TokenTierStandard TokenTier = "standard"
	TokenTierPremium  TokenTier = "premium"
)

// RewardBreakdown lists each factor's contribution before capping
type RewardBreakdown struct {
	BaseReward         float64 `json:"baseReward"`
	QualityBonus       float64 `json:"qualityBonus"`
	BehaviorBonus      float64 `json:"behaviorBonus"`
	StreakBonus        float64 `json:"streakBonus"`
	ImpactMultiplier   float64 `json:"impactMultiplier"`
	CommunityBonus     float64 `json:"communityBonus"`
	SeasonalMultiplier float64 `json:"seasonalMultiplier"`
	RarityBonus        float64 `json:"rarityBonus"`
}

// Total sums all eight factors, seasonal term included
func (b RewardBreakdown) Total() float64 {
	return b.BaseReward + b.QualityBonus + b.BehaviorBonus + b.StreakBonus +
		b.ImpactMultiplier + b.CommunityBonus + b.SeasonalMultiplier + b.RarityBonus
}

// Subtotal sums the seven token-valued factors, leaving the seasonal multiplier out
func (b RewardBreakdown) Subtotal() float64 {
	return b.Total() - b.SeasonalMultiplier
}

// NextLevelIncentive tells the user what would raise the next reward
type NextLevelIncentive struct {
	NextTier                TokenTier `json:"nextTier,omitempty"`
	ScoreNeeded             int       `json:"scoreNeeded"`
	StreakDaysToBonus       int       `json:"streakDaysToBonus"`
	RemainingDailyAllowance float64   `json:"remainingDailyAllowance"`
	Message                 string    `json:"message"`
}

// RewardInput is everything the reward calculator consumes
type RewardInput struct {
	ActivityType             ActivityType
	Location                 string
	EnvironmentalImpactScore float64
	CarbonImpact             float64
	Verification             VerificationResult
	BehaviorScore            float64
	Profile                  UserProfile
}

// RewardResult is the capped reward decision
type RewardResult struct {
	RewardAmount       float64            `json:"rewardAmount"`
	TokenTier          TokenTier          `json:"tokenTier"`
	Breakdown          RewardBreakdown    `json:"breakdown"`
	NextLevelIncentive NextLevelIncentive `json:"nextLevelIncentive"`
	BonusDetails       []string           `json:"bonusDetails,omitempty"`
	Recommendations    []string           `json:"recommendations,omitempty"`
	Error              string             `json:"error,omitempty"`
}
