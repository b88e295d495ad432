package reward

// Tokenomics defaults
const (
	DefaultBaseReward     = 10.0
	DefaultMaxDailyReward = 100.0
	DefaultSpringFactor   = 1.2
	DefaultAutumnFactor   = 1.15
	NeutralFactor         = 1.0
)

// Factor rules
const (
	MinStreakForBonus    = 3
	StreakStep           = 0.1
	MaxStreakFactor      = 1.0
	DefaultImpactScore   = 50.0
	ImpactShare          = 0.5
	CommunityCapShare    = 0.5
	ReferralPoints       = 2
	SharePoints          = 1
	MentorshipPoints     = 3
	PremiumScore         = 90
	StandardScore        = 80
	TierSuffix           = "_tier"
	DefaultQualityTierID = "basic"
)

// TokenomicsSchemaID keys the embedded tokenomics schema in the validator cache
const TokenomicsSchemaID = "ecohunt://schemas/tokenomics.schema.json"

// Log messages
const (
	LogMsgRewardCalculated  = "Reward calculated"
	LogMsgRewardFallback    = "Reward calculation failed, using base reward"
	LogMsgTokenomicsLoaded  = "Tokenomics loaded"
	LogMsgTokenomicsDefault = "No tokenomics file configured, using defaults"
)

// Error messages
const (
	ErrMsgNonFiniteFactor   = "reward factor %s is not finite"
	ErrMsgCalculationPanic  = "reward calculation panicked: %v"
	ErrMsgReadTokenomics    = "failed to read tokenomics file %s: %w"
	ErrMsgInvalidTokenomics = "invalid tokenomics file %s: %w"
	ErrMsgParseTokenomics   = "failed to parse tokenomics file %s: %w"
)

// Recommendation and explanation text
const (
	RecommendStreak     = "Log an activity tomorrow to build toward a streak bonus"
	RecommendQuality    = "Include clear photos with location and timestamp to reach a higher verification tier"
	RecommendCommunity  = "Invite friends or share your activities to unlock community bonuses"
	RecommendRare       = "Try activities in rural or protected areas for rarity bonuses"
	RecommendDailyLimit = "You have reached today's reward limit; new activities count toward tomorrow"
)
