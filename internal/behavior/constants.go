package behavior

import "time"

// History thresholds
const (
	MinConsistencyEntries = 7
	ConsistencyWindowDays = 7
	MinTrendEntries       = 10
	TrendWindow           = 5
	TrendThreshold        = 5.0
	EngagementWindow      = 30
	QualityWindow         = 10
)

// Engagement interval bands, in days
const (
	HighlyEngagedDays     = 1.0
	RegularlyEngagedDays  = 3.0
	ModeratelyEngagedDays = 7.0
)

// Behaviour score weights
const (
	WeightConsistency = 0.25
	WeightQuality     = 0.25
	WeightDiversity   = 0.20
	WeightCommunity   = 0.20
	WeightProgression = 0.10
)

// Social engagement points
const (
	PointsPerReferral   = 10
	PointsPerShare      = 2
	PointsPerMentorship = 5
)

// Learning progression
const (
	ProgressionBaseline = 50.0
	ProgressionGain     = 2.0
)

// Risk flags
const (
	BurstActivityCount  = 5
	BurstWindow         = time.Hour
	LowQualityThreshold = 40.0
	LowQualityMinCount  = 5
	DefaultDailyCap     = 100.0

	FlagBurstActivity   = "burst_activity"
	FlagLowQuality      = "low_average_quality"
	FlagDailyCapReached = "daily_cap_reached"
)

// Recommendation thresholds
const (
	RecommendConsistencyBelow = 70.0
	RecommendDiversityBelow   = 50.0
	RecommendSocialBelow      = 30.0

	RecommendationConsistency = "Set daily reminders to maintain your eco-activity streak"
	RecommendationDiversity   = "Try new types of environmental activities to earn diversity bonuses"
	RecommendationSocial      = "Share your activities to inspire others and earn community bonuses"
)

// Tracker defaults
const (
	DefaultTrackedUsers = 10_000
	anonymousUser       = "anonymous"
)

// Log messages
const (
	LogMsgBehaviorAnalyzed = "Behaviour analyzed"
	LogMsgTrackerReset     = "Behaviour tracker reset"
)
