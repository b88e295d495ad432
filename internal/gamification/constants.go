package gamification

// Challenge and social feature triggers
const (
	TriggerConsistencyBelow = "consistency_below"
	TriggerDiversityBelow   = "diversity_below"
	TriggerSocialBelow      = "social_below"
	TriggerQualityDeclining = "quality_declining"
	TriggerNewUser          = "engagement_new_user"
	TriggerAlways           = "always"
)

// Achievement metrics
const (
	MetricActivities        = "activities"
	MetricActivityTypeCount = "activity_type_count"
	MetricStreak            = "streak"
	MetricDistinctTypes     = "distinct_types"
	MetricReferrals         = "referrals"
)

// Strategy priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Engagement uplift estimate, in percent
const (
	UpliftPerChallenge      = 5.0
	UpliftPerNearlyUnlocked = 2.0
	UpliftPerSocialFeature  = 3.0
	MaxUplift               = 50.0
	NearlyUnlockedProgress  = 0.5
)

// ActivityPlaceholder is replaced by the activity's display name in catalog text
const ActivityPlaceholder = "{activity}"

// Log messages
const (
	LogMsgCatalogLoaded   = "Gamification catalog loaded"
	LogMsgStrategyBuilt   = "Gamification strategy built"
	LogMsgCatalogEmbedded = "Using embedded gamification catalog"
)

// Error messages
const (
	ErrMsgReadCatalog      = "failed to read gamification catalog %s: %w"
	ErrMsgParseCatalog     = "failed to parse gamification catalog: %w"
	ErrMsgDuplicateID      = "duplicate catalog id %q"
	ErrMsgUnknownTrigger   = "unknown trigger %q on %q"
	ErrMsgUnknownMetric    = "unknown metric %q on %q"
	ErrMsgNonPositiveValue = "%q must have a positive %s"
)
