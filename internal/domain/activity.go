package domain

import "time"

// ActivityType identifies one of the known environmental activity categories
type ActivityType string

const (
	ActivityTreePlanting         ActivityType = "tree-planting"
	ActivityWasteCleanup         ActivityType = "waste-cleanup"
	ActivityRecycling            ActivityType = "recycling"
	ActivityWaterConservation    ActivityType = "water-conservation"
	ActivityWildlifeConservation ActivityType = "wildlife-conservation"
	ActivitySustainableTransport ActivityType = "sustainable-transport"
	ActivityComposting           ActivityType = "composting"
	ActivityCleanEnergyUsage     ActivityType = "clean-energy-usage"
)

// KnownActivityTypes lists every activity the engine scores. Its length is the
// denominator of the diversity score.
var KnownActivityTypes = []ActivityType{
	ActivityTreePlanting,
	ActivityWasteCleanup,
	ActivityRecycling,
	ActivityWaterConservation,
	ActivityWildlifeConservation,
	ActivitySustainableTransport,
	ActivityComposting,
	ActivityCleanEnergyUsage,
}

// IsKnown reports whether t is one of KnownActivityTypes
func (t ActivityType) IsKnown() bool {
	for _, known := range KnownActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Location tags with dedicated multipliers. Any other string is accepted and
// scored with neutral multipliers.
const (
	LocationUrban               = "urban"
	LocationSuburban            = "suburban"
	LocationRural               = "rural"
	LocationCoastal             = "coastal"
	LocationProtectedArea       = "protected_area"
	LocationEndangeredEcosystem = "endangered_ecosystem"
)

// DefaultScale is used when a submission leaves Scale at zero
const DefaultScale = 1.0

// GPSCoordinates is a WGS84 position attached to a photo
type GPSCoordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Accuracy  float64 `json:"accuracy,omitempty" validate:"gte=0"`
}

// PhotoMetadata describes how and when a photo was taken. Labels are scene
// labels produced by the client or an upstream vision service.
type PhotoMetadata struct {
	Timestamp   time.Time       `json:"timestamp"`
	GPS         *GPSCoordinates `json:"gpsCoordinates,omitempty" validate:"omitempty"`
	DeviceInfo  string          `json:"deviceInfo,omitempty" validate:"max=256"`
	Software    string          `json:"software,omitempty" validate:"max=256"`
	Description string          `json:"description,omitempty" validate:"max=2000"`
	Labels      []string        `json:"labels,omitempty" validate:"max=64,dive,max=64"`
}

// PhotoData carries the photo inline or as a photo store reference
type PhotoData struct {
	Data []byte `json:"data,omitempty"`
	Ref  string `json:"ref,omitempty" validate:"max=512"`
}

// IsEmpty reports whether neither bytes nor reference are present
func (p PhotoData) IsEmpty() bool {
	return len(p.Data) == 0 && p.Ref == ""
}

// ActivityEvidence is the supporting documentation attached to a submission
type ActivityEvidence struct {
	Documentation        []string `json:"documentation,omitempty" validate:"max=32"`
	BeforeAfterPhotos    bool     `json:"beforeAfterPhotos,omitempty"`
	CommunityInvolvement bool     `json:"communityInvolvement,omitempty"`
	MeasurableOutcomes   bool     `json:"measurableOutcomes,omitempty"`
	ThirdPartyVerified   bool     `json:"thirdPartyVerified,omitempty"`
}

// StreakData tracks consecutive days with at least one qualifying activity
type StreakData struct {
	Current      int       `json:"current" validate:"gte=0"`
	Longest      int       `json:"longest" validate:"gte=0"`
	LastActivity time.Time `json:"lastActivity,omitempty"`
}

// CommunityMetrics counts a user's community contributions
type CommunityMetrics struct {
	Referrals        int `json:"referrals" validate:"gte=0"`
	SocialShares     int `json:"socialShares" validate:"gte=0"`
	MentorshipPoints int `json:"mentorshipPoints" validate:"gte=0"`
}

// UserProfile is the read-only user state consumed by the engine
type UserProfile struct {
	UserID      string           `json:"userId,omitempty"`
	Streak      StreakData       `json:"streakData"`
	Community   CommunityMetrics `json:"communityMetrics"`
	DailyEarned float64          `json:"dailyEarned" validate:"gte=0"`
}

// HistoryEntry is one past activity of a user
type HistoryEntry struct {
	ActivityType ActivityType `json:"activityType"`
	Timestamp    time.Time    `json:"timestamp"`
	QualityScore float64      `json:"qualityScore" validate:"gte=0,lte=100"`
	RewardAmount float64      `json:"rewardAmount" validate:"gte=0"`
	Location     string       `json:"location,omitempty"`
}

// ActivitySubmission is a single activity to be scored. It is treated as an
// immutable value once submitted.
type ActivitySubmission struct {
	ActivityType ActivityType     `json:"activityType" validate:"required,activity_type"`
	Scale        float64          `json:"scale" validate:"gte=0"`
	Location     string           `json:"location" validate:"max=64"`
	Photo        PhotoData        `json:"photoData"`
	Metadata     PhotoMetadata    `json:"metadata"`
	Evidence     ActivityEvidence `json:"evidence"`
	UserProfile  UserProfile      `json:"userProfile"`
	UserHistory  []HistoryEntry   `json:"userHistory" validate:"max=1000,dive"`
	UserWallet   string           `json:"userWallet" validate:"required,max=128"`
}

// EffectiveScale returns Scale or DefaultScale when unset
func (s ActivitySubmission) EffectiveScale() float64 {
	if s.Scale == 0 {
		return DefaultScale
	}
	return s.Scale
}
