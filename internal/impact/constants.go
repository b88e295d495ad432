package impact

import "github.com/osse101/EcoHunt_Go/internal/domain"

// carbonFactors is kg CO2e per unit of activity. Negative values are net-positive.
var carbonFactors = map[domain.ActivityType]float64{
	domain.ActivityTreePlanting:         -21.77,
	domain.ActivityRecycling:            -0.5,
	domain.ActivityCleanEnergyUsage:     -2.3,
	domain.ActivityWasteCleanup:         -0.3,
	domain.ActivityWaterConservation:    -0.1,
	domain.ActivitySustainableTransport: -0.2,
	domain.ActivityComposting:           -0.8,
	domain.ActivityWildlifeConservation: -5.0,
}

// sustainabilityBaseScores are the 0-100 base scores per activity type
var sustainabilityBaseScores = map[domain.ActivityType]float64{
	domain.ActivityTreePlanting:         95,
	domain.ActivityRecycling:            85,
	domain.ActivityCleanEnergyUsage:     90,
	domain.ActivityWasteCleanup:         80,
	domain.ActivityWaterConservation:    85,
	domain.ActivitySustainableTransport: 75,
	domain.ActivityComposting:           80,
	domain.ActivityWildlifeConservation: 95,
}

// locationMultipliers scale the sustainability score by where the activity happened
var locationMultipliers = map[string]float64{
	domain.LocationUrban:               1.0,
	domain.LocationSuburban:            1.05,
	domain.LocationRural:               1.1,
	domain.LocationCoastal:             1.15,
	domain.LocationProtectedArea:       1.2,
	domain.LocationEndangeredEcosystem: 1.25,
}

// dimensionProfiles are the per-type impact profiles before quality scaling
var dimensionProfiles = map[domain.ActivityType]domain.ImpactDimensions{
	domain.ActivityTreePlanting:         {AirQuality: 90, WaterQuality: 70, SoilHealth: 80, Biodiversity: 90, WasteReduction: 30},
	domain.ActivityWasteCleanup:         {AirQuality: 40, WaterQuality: 70, SoilHealth: 70, Biodiversity: 60, WasteReduction: 95},
	domain.ActivityRecycling:            {AirQuality: 50, WaterQuality: 40, SoilHealth: 50, Biodiversity: 30, WasteReduction: 90},
	domain.ActivityWaterConservation:    {AirQuality: 20, WaterQuality: 95, SoilHealth: 50, Biodiversity: 60, WasteReduction: 30},
	domain.ActivityWildlifeConservation: {AirQuality: 50, WaterQuality: 60, SoilHealth: 60, Biodiversity: 95, WasteReduction: 20},
	domain.ActivitySustainableTransport: {AirQuality: 90, WaterQuality: 30, SoilHealth: 20, Biodiversity: 30, WasteReduction: 20},
	domain.ActivityComposting:           {AirQuality: 40, WaterQuality: 50, SoilHealth: 95, Biodiversity: 50, WasteReduction: 85},
	domain.ActivityCleanEnergyUsage:     {AirQuality: 95, WaterQuality: 40, SoilHealth: 30, Biodiversity: 40, WasteReduction: 30},
}

var defaultDimensions = domain.ImpactDimensions{
	AirQuality: 40, WaterQuality: 40, SoilHealth: 40, Biodiversity: 40, WasteReduction: 40,
}

// carbonRecommendations are activity-specific tips attached to carbon estimates
var carbonRecommendations = map[domain.ActivityType][]string{
	domain.ActivityTreePlanting: {
		"Consider native species for better local ecosystem impact",
		"Document growth progress for long-term impact tracking",
	},
	domain.ActivityRecycling: {
		"Separate materials by type to raise recycling yield",
	},
	domain.ActivityComposting: {
		"Balance green and brown inputs to reduce methane emissions",
	},
	domain.ActivityCleanEnergyUsage: {
		"Record meter readings to make energy savings measurable",
	},
}

// Neutral values for unknown inputs
const (
	DefaultSustainabilityBase = 50.0
	DefaultLocationMultiplier = 1.0
	MaxScaleMultiplier        = 2.0
	MaxScore                  = 100.0
)

// Quality multiplier bonuses
const (
	QualityBase               = 1.0
	QualityBonusDocumentation = 0.1
	QualityBonusBeforeAfter   = 0.2
	QualityBonusCommunity     = 0.15
	QualityBonusMeasurable    = 0.2
	QualityMultiplierCap      = 1.5
)

// Carbon estimate confidence
const (
	ConfidenceBase            = 0.7
	ConfidenceBonusPhotos     = 0.1
	ConfidenceBonusLocation   = 0.1
	ConfidenceBonusTimestamp  = 0.05
	ConfidenceBonusThirdParty = 0.15
	ConfidenceCap             = 1.0
)

// Carbon category thresholds (kg CO2e)
const (
	CarbonLowThreshold    = -5.0
	CarbonMediumThreshold = -15.0
)

// Impact assessment weights
const (
	WeightAirQuality     = 0.25
	WeightWaterQuality   = 0.25
	WeightSoilHealth     = 0.20
	WeightBiodiversity   = 0.20
	WeightWasteReduction = 0.10

	ActionPlanThreshold = 70.0
)

// Activity validation
const (
	ValidationThreshold = 70.0

	RelevanceKnownType      = 80.0
	RelevanceDescribedBonus = 20.0
	RelevanceUnknownType    = 20.0

	AuthenticityWithDevice    = 100.0
	AuthenticityWithoutDevice = 60.0

	LocationNoGPS       = 50.0
	LocationNullIsland  = 20.0
	LocationImprecise   = 60.0
	LocationConsistent  = 100.0
	LocationMaxAccuracy = 1000.0 // metres

	TimeMissing      = 40.0
	TimeFuture       = 0.0
	TimeSameDay      = 100.0
	TimeThisWeek     = 80.0
	TimeThisMonth    = 50.0
	TimeStale        = 20.0
	ClockSkewAllowed = 5 // minutes

	FraudLowThreshold    = 80.0
	FraudMediumThreshold = 60.0
	IssueThreshold       = 50.0
)

// Sustainability recommendation bands
const (
	RecommendationOutstanding = "Outstanding impact - share your approach to inspire the community"
	RecommendationGreat       = "Great work - add before/after photos to document results"
	RecommendationGood        = "Good start - document measurable outcomes to boost your score"
	RecommendationLow         = "Consider higher-impact activities or involve your community"
)
