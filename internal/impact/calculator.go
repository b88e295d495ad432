package impact

import (
	"math"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/utils"
)

// Activity is the subset of a submission the environmental calculators read
type Activity struct {
	Type     domain.ActivityType
	Scale    float64
	Location string
	Evidence domain.ActivityEvidence
	Metadata domain.PhotoMetadata
	HasPhoto bool
}

// ActivityFromSubmission extracts the calculator input from a submission
func ActivityFromSubmission(sub domain.ActivitySubmission) Activity {
	return Activity{
		Type:     sub.ActivityType,
		Scale:    sub.EffectiveScale(),
		Location: sub.Location,
		Evidence: sub.Evidence,
		Metadata: sub.Metadata,
		HasPhoto: !sub.Photo.IsEmpty(),
	}
}

// Calculator computes carbon, sustainability and impact figures. All methods
// are pure except Validate, which reads the injected clock.
type Calculator struct {
	now func() time.Time
}

// Option configures a Calculator
type Option func(*Calculator)

// WithClock overrides the time source used by activity validation
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		c.now = now
	}
}

// NewCalculator creates a Calculator
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QualityMultiplier rewards documentation completeness, capped at 1.5
func QualityMultiplier(ev domain.ActivityEvidence) float64 {
	quality := QualityBase
	if len(ev.Documentation) > 0 {
		quality += QualityBonusDocumentation
	}
	if ev.BeforeAfterPhotos {
		quality += QualityBonusBeforeAfter
	}
	if ev.CommunityInvolvement {
		quality += QualityBonusCommunity
	}
	if ev.MeasurableOutcomes {
		quality += QualityBonusMeasurable
	}
	return math.Min(quality, QualityMultiplierCap)
}

// CategorizeCarbon buckets a carbon figure; more negative is better
func CategorizeCarbon(impact float64) domain.ImpactCategory {
	switch {
	case impact > 0:
		return domain.ImpactNegative
	case impact > CarbonLowThreshold:
		return domain.ImpactLowPositive
	case impact > CarbonMediumThreshold:
		return domain.ImpactMediumPositive
	default:
		return domain.ImpactHighPositive
	}
}

// EstimateCarbon returns factor x scale x quality with its category. Unknown
// activity types have a zero factor.
func (c *Calculator) EstimateCarbon(a Activity) domain.CarbonEstimate {
	quality := QualityMultiplier(a.Evidence)
	carbon := carbonFactors[a.Type] * effectiveScale(a.Scale) * quality

	return domain.CarbonEstimate{
		CarbonImpact:      carbon,
		ImpactCategory:    CategorizeCarbon(carbon),
		QualityMultiplier: quality,
		Confidence:        carbonConfidence(a),
		Recommendations:   CarbonRecommendations(a.Type),
	}
}

// CarbonRecommendations returns activity-specific tips, possibly none
func CarbonRecommendations(t domain.ActivityType) []string {
	return append([]string(nil), carbonRecommendations[t]...)
}

func carbonConfidence(a Activity) float64 {
	confidence := ConfidenceBase
	if a.HasPhoto {
		confidence += ConfidenceBonusPhotos
	}
	if a.Metadata.GPS != nil {
		confidence += ConfidenceBonusLocation
	}
	if !a.Metadata.Timestamp.IsZero() {
		confidence += ConfidenceBonusTimestamp
	}
	if a.Evidence.ThirdPartyVerified {
		confidence += ConfidenceBonusThirdParty
	}
	return math.Min(confidence, ConfidenceCap)
}

// ScoreSustainability returns round(min(100, base x quality x location x min(scale,2)))
func (c *Calculator) ScoreSustainability(a Activity) domain.SustainabilityScore {
	base, ok := sustainabilityBaseScores[a.Type]
	if !ok {
		base = DefaultSustainabilityBase
	}
	location, ok := locationMultipliers[a.Location]
	if !ok {
		location = DefaultLocationMultiplier
	}
	quality := QualityMultiplier(a.Evidence)
	scale := math.Min(effectiveScale(a.Scale), MaxScaleMultiplier)

	raw := math.Min(MaxScore, base*quality*location*scale)
	score := int(math.Round(utils.Clamp(raw, 0, MaxScore)))

	return domain.SustainabilityScore{
		Score: score,
		Breakdown: domain.SustainabilityBreakdown{
			BaseScore:          base,
			QualityMultiplier:  quality,
			LocationMultiplier: location,
			ScaleMultiplier:    scale,
		},
		Recommendation: scoreRecommendation(score),
	}
}

func scoreRecommendation(score int) string {
	switch {
	case score >= 90:
		return RecommendationOutstanding
	case score >= 75:
		return RecommendationGreat
	case score >= 50:
		return RecommendationGood
	default:
		return RecommendationLow
	}
}

// AssessImpact scores the activity on five environmental dimensions
func (c *Calculator) AssessImpact(a Activity) domain.ImpactAssessment {
	profile, ok := dimensionProfiles[a.Type]
	if !ok {
		profile = defaultDimensions
	}
	quality := QualityMultiplier(a.Evidence)
	scaled := domain.ImpactDimensions{
		AirQuality:     scaleDimension(profile.AirQuality, quality),
		WaterQuality:   scaleDimension(profile.WaterQuality, quality),
		SoilHealth:     scaleDimension(profile.SoilHealth, quality),
		Biodiversity:   scaleDimension(profile.Biodiversity, quality),
		WasteReduction: scaleDimension(profile.WasteReduction, quality),
	}

	overall := scaled.AirQuality*WeightAirQuality +
		scaled.WaterQuality*WeightWaterQuality +
		scaled.SoilHealth*WeightSoilHealth +
		scaled.Biodiversity*WeightBiodiversity +
		scaled.WasteReduction*WeightWasteReduction
	score := int(math.Round(overall))

	return domain.ImpactAssessment{
		Dimensions:   scaled,
		OverallScore: score,
		ImpactLevel:  CategorizeImpactLevel(score),
		Rating:       SustainabilityRating(score),
		ActionPlan:   actionPlan(scaled),
	}
}

func scaleDimension(value, quality float64) float64 {
	return utils.RoundTo(math.Min(MaxScore, value*quality), 2)
}

// CategorizeImpactLevel buckets an overall impact score
func CategorizeImpactLevel(score int) domain.ImpactLevel {
	switch {
	case score >= 80:
		return domain.ImpactLevelExcellent
	case score >= 60:
		return domain.ImpactLevelGood
	case score >= 40:
		return domain.ImpactLevelModerate
	default:
		return domain.ImpactLevelNeedsImprovement
	}
}

// SustainabilityRating converts a score to a letter grade
func SustainabilityRating(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B+"
	case score >= 60:
		return "B"
	case score >= 50:
		return "C+"
	default:
		return "C"
	}
}

func actionPlan(d domain.ImpactDimensions) []string {
	dims := []struct {
		name  string
		value float64
	}{
		{"airQuality", d.AirQuality},
		{"waterQuality", d.WaterQuality},
		{"soilHealth", d.SoilHealth},
		{"biodiversity", d.Biodiversity},
		{"wasteReduction", d.WasteReduction},
	}

	var plan []string
	for _, dim := range dims {
		if dim.value < ActionPlanThreshold {
			plan = append(plan, "Improve "+dim.name+" through targeted actions")
		}
	}
	return plan
}

func effectiveScale(scale float64) float64 {
	if scale == 0 {
		return domain.DefaultScale
	}
	return scale
}
