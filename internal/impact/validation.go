package impact

import (
	"math"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/utils"
)

// Validate runs the metadata-driven second authenticity pass. The activity is
// valid when the mean of the five checks exceeds 70.
func (c *Calculator) Validate(a Activity, verification domain.VerificationResult) domain.ActivityValidation {
	checks := domain.ValidationChecks{
		EnvironmentalRelevance: relevanceCheck(a),
		ActivityAuthenticity:   authenticityCheck(a, verification),
		LocationConsistency:    locationCheck(a.Metadata.GPS),
		TimeConsistency:        timeCheck(a.Metadata.Timestamp, c.now()),
		ImpactPotential:        impactPotential(a),
	}

	mean := utils.RoundTo(checks.Mean(), 2)

	return domain.ActivityValidation{
		IsValid:         mean > ValidationThreshold,
		ValidationScore: mean,
		Checks:          checks,
		FraudRisk:       fraudRisk(mean),
		Issues:          validationIssues(checks),
	}
}

func relevanceCheck(a Activity) float64 {
	if !a.Type.IsKnown() {
		return RelevanceUnknownType
	}
	score := RelevanceKnownType
	if len(a.Metadata.Labels) > 0 || a.Metadata.Description != "" {
		score += RelevanceDescribedBonus
	}
	return score
}

func authenticityCheck(a Activity, verification domain.VerificationResult) float64 {
	device := AuthenticityWithoutDevice
	if a.Metadata.DeviceInfo != "" {
		device = AuthenticityWithDevice
	}
	return (float64(verification.VerificationScore) + device) / 2
}

func locationCheck(gps *domain.GPSCoordinates) float64 {
	switch {
	case gps == nil:
		return LocationNoGPS
	case gps.Latitude == 0 && gps.Longitude == 0:
		return LocationNullIsland
	case gps.Accuracy > LocationMaxAccuracy:
		return LocationImprecise
	default:
		return LocationConsistent
	}
}

func timeCheck(taken, now time.Time) float64 {
	if taken.IsZero() {
		return TimeMissing
	}
	age := now.Sub(taken)
	switch {
	case age < -ClockSkewAllowed*time.Minute:
		return TimeFuture
	case age <= 24*time.Hour:
		return TimeSameDay
	case age <= 7*24*time.Hour:
		return TimeThisWeek
	case age <= 30*24*time.Hour:
		return TimeThisMonth
	default:
		return TimeStale
	}
}

func impactPotential(a Activity) float64 {
	base, ok := sustainabilityBaseScores[a.Type]
	if !ok {
		base = DefaultSustainabilityBase
	}
	return math.Min(MaxScore, base*QualityMultiplier(a.Evidence))
}

func fraudRisk(mean float64) domain.FraudRiskLevel {
	switch {
	case mean >= FraudLowThreshold:
		return domain.FraudRiskLow
	case mean >= FraudMediumThreshold:
		return domain.FraudRiskMedium
	default:
		return domain.FraudRiskHigh
	}
}

func validationIssues(c domain.ValidationChecks) []string {
	var issues []string
	if c.EnvironmentalRelevance < IssueThreshold {
		issues = append(issues, "activity is not recognised as environmental")
	}
	if c.ActivityAuthenticity < IssueThreshold {
		issues = append(issues, "photo authenticity could not be established")
	}
	if c.LocationConsistency < IssueThreshold {
		issues = append(issues, "location data is missing or implausible")
	}
	if c.TimeConsistency < IssueThreshold {
		issues = append(issues, "photo timestamp is missing, stale or in the future")
	}
	if c.ImpactPotential < IssueThreshold {
		issues = append(issues, "activity has low impact potential")
	}
	return issues
}
