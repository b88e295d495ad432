package impact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

var fixedNow = time.Date(2026, time.April, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestValidate_WellDocumentedActivity(t *testing.T) {
	calc := NewCalculator(WithClock(fixedClock))

	got := calc.Validate(Activity{
		Type: domain.ActivityTreePlanting,
		Metadata: domain.PhotoMetadata{
			Timestamp:  fixedNow.Add(-time.Hour),
			GPS:        &domain.GPSCoordinates{Latitude: 10, Longitude: 20, Accuracy: 5},
			DeviceInfo: "Pixel 8",
			Labels:     []string{"tree", "shovel"},
		},
	}, domain.VerificationResult{VerificationScore: 90})

	assert.Equal(t, domain.ValidationChecks{
		EnvironmentalRelevance: 100,
		ActivityAuthenticity:   95,
		LocationConsistency:    100,
		TimeConsistency:        100,
		ImpactPotential:        95,
	}, got.Checks)
	assert.InDelta(t, 98, got.ValidationScore, 1e-9)
	assert.True(t, got.IsValid)
	assert.Equal(t, domain.FraudRiskLow, got.FraudRisk)
	assert.Empty(t, got.Issues)
}

func TestValidate_BareSubmissionIsInvalid(t *testing.T) {
	calc := NewCalculator(WithClock(fixedClock))

	got := calc.Validate(Activity{Type: "mystery"}, domain.VerificationResult{})

	assert.InDelta(t, 38, got.ValidationScore, 1e-9)
	assert.False(t, got.IsValid)
	assert.Equal(t, domain.FraudRiskHigh, got.FraudRisk)
	assert.Len(t, got.Issues, 3)
}

func TestValidate_ThresholdIsStrict(t *testing.T) {
	calc := NewCalculator(WithClock(fixedClock))

	// relevance 80, authenticity (40+60)/2=50, location 50, time 80, impact 90 => mean 70
	got := calc.Validate(Activity{
		Type:     domain.ActivityCleanEnergyUsage,
		Metadata: domain.PhotoMetadata{Timestamp: fixedNow.Add(-72 * time.Hour)},
	}, domain.VerificationResult{VerificationScore: 40})

	assert.InDelta(t, 70, got.ValidationScore, 1e-9)
	assert.False(t, got.IsValid)
}

func TestTimeCheck(t *testing.T) {
	tests := []struct {
		name     string
		taken    time.Time
		expected float64
	}{
		{"missing", time.Time{}, TimeMissing},
		{"future", fixedNow.Add(time.Hour), TimeFuture},
		{"small clock skew", fixedNow.Add(2 * time.Minute), TimeSameDay},
		{"same day", fixedNow.Add(-23 * time.Hour), TimeSameDay},
		{"this week", fixedNow.Add(-6 * 24 * time.Hour), TimeThisWeek},
		{"this month", fixedNow.Add(-20 * 24 * time.Hour), TimeThisMonth},
		{"stale", fixedNow.Add(-90 * 24 * time.Hour), TimeStale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timeCheck(tt.taken, fixedNow))
		})
	}
}

func TestLocationCheck(t *testing.T) {
	assert.Equal(t, LocationNoGPS, locationCheck(nil))
	assert.Equal(t, LocationNullIsland, locationCheck(&domain.GPSCoordinates{}))
	assert.Equal(t, LocationImprecise, locationCheck(&domain.GPSCoordinates{Latitude: 1, Longitude: 1, Accuracy: 5000}))
	assert.Equal(t, LocationConsistent, locationCheck(&domain.GPSCoordinates{Latitude: 1, Longitude: 1, Accuracy: 10}))
}
