package behavior

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

var fixedNow = time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

// dailyHistory returns n entries one per day, oldest first, ending today
func dailyHistory(n int, quality func(i int) float64) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, n)
	for i := 0; i < n; i++ {
		out[i] = domain.HistoryEntry{
			ActivityType: domain.ActivityRecycling,
			Timestamp:    fixedNow.AddDate(0, 0, -(n - 1 - i)),
			QualityScore: quality(i),
		}
	}
	return out
}

func constQuality(q float64) func(int) float64 {
	return func(int) float64 { return q }
}

func TestConsistencyScore(t *testing.T) {
	tests := []struct {
		name    string
		history []domain.HistoryEntry
		want    float64
	}{
		{"too few entries", dailyHistory(6, constQuality(80)), 0},
		{"every day", dailyHistory(7, constQuality(80)), 100},
		{"older history ignored", dailyHistory(20, constQuality(80)), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ConsistencyScore(tt.history, fixedNow), 1e-9)
		})
	}

	t.Run("same day entries count once", func(t *testing.T) {
		history := make([]domain.HistoryEntry, 7)
		for i := range history {
			history[i] = domain.HistoryEntry{Timestamp: fixedNow.Add(-time.Duration(i) * time.Minute)}
		}
		assert.InDelta(t, 100.0/7, ConsistencyScore(history, fixedNow), 1e-9)
	})
}

func TestDiversityScore(t *testing.T) {
	history := []domain.HistoryEntry{
		{ActivityType: domain.ActivityTreePlanting},
		{ActivityType: domain.ActivityTreePlanting},
		{ActivityType: domain.ActivityRecycling},
		{ActivityType: "juggling"},
	}
	assert.InDelta(t, 25.0, DiversityScore(history), 1e-9)
	assert.Zero(t, DiversityScore(nil))
}

func TestQualityTrendOf(t *testing.T) {
	rising := func(i int) float64 {
		if i >= 5 {
			return 90
		}
		return 60
	}
	falling := func(i int) float64 {
		if i >= 5 {
			return 50
		}
		return 80
	}
	assert.Equal(t, domain.TrendInsufficientData, QualityTrendOf(dailyHistory(9, constQuality(80))))
	assert.Equal(t, domain.TrendImproving, QualityTrendOf(dailyHistory(10, rising)))
	assert.Equal(t, domain.TrendDeclining, QualityTrendOf(dailyHistory(10, falling)))
	assert.Equal(t, domain.TrendStable, QualityTrendOf(dailyHistory(10, constQuality(70))))
}

func TestEngagementPatternOf(t *testing.T) {
	spaced := func(n int, gap time.Duration) []domain.HistoryEntry {
		out := make([]domain.HistoryEntry, n)
		for i := range out {
			out[i].Timestamp = fixedNow.Add(time.Duration(i-n) * gap)
		}
		return out
	}
	day := 24 * time.Hour

	assert.Equal(t, domain.EngagementNewUser, EngagementPatternOf(nil))
	assert.Equal(t, domain.EngagementOccasional, EngagementPatternOf(spaced(1, day)))
	assert.Equal(t, domain.EngagementHighly, EngagementPatternOf(spaced(5, day)))
	assert.Equal(t, domain.EngagementRegularly, EngagementPatternOf(spaced(5, 3*day)))
	assert.Equal(t, domain.EngagementModerately, EngagementPatternOf(spaced(5, 5*day)))
	assert.Equal(t, domain.EngagementOccasional, EngagementPatternOf(spaced(5, 10*day)))
}

func TestSocialEngagement(t *testing.T) {
	assert.InDelta(t, 0, SocialEngagement(domain.CommunityMetrics{}), 1e-9)
	assert.InDelta(t, 36, SocialEngagement(domain.CommunityMetrics{Referrals: 2, SocialShares: 3, MentorshipPoints: 2}), 1e-9)
	assert.InDelta(t, 100, SocialEngagement(domain.CommunityMetrics{Referrals: 50}), 1e-9)
}

func TestLearningProgression(t *testing.T) {
	rising := func(i int) float64 {
		if i >= 5 {
			return 80
		}
		return 70
	}
	assert.Zero(t, LearningProgression(dailyHistory(4, constQuality(80))))
	assert.InDelta(t, 50, LearningProgression(dailyHistory(10, constQuality(80))), 1e-9)
	assert.InDelta(t, 70, LearningProgression(dailyHistory(10, rising)), 1e-9)
}

func TestAnalyze(t *testing.T) {
	analyzer := NewAnalyzer(WithClock(func() time.Time { return fixedNow }))
	profile := domain.UserProfile{
		UserID:    "user-1",
		Community: domain.CommunityMetrics{Referrals: 2, SocialShares: 3, MentorshipPoints: 2},
	}

	got := analyzer.Analyze(context.Background(), profile, dailyHistory(10, constQuality(80)))

	assert.InDelta(t, 100, got.ConsistencyScore, 1e-9)
	assert.InDelta(t, 12.5, got.DiversityScore, 1e-9)
	assert.Equal(t, domain.TrendStable, got.QualityTrend)
	assert.Equal(t, domain.EngagementHighly, got.EngagementPattern)
	assert.Equal(t, domain.RiskLow, got.Risk.Level)

	// .25*100 + .25*80 + .20*12.5 + .20*36 + .10*50
	assert.InDelta(t, 59.7, got.BehaviorScore, 1e-9)
	assert.Equal(t, []string{RecommendationDiversity}, got.Recommendations)
}

func TestAnalyze_NewUser(t *testing.T) {
	analyzer := NewAnalyzer(WithClock(func() time.Time { return fixedNow }))

	got := analyzer.Analyze(context.Background(), domain.UserProfile{UserID: "fresh"}, nil)

	assert.Equal(t, domain.EngagementNewUser, got.EngagementPattern)
	assert.Equal(t, domain.TrendInsufficientData, got.QualityTrend)
	assert.Zero(t, got.BehaviorScore)
	assert.Len(t, got.Recommendations, 3)
}

func TestAnalyze_RiskFlags(t *testing.T) {
	analyzer := NewAnalyzer(WithClock(func() time.Time { return fixedNow }), WithDailyCap(100))

	burst := make([]domain.HistoryEntry, 5)
	for i := range burst {
		burst[i] = domain.HistoryEntry{
			ActivityType: domain.ActivityWasteCleanup,
			Timestamp:    fixedNow.Add(time.Duration(i) * 5 * time.Minute),
			QualityScore: 20,
		}
	}

	got := analyzer.Analyze(context.Background(), domain.UserProfile{UserID: "u", DailyEarned: 100}, burst)

	assert.Equal(t, domain.RiskHigh, got.Risk.Level)
	assert.ElementsMatch(t, []string{FlagBurstActivity, FlagLowQuality, FlagDailyCapReached}, got.Risk.Flags)
}

func TestAnalyze_UnsortedHistoryIsOrdered(t *testing.T) {
	analyzer := NewAnalyzer(WithClock(func() time.Time { return fixedNow }))
	history := dailyHistory(7, constQuality(80))
	history[0], history[6] = history[6], history[0]

	got := analyzer.Analyze(context.Background(), domain.UserProfile{}, history)

	assert.Equal(t, domain.EngagementHighly, got.EngagementPattern)
	assert.InDelta(t, 100, got.ConsistencyScore, 1e-9)
}

func TestAnalyze_RunningMetricsArePerUser(t *testing.T) {
	analyzer := NewAnalyzer(WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()

	strong := analyzer.Analyze(ctx, domain.UserProfile{UserID: "strong"}, dailyHistory(10, constQuality(100)))
	analyzer.Commit("strong", strong.Sample)
	weak := analyzer.Analyze(ctx, domain.UserProfile{UserID: "weak"}, nil)
	analyzer.Commit("weak", weak.Sample)

	assert.Greater(t, strong.BehaviorScore, 0.0)
	assert.Zero(t, weak.BehaviorScore)

	// a second, empty analysis for the strong user halves its running metrics
	again := analyzer.Analyze(ctx, domain.UserProfile{UserID: "strong"}, nil)
	assert.InDelta(t, strong.BehaviorScore/2, again.BehaviorScore, 0.01)
}

func TestAnalyze_LeavesTrackerUntilCommit(t *testing.T) {
	analyzer := NewAnalyzer(WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()
	history := dailyHistory(7, constQuality(90))

	first := analyzer.Analyze(ctx, domain.UserProfile{UserID: "u"}, history)
	second := analyzer.Analyze(ctx, domain.UserProfile{UserID: "u"}, history)

	assert.Zero(t, analyzer.Tracker().Len())
	assert.Equal(t, first.Metrics, second.Metrics, "uncommitted analyses must not compound")
	assert.Equal(t, first.Sample, first.Metrics, "with no history the running metrics equal the sample")

	analyzer.Commit("u", first.Sample)

	m, ok := analyzer.Tracker().Metrics("u")
	require.True(t, ok)
	assert.Equal(t, first.Sample, m)
}

func TestTracker_Reset(t *testing.T) {
	analyzer := NewAnalyzer(WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()
	got := analyzer.Analyze(ctx, domain.UserProfile{UserID: "a"}, dailyHistory(7, constQuality(90)))
	analyzer.Commit("a", got.Sample)
	require.Equal(t, 1, analyzer.Tracker().Len())

	analyzer.Reset(ctx)

	assert.Zero(t, analyzer.Tracker().Len())
	_, ok := analyzer.Tracker().Metrics("a")
	assert.False(t, ok)
}

func TestTracker_ConcurrentRecord(t *testing.T) {
	tracker := NewTracker(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Record("shared", domain.BehaviorMetrics{Quality: 40})
		}()
	}
	wg.Wait()

	m, ok := tracker.Metrics("shared")
	require.True(t, ok)
	assert.InDelta(t, 40, m.Quality, 1e-9)
}
