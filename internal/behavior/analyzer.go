package behavior

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/utils"
)

// Analyzer derives a BehaviorProfile from a user's profile and history
type Analyzer struct {
	tracker  *Tracker
	now      func() time.Time
	dailyCap float64
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithClock overrides the reference time for day-based metrics
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// WithDailyCap sets the daily reward cap used by the cap-reached risk flag
func WithDailyCap(limit float64) Option {
	return func(a *Analyzer) {
		a.dailyCap = limit
	}
}

// WithTracker replaces the analyzer's metric tracker
func WithTracker(t *Tracker) Option {
	return func(a *Analyzer) {
		a.tracker = t
	}
}

// NewAnalyzer creates an Analyzer with a fresh, zeroed tracker
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		tracker:  NewTracker(DefaultTrackedUsers),
		now:      time.Now,
		dailyCap: DefaultDailyCap,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Tracker exposes the analyzer's running metrics
func (a *Analyzer) Tracker() *Tracker {
	return a.tracker
}

// Reset clears all running metrics
func (a *Analyzer) Reset(ctx context.Context) {
	a.tracker.Reset()
	logger.FromContext(ctx).Info(LogMsgTrackerReset)
}

// Analyze computes the behaviour profile for one submission. The running
// metrics it reports include this submission, but the tracker is left
// untouched until Commit is called with the profile's Sample.
func (a *Analyzer) Analyze(ctx context.Context, profile domain.UserProfile, history []domain.HistoryEntry) domain.BehaviorProfile {
	sorted := chronological(history)
	now := a.now()

	result := domain.BehaviorProfile{
		ConsistencyScore:    ConsistencyScore(sorted, now),
		DiversityScore:      DiversityScore(sorted),
		QualityTrend:        QualityTrendOf(sorted),
		EngagementPattern:   EngagementPatternOf(sorted),
		SocialEngagement:    SocialEngagement(profile.Community),
		LearningProgression: LearningProgression(sorted),
	}
	result.Risk = a.assessRisk(profile, sorted)

	snapshot := domain.BehaviorMetrics{
		Consistency: result.ConsistencyScore,
		Quality:     recentQuality(sorted),
		Diversity:   result.DiversityScore,
		Community:   result.SocialEngagement,
		Progression: result.LearningProgression,
	}
	result.Sample = snapshot
	result.Metrics = a.tracker.Preview(profile.UserID, snapshot)
	result.BehaviorScore = utils.RoundTo(Score(result.Metrics), 2)
	result.Recommendations = Recommendations(result)

	logger.FromContext(ctx).Debug(LogMsgBehaviorAnalyzed,
		"user_id", profile.UserID,
		"history", len(history),
		"behavior_score", result.BehaviorScore,
		"engagement", result.EngagementPattern,
		"risk", result.Risk.Level)

	return result
}

// Commit folds a completed submission's sample into the user's running metrics
func (a *Analyzer) Commit(userID string, sample domain.BehaviorMetrics) {
	a.tracker.Record(userID, sample)
}

// Score is the weighted behaviour score of a metrics set
func Score(m domain.BehaviorMetrics) float64 {
	return m.Consistency*WeightConsistency +
		m.Quality*WeightQuality +
		m.Diversity*WeightDiversity +
		m.Community*WeightCommunity +
		m.Progression*WeightProgression
}

// ConsistencyScore is the share of the last seven UTC calendar days ending on
// now's day that contain an activity. Fewer than seven entries score 0.
func ConsistencyScore(history []domain.HistoryEntry, now time.Time) float64 {
	if len(history) < MinConsistencyEntries {
		return 0
	}
	today := utcDay(now)
	first := today.AddDate(0, 0, -(ConsistencyWindowDays - 1))

	active := make(map[time.Time]struct{}, ConsistencyWindowDays)
	for _, h := range history {
		day := utcDay(h.Timestamp)
		if day.Before(first) || day.After(today) {
			continue
		}
		active[day] = struct{}{}
	}
	return float64(len(active)) / ConsistencyWindowDays * 100
}

// DiversityScore is the share of known activity types present in history
func DiversityScore(history []domain.HistoryEntry) float64 {
	seen := make(map[domain.ActivityType]struct{})
	for _, h := range history {
		if h.ActivityType.IsKnown() {
			seen[h.ActivityType] = struct{}{}
		}
	}
	return float64(len(seen)) / float64(len(domain.KnownActivityTypes)) * 100
}

// QualityTrendOf compares the last five entries' mean quality with the five before
func QualityTrendOf(history []domain.HistoryEntry) domain.QualityTrend {
	if len(history) < MinTrendEntries {
		return domain.TrendInsufficientData
	}
	recent, prior := trendWindows(history)
	switch {
	case recent > prior+TrendThreshold:
		return domain.TrendImproving
	case recent < prior-TrendThreshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// EngagementPatternOf buckets the mean gap between the last thirty activities
func EngagementPatternOf(history []domain.HistoryEntry) domain.EngagementPattern {
	if len(history) == 0 {
		return domain.EngagementNewUser
	}
	if len(history) == 1 {
		return domain.EngagementOccasional
	}

	window := history
	if len(window) > EngagementWindow {
		window = window[len(window)-EngagementWindow:]
	}
	span := window[len(window)-1].Timestamp.Sub(window[0].Timestamp)
	avgDays := span.Hours() / 24 / float64(len(window)-1)

	switch {
	case avgDays <= HighlyEngagedDays:
		return domain.EngagementHighly
	case avgDays <= RegularlyEngagedDays:
		return domain.EngagementRegularly
	case avgDays <= ModeratelyEngagedDays:
		return domain.EngagementModerately
	default:
		return domain.EngagementOccasional
	}
}

// SocialEngagement scores community activity on a 0-100 scale
func SocialEngagement(c domain.CommunityMetrics) float64 {
	points := c.Referrals*PointsPerReferral + c.SocialShares*PointsPerShare + c.MentorshipPoints*PointsPerMentorship
	return math.Min(100, float64(points))
}

// LearningProgression is 50 for flat quality, rising or falling two points per
// quality point of change between trend windows. Short histories score 0.
func LearningProgression(history []domain.HistoryEntry) float64 {
	if len(history) < MinTrendEntries {
		return 0
	}
	recent, prior := trendWindows(history)
	return utils.Clamp(ProgressionBaseline+ProgressionGain*(recent-prior), 0, 100)
}

// Recommendations suggests habits for weak behaviour dimensions
func Recommendations(p domain.BehaviorProfile) []string {
	var out []string
	if p.ConsistencyScore < RecommendConsistencyBelow {
		out = append(out, RecommendationConsistency)
	}
	if p.DiversityScore < RecommendDiversityBelow {
		out = append(out, RecommendationDiversity)
	}
	if p.SocialEngagement < RecommendSocialBelow {
		out = append(out, RecommendationSocial)
	}
	return out
}

func (a *Analyzer) assessRisk(profile domain.UserProfile, history []domain.HistoryEntry) domain.RiskAssessment {
	var flags []string
	if hasBurst(history) {
		flags = append(flags, FlagBurstActivity)
	}
	if len(history) >= LowQualityMinCount && meanQuality(history) < LowQualityThreshold {
		flags = append(flags, FlagLowQuality)
	}
	if a.dailyCap > 0 && profile.DailyEarned >= a.dailyCap {
		flags = append(flags, FlagDailyCapReached)
	}

	level := domain.RiskLow
	switch {
	case len(flags) >= 2:
		level = domain.RiskHigh
	case len(flags) == 1:
		level = domain.RiskMedium
	}
	return domain.RiskAssessment{Level: level, Flags: flags}
}

// hasBurst reports whether any BurstActivityCount consecutive activities fall
// inside BurstWindow
func hasBurst(history []domain.HistoryEntry) bool {
	for i := 0; i+BurstActivityCount-1 < len(history); i++ {
		if history[i+BurstActivityCount-1].Timestamp.Sub(history[i].Timestamp) <= BurstWindow {
			return true
		}
	}
	return false
}

func recentQuality(history []domain.HistoryEntry) float64 {
	if len(history) > QualityWindow {
		history = history[len(history)-QualityWindow:]
	}
	return meanQuality(history)
}

func meanQuality(history []domain.HistoryEntry) float64 {
	scores := make([]float64, len(history))
	for i, h := range history {
		scores[i] = h.QualityScore
	}
	return utils.Mean(scores)
}

func trendWindows(history []domain.HistoryEntry) (recent, prior float64) {
	n := len(history)
	recent = meanQuality(history[n-TrendWindow:])
	prior = meanQuality(history[n-2*TrendWindow : n-TrendWindow])
	return recent, prior
}

// chronological returns a copy of history ordered by timestamp
func chronological(history []domain.HistoryEntry) []domain.HistoryEntry {
	sorted := make([]domain.HistoryEntry, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
