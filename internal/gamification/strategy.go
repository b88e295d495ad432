package gamification

import (
	"context"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// Input is what the strategy builder looks at
type Input struct {
	ActivityType domain.ActivityType
	Behavior     domain.BehaviorProfile
	Profile      domain.UserProfile
	History      []domain.HistoryEntry
}

// Engine builds gamification strategies from a catalog. It is read-only
// after construction and safe for concurrent use.
type Engine struct {
	catalog *Catalog
}

// NewEngine creates an Engine over catalog
func NewEngine(catalog *Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// DisplayName renders an activity type for people, e.g. "Tree Planting"
func DisplayName(t domain.ActivityType) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(t), "-", " "))
}

// Build selects challenges, achievement progress and social features for
// one submission. It has no effect on scoring.
func (e *Engine) Build(ctx context.Context, in Input) domain.GamificationStrategy {
	name := DisplayName(in.ActivityType)
	render := strings.NewReplacer(ActivityPlaceholder, name)
	lowerRender := strings.NewReplacer(ActivityPlaceholder, strings.ToLower(name))

	strategy := domain.GamificationStrategy{
		Challenges:   []domain.Challenge{},
		Achievements: []domain.Achievement{},
	}

	for _, def := range e.catalog.Challenges {
		if !fires(def.Trigger, def.Threshold, in.Behavior) {
			continue
		}
		ch := def.Challenge
		ch.Title = render.Replace(ch.Title)
		ch.Description = lowerRender.Replace(ch.Description)
		strategy.Challenges = append(strategy.Challenges, ch)
	}

	nearlyUnlocked := 0
	for _, def := range e.catalog.Achievements {
		a := def.Achievement
		a.Title = render.Replace(a.Title)
		a.Description = lowerRender.Replace(a.Description)
		a.Progress = math.Min(1, metric(def.Metric, in)/def.Target)
		a.Unlocked = a.Progress >= 1
		if !a.Unlocked && a.Progress >= NearlyUnlockedProgress {
			nearlyUnlocked++
		}
		strategy.Achievements = append(strategy.Achievements, a)
	}

	for _, def := range e.catalog.SocialFeatures {
		if fires(def.Trigger, def.Threshold, in.Behavior) {
			strategy.SocialFeatures = append(strategy.SocialFeatures, def.Feature)
		}
	}

	strategy.Priority = priority(in.Behavior, len(strategy.Challenges))
	strategy.ExpectedEngagementIncrease = math.Min(MaxUplift,
		UpliftPerChallenge*float64(len(strategy.Challenges))+
			UpliftPerNearlyUnlocked*float64(nearlyUnlocked)+
			UpliftPerSocialFeature*float64(len(strategy.SocialFeatures)))

	logger.FromContext(ctx).Debug(LogMsgStrategyBuilt,
		"challenges", len(strategy.Challenges),
		"priority", strategy.Priority)
	return strategy
}

func fires(trigger string, threshold float64, b domain.BehaviorProfile) bool {
	switch trigger {
	case TriggerConsistencyBelow:
		return b.ConsistencyScore < threshold
	case TriggerDiversityBelow:
		return b.DiversityScore < threshold
	case TriggerSocialBelow:
		return b.SocialEngagement < threshold
	case TriggerQualityDeclining:
		return b.QualityTrend == domain.TrendDeclining
	case TriggerNewUser:
		return b.EngagementPattern == domain.EngagementNewUser
	case TriggerAlways:
		return true
	default:
		return false
	}
}

// metric measures an achievement metric, counting the current submission
func metric(name string, in Input) float64 {
	switch name {
	case MetricActivities:
		return float64(len(in.History) + 1)
	case MetricActivityTypeCount:
		n := 1
		for _, h := range in.History {
			if h.ActivityType == in.ActivityType {
				n++
			}
		}
		return float64(n)
	case MetricStreak:
		return float64(max(in.Profile.Streak.Current, in.Profile.Streak.Longest))
	case MetricDistinctTypes:
		seen := map[domain.ActivityType]struct{}{}
		if in.ActivityType.IsKnown() {
			seen[in.ActivityType] = struct{}{}
		}
		for _, h := range in.History {
			if h.ActivityType.IsKnown() {
				seen[h.ActivityType] = struct{}{}
			}
		}
		return float64(len(seen))
	case MetricReferrals:
		return float64(in.Profile.Community.Referrals)
	default:
		return 0
	}
}

func priority(b domain.BehaviorProfile, challenges int) string {
	switch {
	case b.EngagementPattern == domain.EngagementNewUser,
		b.EngagementPattern == domain.EngagementOccasional,
		b.QualityTrend == domain.TrendDeclining:
		return PriorityHigh
	case challenges > 0:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
