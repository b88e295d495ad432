package gamification

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewEngine(catalog)
}

func challengeIDs(s domain.GamificationStrategy) []string {
	ids := make([]string, 0, len(s.Challenges))
	for _, c := range s.Challenges {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	assert.Len(t, catalog.Challenges, 4)
	assert.Len(t, catalog.Achievements, 5)
	assert.Equal(t, "7-Day Green Streak", catalog.Challenges[0].Title)
	assert.Equal(t, domain.DifficultyMedium, catalog.Challenges[0].Difficulty)
	assert.InDelta(t, 50, catalog.Challenges[0].Reward, 1e-9)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Tree Planting", DisplayName(domain.ActivityTreePlanting))
	assert.Equal(t, "Clean Energy Usage", DisplayName(domain.ActivityCleanEnergyUsage))
}

func TestBuild_ChallengeTriggers(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		behavior domain.BehaviorProfile
		want     []string
	}{
		{
			name:     "strong user",
			behavior: domain.BehaviorProfile{ConsistencyScore: 90, DiversityScore: 75, SocialEngagement: 60, QualityTrend: domain.TrendStable},
			want:     []string{},
		},
		{
			name:     "inconsistent",
			behavior: domain.BehaviorProfile{ConsistencyScore: 49, DiversityScore: 75, SocialEngagement: 60},
			want:     []string{"green-streak"},
		},
		{
			name:     "narrow",
			behavior: domain.BehaviorProfile{ConsistencyScore: 50, DiversityScore: 59, SocialEngagement: 60},
			want:     []string{"diversity-explorer"},
		},
		{
			name:     "declining and isolated",
			behavior: domain.BehaviorProfile{ConsistencyScore: 90, DiversityScore: 75, SocialEngagement: 10, QualityTrend: domain.TrendDeclining},
			want:     []string{"quality-comeback", "community-spark"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Build(ctx, Input{ActivityType: domain.ActivityRecycling, Behavior: tt.behavior})
			assert.Equal(t, tt.want, challengeIDs(got))
		})
	}
}

func TestBuild_AchievementProgress(t *testing.T) {
	engine := newEngine(t)
	history := make([]domain.HistoryEntry, 4)
	for i := range history {
		history[i].ActivityType = domain.ActivityTreePlanting
	}

	got := engine.Build(context.Background(), Input{
		ActivityType: domain.ActivityTreePlanting,
		Behavior:     domain.BehaviorProfile{ConsistencyScore: 100, DiversityScore: 100, SocialEngagement: 100},
		Profile: domain.UserProfile{
			Streak:    domain.StreakData{Current: 7},
			Community: domain.CommunityMetrics{Referrals: 1},
		},
		History: history,
	})

	byID := map[string]domain.Achievement{}
	for _, a := range got.Achievements {
		byID[a.ID] = a
	}
	assert.True(t, byID["first-steps"].Unlocked)
	assert.True(t, byID["week-warrior"].Unlocked)
	assert.InDelta(t, 0.5, byID["eco-regular"].Progress, 1e-9)
	assert.Equal(t, "Tree Planting Regular", byID["eco-regular"].Title)
	assert.Equal(t, "Log 10 tree planting activities", byID["eco-regular"].Description)
	assert.InDelta(t, 1.0/8, byID["all-rounder"].Progress, 1e-9)
	assert.InDelta(t, 0.2, byID["community-builder"].Progress, 1e-9)

	// one nearly unlocked achievement plus the always-on leaderboard
	assert.InDelta(t, 2+3, got.ExpectedEngagementIncrease, 1e-9)
	assert.Equal(t, PriorityLow, got.Priority)
}

func TestBuild_NewUserIsHighPriority(t *testing.T) {
	engine := newEngine(t)

	got := engine.Build(context.Background(), Input{
		ActivityType: domain.ActivityComposting,
		Behavior:     domain.BehaviorProfile{EngagementPattern: domain.EngagementNewUser},
	})

	assert.Equal(t, PriorityHigh, got.Priority)
	assert.Contains(t, got.SocialFeatures, "Join a local cleanup team")
	assert.LessOrEqual(t, got.ExpectedEngagementIncrease, MaxUplift)
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate id", "challenges:\n  - {id: a, trigger: always, reward: 1}\n  - {id: a, trigger: always, reward: 1}\n"},
		{"unknown trigger", "challenges:\n  - {id: a, trigger: sometimes, reward: 1}\n"},
		{"zero reward", "challenges:\n  - {id: a, trigger: always}\n"},
		{"unknown metric", "achievements:\n  - {id: a, metric: karma, target: 1}\n"},
		{"zero target", "achievements:\n  - {id: a, metric: streak}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog))
		})
	}

	_, err := ParseCatalog([]byte("challenges: [unterminated"))
	assert.Error(t, err)
}

func TestLoadCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("social_features:\n  - {trigger: always, feature: Plant together}\n"), 0o644))

	catalog, err := LoadCatalog(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, catalog.SocialFeatures, 1)

	_, err = LoadCatalog(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
