package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/repository"
)

// Service reads and updates user profiles through a short-lived cache
type Service interface {
	// Get returns the profile as of now; unknown users get a zero profile
	Get(ctx context.Context, userID string) (domain.UserProfile, error)

	// History returns up to limit most recent entries, oldest first
	History(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error)

	// RecordOutcome applies a rewarded activity to the user's profile
	RecordOutcome(ctx context.Context, userID string, entry domain.HistoryEntry) (domain.UserProfile, error)

	// Invalidate drops a cached profile
	Invalidate(userID string)
}

// Option configures the service
type Option func(*service)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	repo  repository.Profile
	cache *expirable.LRU[string, domain.UserProfile]
	now   func() time.Time
}

// NewService creates a profile service caching up to size profiles for ttl
func NewService(repo repository.Profile, size int, ttl time.Duration, opts ...Option) Service {
	if size <= 0 {
		size = 1
	}
	s := &service{
		repo:  repo,
		cache: expirable.NewLRU[string, domain.UserProfile](size, nil, ttl),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Get(ctx context.Context, userID string) (domain.UserProfile, error) {
	if userID == "" {
		return domain.UserProfile{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyUserID)
	}
	p, err := s.load(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return Rollover(p, s.now()), nil
}

func (s *service) History(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	return s.repo.GetHistory(ctx, userID, limit)
}

func (s *service) RecordOutcome(ctx context.Context, userID string, entry domain.HistoryEntry) (domain.UserProfile, error) {
	if userID == "" {
		return domain.UserProfile{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyUserID)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}

	current, err := s.load(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}

	updated := ApplyOutcome(current, entry)
	if err := s.repo.RecordActivity(ctx, updated, entry); err != nil {
		s.cache.Remove(userID)
		return domain.UserProfile{}, fmt.Errorf("%s: %w", ErrMsgRecordActivity, err)
	}
	s.cache.Add(userID, updated)

	logger.FromContext(ctx).Debug(LogMsgOutcomeRecorded,
		"user_id", userID,
		"streak", updated.Streak.Current,
		"daily_earned", updated.DailyEarned)
	return updated, nil
}

func (s *service) Invalidate(userID string) {
	s.cache.Remove(userID)
}

// load returns the cached or stored profile, or a fresh one for unknown users
func (s *service) load(ctx context.Context, userID string) (domain.UserProfile, error) {
	if p, ok := s.cache.Get(userID); ok {
		return p, nil
	}

	stored, err := s.repo.GetProfile(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		logger.FromContext(ctx).Debug(LogMsgProfileCreated, "user_id", userID)
		return domain.UserProfile{UserID: userID}, nil
	case err != nil:
		logger.FromContext(ctx).Error(LogMsgProfileLoadError, "user_id", userID, "error", err)
		return domain.UserProfile{}, fmt.Errorf("%s: %w", ErrMsgLoadProfile, err)
	}

	s.cache.Add(userID, *stored)
	return *stored, nil
}

// ApplyOutcome folds one activity into a profile. Same UTC day keeps the
// streak, the next day extends it, anything else restarts it at one. Daily
// earnings reset when the day changes.
func ApplyOutcome(p domain.UserProfile, entry domain.HistoryEntry) domain.UserProfile {
	last := p.Streak.LastActivity
	switch gap := dayGap(last, entry.Timestamp); {
	case last.IsZero() || p.Streak.Current == 0:
		p.Streak.Current = 1
	case gap == 0:
	case gap == 1:
		p.Streak.Current++
	case gap < 0:
		// late arrival for an earlier day leaves the streak alone
	default:
		p.Streak.Current = 1
	}
	if p.Streak.Current > p.Streak.Longest {
		p.Streak.Longest = p.Streak.Current
	}

	if last.IsZero() || dayGap(last, entry.Timestamp) > 0 {
		p.DailyEarned = 0
	}
	p.DailyEarned += entry.RewardAmount

	if entry.Timestamp.After(last) {
		p.Streak.LastActivity = entry.Timestamp.UTC()
	}
	return p
}

// Rollover returns p as seen at now: daily earnings from an earlier day are
// cleared and a streak not continued since yesterday is broken
func Rollover(p domain.UserProfile, now time.Time) domain.UserProfile {
	if p.Streak.LastActivity.IsZero() {
		return p
	}
	gap := dayGap(p.Streak.LastActivity, now)
	if gap > 0 {
		p.DailyEarned = 0
	}
	if gap > 1 {
		p.Streak.Current = 0
	}
	return p
}

// dayGap counts UTC calendar days from a to b
func dayGap(a, b time.Time) int {
	da := truncateDay(a)
	db := truncateDay(b)
	return int(db.Sub(da).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
