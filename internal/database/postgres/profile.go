package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/repository"
)

type profileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(db *pgxpool.Pool) repository.Profile {
	return &profileRepository{db: db}
}

const upsertProfileSQL = `
	INSERT INTO user_profiles (
		user_id, streak_current, streak_longest, last_activity,
		referrals, social_shares, mentorship_points, daily_earned
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (user_id) DO UPDATE SET
		streak_current = EXCLUDED.streak_current,
		streak_longest = EXCLUDED.streak_longest,
		last_activity = EXCLUDED.last_activity,
		referrals = EXCLUDED.referrals,
		social_shares = EXCLUDED.social_shares,
		mentorship_points = EXCLUDED.mentorship_points,
		daily_earned = EXCLUDED.daily_earned,
		updated_at = NOW()
`

// GetProfile returns the stored profile or domain.ErrUserNotFound
func (r *profileRepository) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `
		SELECT user_id, streak_current, streak_longest, last_activity,
		       referrals, social_shares, mentorship_points, daily_earned
		FROM user_profiles
		WHERE user_id = $1
	`

	var p domain.UserProfile
	var last pgtype.Timestamptz
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Streak.Current,
		&p.Streak.Longest,
		&last,
		&p.Community.Referrals,
		&p.Community.SocialShares,
		&p.Community.MentorshipPoints,
		&p.DailyEarned,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	p.Streak.LastActivity = fromTimestamptz(last)
	return &p, nil
}

// UpsertProfile creates or replaces a profile
func (r *profileRepository) UpsertProfile(ctx context.Context, p domain.UserProfile) error {
	if _, err := r.db.Exec(ctx, upsertProfileSQL, profileArgs(p)...); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertProfile, err)
	}
	return nil
}

// RecordActivity saves the profile and appends entry in one transaction
func (r *profileRepository) RecordActivity(ctx context.Context, p domain.UserProfile, entry domain.HistoryEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, upsertProfileSQL, profileArgs(p)...); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertProfile, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO activity_history (user_id, activity_type, quality_score, reward_amount, location, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.UserID, string(entry.ActivityType), entry.QualityScore, entry.RewardAmount,
		nullableText(entry.Location), entry.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertHistory, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return nil
}

// GetHistory returns up to limit most recent entries, oldest first
func (r *profileRepository) GetHistory(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	query := `
		SELECT activity_type, quality_score, reward_amount, location, occurred_at
		FROM (
			SELECT activity_type, quality_score, reward_amount, location, occurred_at, id
			FROM activity_history
			WHERE user_id = $1
			ORDER BY occurred_at DESC, id DESC
			LIMIT $2
		) recent
		ORDER BY occurred_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryHistory, err)
	}
	defer rows.Close()

	var history []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var activityType string
		var location pgtype.Text
		if err := rows.Scan(&activityType, &entry.QualityScore, &entry.RewardAmount, &location, &entry.Timestamp); err != nil {
			return nil, err
		}
		entry.ActivityType = domain.ActivityType(activityType)
		entry.Location = location.String
		entry.Timestamp = entry.Timestamp.UTC()
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func profileArgs(p domain.UserProfile) []any {
	return []any{
		p.UserID,
		p.Streak.Current,
		p.Streak.Longest,
		toTimestamptz(p.Streak.LastActivity),
		p.Community.Referrals,
		p.Community.SocialShares,
		p.Community.MentorshipPoints,
		p.DailyEarned,
	}
}
