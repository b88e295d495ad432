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

type issuanceRepository struct {
	db *pgxpool.Pool
}

// NewIssuanceRepository creates a new PostgreSQL issuance repository
func NewIssuanceRepository(db *pgxpool.Pool) repository.Issuance {
	return &issuanceRepository{db: db}
}

const upsertIssuanceSQL = `
	INSERT INTO reward_issuances (
		process_id, user_id, activity_type, recipient, amount, tier,
		status, transaction_ref, error, attempts, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (process_id) DO UPDATE SET
		status = EXCLUDED.status,
		transaction_ref = EXCLUDED.transaction_ref,
		error = EXCLUDED.error,
		attempts = EXCLUDED.attempts,
		updated_at = EXCLUDED.updated_at
`

// SaveIssuance creates the record or updates its outcome. The reward decision
// itself (recipient, amount, tier) is never overwritten.
func (r *issuanceRepository) SaveIssuance(ctx context.Context, rec domain.IssuanceRecord) error {
	_, err := r.db.Exec(ctx, upsertIssuanceSQL,
		rec.ProcessID,
		nullableText(rec.UserID),
		string(rec.ActivityType),
		rec.Recipient,
		rec.Amount,
		nullableText(string(rec.Tier)),
		string(rec.Status),
		nullableText(rec.TransactionRef),
		nullableText(rec.Error),
		rec.Attempts,
		toTimestamptz(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveIssuance, err)
	}
	return nil
}

// GetIssuance returns the record or domain.ErrRewardNotFound
func (r *issuanceRepository) GetIssuance(ctx context.Context, processID string) (*domain.IssuanceRecord, error) {
	query := `
		SELECT process_id, user_id, activity_type, recipient, amount, tier,
		       status, transaction_ref, error, attempts, updated_at
		FROM reward_issuances
		WHERE process_id = $1
	`

	var rec domain.IssuanceRecord
	var userID, tier, txRef, errText pgtype.Text
	var activity, status string
	var updated pgtype.Timestamptz
	err := r.db.QueryRow(ctx, query, processID).Scan(
		&rec.ProcessID,
		&userID,
		&activity,
		&rec.Recipient,
		&rec.Amount,
		&tier,
		&status,
		&txRef,
		&errText,
		&rec.Attempts,
		&updated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRewardNotFound, processID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryIssuance, err)
	}

	rec.UserID = userID.String
	rec.ActivityType = domain.ActivityType(activity)
	rec.Tier = domain.TokenTier(tier.String)
	rec.Status = domain.IssuanceStatus(status)
	rec.TransactionRef = txRef.String
	rec.Error = errText.String
	rec.UpdatedAt = fromTimestamptz(updated)
	return &rec, nil
}
