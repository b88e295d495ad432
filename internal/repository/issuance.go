package repository

import (
	"context"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

// Issuance stores reward decisions and their issuance outcome per process
type Issuance interface {
	// SaveIssuance creates or replaces the record of rec.ProcessID
	SaveIssuance(ctx context.Context, rec domain.IssuanceRecord) error

	// GetIssuance returns the record or domain.ErrRewardNotFound
	GetIssuance(ctx context.Context, processID string) (*domain.IssuanceRecord, error)
}
