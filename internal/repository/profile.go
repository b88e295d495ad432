package repository

import (
	"context"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

// Profile defines storage for user profiles and their activity history
type Profile interface {
	// GetProfile returns the stored profile or domain.ErrUserNotFound
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)

	// UpsertProfile creates or replaces a profile
	UpsertProfile(ctx context.Context, profile domain.UserProfile) error

	// RecordActivity saves the profile and appends entry in one transaction
	RecordActivity(ctx context.Context, profile domain.UserProfile, entry domain.HistoryEntry) error

	// GetHistory returns up to limit most recent entries, oldest first
	GetHistory(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error)
}
