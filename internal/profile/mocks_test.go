package profile

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockRepository) UpsertProfile(ctx context.Context, p domain.UserProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) RecordActivity(ctx context.Context, p domain.UserProfile, entry domain.HistoryEntry) error {
	args := m.Called(ctx, p, entry)
	return args.Error(0)
}

func (m *MockRepository) GetHistory(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}
