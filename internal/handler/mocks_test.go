package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/event"
	"github.com/osse101/EcoHunt_Go/internal/eventlog"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

// MockSubmissionService mocks the submission.Service interface
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(ctx context.Context, sub domain.ActivitySubmission) (domain.ProcessResult, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(domain.ProcessResult), args.Error(1)
}

func (m *MockSubmissionService) SubmitBatch(ctx context.Context, subs []domain.ActivitySubmission) domain.BatchResult {
	args := m.Called(ctx, subs)
	return args.Get(0).(domain.BatchResult)
}

// streamFunc lets a test drive Stream with live behavior
type streamFunc func(context.Context, <-chan domain.ActivitySubmission) <-chan domain.ProcessResult

func (m *MockSubmissionService) Stream(ctx context.Context, in <-chan domain.ActivitySubmission) <-chan domain.ProcessResult {
	args := m.Called(ctx, in)
	if fn, ok := args.Get(0).(streamFunc); ok {
		return fn(ctx, in)
	}
	return args.Get(0).(<-chan domain.ProcessResult)
}

func (m *MockSubmissionService) RetryIssuance(ctx context.Context, req domain.RetryIssuanceRequest) (domain.IssuanceReceipt, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.IssuanceReceipt), args.Error(1)
}

func (m *MockSubmissionService) Stats() domain.OrchestratorStats {
	args := m.Called()
	return args.Get(0).(domain.OrchestratorStats)
}

// MockEventLogService mocks the eventlog.Service interface
type MockEventLogService struct {
	mock.Mock
}

func (m *MockEventLogService) Subscribe(bus event.Bus) error {
	args := m.Called(bus)
	return args.Error(0)
}

func (m *MockEventLogService) UserEvents(ctx context.Context, userID string, eventType string, limit int) ([]eventlog.Event, error) {
	args := m.Called(ctx, userID, eventType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eventlog.Event), args.Error(1)
}

func (m *MockEventLogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}
