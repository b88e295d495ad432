package eventlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/event"
)

// MockEventBus is a mock implementation of event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func TestService_Subscribe(t *testing.T) {
	mockBus := new(MockEventBus)
	for _, et := range event.AllTypes {
		mockBus.On("Subscribe", et, mock.Anything).Return()
	}

	err := NewService(new(MockRepository)).Subscribe(mockBus)
	assert.NoError(t, err)
	mockBus.AssertExpectations(t)
}

func TestService_HandleEvent_TypedPayload(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	evt := event.NewActivityEvent("user123", domain.ProcessResult{
		ProcessID:    "eco_1_abcdef01",
		Success:      true,
		UserWallet:   "0xabc",
		ActivityType: domain.ActivityRecycling,
		ProcessedAt:  time.Unix(1_700_000_000, 0),
	})

	mockRepo.On("LogEvent", mock.Anything, mock.MatchedBy(func(e Entry) bool {
		return e.EventType == string(event.ActivityProcessed) &&
			e.UserID != nil && *e.UserID == "user123" &&
			e.Payload["activity_type"] == "recycling" &&
			e.Metadata["process_id"] == "eco_1_abcdef01"
	})).Return(nil)

	require.NoError(t, svc.handleEvent(context.Background(), evt))
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_Anonymous(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	evt := event.Event{Type: event.RewardIssued, Payload: map[string]interface{}{"amount": 3.0}}
	mockRepo.On("LogEvent", mock.Anything, mock.MatchedBy(func(e Entry) bool {
		return e.UserID == nil && e.Metadata == nil
	})).Return(nil)

	require.NoError(t, svc.handleEvent(context.Background(), evt))
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_NonObjectPayload(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	err := svc.handleEvent(context.Background(), event.Event{Type: event.ActivityFailed, Payload: "just a string"})
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "LogEvent", mock.Anything, mock.Anything)
}

func TestService_HandleEvent_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	mockRepo.On("LogEvent", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	err := svc.handleEvent(context.Background(), event.Event{Type: event.ActivityFailed, Payload: map[string]interface{}{}})
	assert.EqualError(t, err, "insert failed")
}

func TestService_UserEvents(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		eventType string
		wantLimit int
	}{
		{"default limit", 0, "", DefaultUserEventLimit},
		{"clamped", 10_000, "", MaxUserEventLimit},
		{"typed", 5, string(event.RewardIssued), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			mockRepo.On("GetEvents", mock.Anything, mock.MatchedBy(func(f EventFilter) bool {
				typeOK := (tt.eventType == "" && f.EventType == nil) ||
					(f.EventType != nil && *f.EventType == tt.eventType)
				return *f.UserID == "u1" && f.Limit == tt.wantLimit && typeOK
			})).Return([]Event{{ID: 1}}, nil)

			events, err := NewService(mockRepo).UserEvents(context.Background(), "u1", tt.eventType, tt.limit)
			require.NoError(t, err)
			assert.Len(t, events, 1)
			mockRepo.AssertExpectations(t)
		})
	}
}
