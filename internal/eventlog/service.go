package eventlog

import (
	"context"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/event"
	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// Service persists engine events and serves them back per user
type Service interface {
	// Subscribe registers the event logger on every engine event type
	Subscribe(bus event.Bus) error

	// UserEvents returns a user's most recent events, newest first
	UserEvents(ctx context.Context, userID string, eventType string, limit int) ([]Event, error)

	// CleanupOldEvents removes events older than retentionDays
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent flattens the payload into a JSON object and stores it
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil || payload == nil {
		log.Debug(LogMsgEventPayloadNotMap, LogFieldType, evt.Type)
		return nil
	}

	var userID *string
	if uid, ok := payload[PayloadKeyUserID].(string); ok && uid != "" {
		userID = &uid
	}

	metadata, _ := evt.Metadata.(map[string]interface{})
	entry := Entry{
		EventType: string(evt.Type),
		UserID:    userID,
		Payload:   payload,
		Metadata:  metadata,
	}
	if err := s.repo.LogEvent(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldUserID, userID)
	return nil
}

// UserEvents clamps limit to [1, MaxUserEventLimit]
func (s *service) UserEvents(ctx context.Context, userID string, eventType string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultUserEventLimit
	}
	if limit > MaxUserEventLimit {
		limit = MaxUserEventLimit
	}

	filter := EventFilter{UserID: &userID, Limit: limit}
	if eventType != "" {
		filter.EventType = &eventType
	}
	return s.repo.GetEvents(ctx, filter)
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	return s.repo.CleanupOldEvents(ctx, cutoff)
}
