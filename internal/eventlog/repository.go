package eventlog

import (
	"context"
	"time"
)

// Event represents a logged event
type Event struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	UserID    *string                `json:"user_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Entry is an event about to be stored
type Entry struct {
	EventType string
	UserID    *string
	Payload   map[string]interface{}
	Metadata  map[string]interface{}
}

// EventFilter filters events for queries
type EventFilter struct {
	UserID    *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Repository defines the interface for event logging storage
type Repository interface {
	// LogEvent stores an event
	LogEvent(ctx context.Context, entry Entry) error

	// GetEvents retrieves events matching filter, newest first
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// CleanupOldEvents removes events created before cutoff
	CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error)
}
