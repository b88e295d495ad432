package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from map metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Engine event types
const (
	ActivityProcessed Type = "activity.processed"
	ActivityFailed    Type = "activity.failed"
	RewardIssued      Type = "reward.issued"
	IssuanceFailed    Type = "reward.issuance_failed"
)

// AllTypes lists every event type the engine publishes
var AllTypes = []Type{ActivityProcessed, ActivityFailed, RewardIssued, IssuanceFailed}

// ActivityPayloadV1 summarises one processed submission
type ActivityPayloadV1 struct {
	ProcessID           string           `json:"process_id"`
	UserID              string           `json:"user_id,omitempty"`
	Wallet              string           `json:"wallet"`
	ActivityType        string           `json:"activity_type"`
	Success             bool             `json:"success"`
	RewardAmount        float64          `json:"reward_amount"`
	TokenTier           string           `json:"token_tier,omitempty"`
	VerificationScore   int              `json:"verification_score"`
	SustainabilityScore int              `json:"sustainability_score"`
	ErrorKind           domain.ErrorKind `json:"error_kind,omitempty"`
	Error               string           `json:"error,omitempty"`
	DurationMs          int64            `json:"duration_ms"`
	Timestamp           int64            `json:"timestamp"`
}

// IssuancePayloadV1 describes an issuance attempt
type IssuancePayloadV1 struct {
	ProcessID      string  `json:"process_id"`
	UserID         string  `json:"user_id,omitempty"`
	Wallet         string  `json:"wallet"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	TransactionRef string  `json:"transaction_ref,omitempty"`
	Error          string  `json:"error,omitempty"`
	Timestamp      int64   `json:"timestamp"`
}

// NewActivityEvent builds an ActivityProcessed or ActivityFailed event from a result
func NewActivityEvent(userID string, result domain.ProcessResult) Event {
	payload := ActivityPayloadV1{
		ProcessID:    result.ProcessID,
		UserID:       userID,
		Wallet:       result.UserWallet,
		ActivityType: string(result.ActivityType),
		Success:      result.Success,
		RewardAmount: result.RewardAmount(),
		ErrorKind:    result.ErrorKind,
		Error:        result.Error,
		DurationMs:   result.ProcessingTime.Milliseconds(),
		Timestamp:    result.ProcessedAt.Unix(),
	}
	if result.Verification != nil {
		payload.VerificationScore = result.Verification.VerificationScore
	}
	if result.Sustainability != nil {
		payload.SustainabilityScore = result.Sustainability.Score
	}
	if result.Reward != nil {
		payload.TokenTier = string(result.Reward.TokenTier)
	}

	eventType := ActivityProcessed
	if !result.Success {
		eventType = ActivityFailed
	}
	return Event{
		Version:  EventSchemaVersion,
		Type:     eventType,
		Payload:  payload,
		Metadata: map[string]interface{}{MetadataProcessID: result.ProcessID},
	}
}

// NewIssuanceEvent builds a RewardIssued or IssuanceFailed event
func NewIssuanceEvent(userID, processID, wallet string, amount float64, receipt domain.IssuanceReceipt) Event {
	eventType := RewardIssued
	if receipt.Status == domain.IssuanceFailed || receipt.Status == domain.IssuanceSkipped {
		eventType = IssuanceFailed
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: IssuancePayloadV1{
			ProcessID:      processID,
			UserID:         userID,
			Wallet:         wallet,
			Amount:         amount,
			Status:         string(receipt.Status),
			TransactionRef: receipt.TransactionRef,
			Error:          receipt.Error,
			Timestamp:      time.Now().Unix(),
		},
		Metadata: map[string]interface{}{MetadataProcessID: processID},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the publish side of a Bus
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
