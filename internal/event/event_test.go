package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event

	bus.Subscribe(ActivityProcessed, func(ctx context.Context, evt Event) error {
		got = append(got, evt)
		return nil
	})
	bus.Subscribe(ActivityProcessed, func(ctx context.Context, evt Event) error {
		got = append(got, evt)
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: ActivityProcessed, Payload: "payload"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "payload", got[0].Payload)

	// No subscribers is not an error
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: RewardIssued}))
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(ActivityFailed, func(ctx context.Context, evt Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: ActivityFailed})
	assert.ErrorContains(t, err, "encountered 1 errors")
}

func TestNewActivityEvent(t *testing.T) {
	processedAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	result := domain.ProcessResult{
		ProcessID:      "eco_1_deadbeef",
		Success:        true,
		UserWallet:     "0xabc",
		ActivityType:   domain.ActivityTreePlanting,
		Verification:   &domain.VerificationResult{VerificationScore: 91},
		Sustainability: &domain.SustainabilityScore{Score: 95},
		Reward:         &domain.RewardResult{RewardAmount: 42.5, TokenTier: domain.TokenTierPremium},
		ProcessingTime: 1500 * time.Millisecond,
		ProcessedAt:    processedAt,
	}

	evt := NewActivityEvent("user-1", result)
	assert.Equal(t, ActivityProcessed, evt.Type)
	assert.Equal(t, "eco_1_deadbeef", evt.GetMetadataValue("process_id"))

	payload, err := DecodePayload[ActivityPayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, 42.5, payload.RewardAmount)
	assert.Equal(t, "premium", payload.TokenTier)
	assert.Equal(t, 91, payload.VerificationScore)
	assert.Equal(t, int64(1500), payload.DurationMs)
	assert.Equal(t, processedAt.Unix(), payload.Timestamp)

	result.Success = false
	result.ErrorKind = domain.ErrorKindValidation
	failed := NewActivityEvent("user-1", result)
	assert.Equal(t, ActivityFailed, failed.Type)
	assert.Equal(t, 0.0, failed.Payload.(ActivityPayloadV1).RewardAmount)
}

func TestNewIssuanceEvent(t *testing.T) {
	ok := NewIssuanceEvent("u", "p", "0xabc", 10, domain.IssuanceReceipt{Status: domain.IssuanceConfirmed, TransactionRef: "0x01"})
	assert.Equal(t, RewardIssued, ok.Type)

	failed := NewIssuanceEvent("u", "p", "0xabc", 10, domain.IssuanceReceipt{Status: domain.IssuanceFailed, Error: "boom"})
	assert.Equal(t, IssuanceFailed, failed.Type)
}

func TestDecodePayload_FromMap(t *testing.T) {
	input := map[string]interface{}{"process_id": "eco_2_00ff00ff", "amount": 3.5, "status": "confirmed"}

	payload, err := DecodePayload[IssuancePayloadV1](input)
	require.NoError(t, err)
	assert.Equal(t, "eco_2_00ff00ff", payload.ProcessID)
	assert.Equal(t, 3.5, payload.Amount)

	asMap, err := DecodePayload[map[string]interface{}](IssuancePayloadV1{ProcessID: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", asMap["process_id"])
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 8*time.Second, CalculateRetryDelay(base, 3))
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 0))
}
