package sse

import (
	"context"

	"github.com/osse101/EcoHunt_Go/internal/event"
	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all engine event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.ActivityProcessed, s.handleActivity)
	s.bus.Subscribe(event.ActivityFailed, s.handleActivity)
	s.bus.Subscribe(event.RewardIssued, s.handleIssuance)
	s.bus.Subscribe(event.IssuanceFailed, s.handleIssuance)

	logger.Info(LogMsgSubscribed, "types", event.AllTypes)
}

func (s *Subscriber) handleActivity(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ActivityPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}

	sseType := EventTypeActivityProcessed
	if evt.Type == event.ActivityFailed {
		sseType = EventTypeActivityFailed
	}
	s.hub.Broadcast(sseType, payload.UserID, ActivityUpdatePayload{
		ProcessID:           payload.ProcessID,
		ActivityType:        payload.ActivityType,
		Success:             payload.Success,
		RewardAmount:        payload.RewardAmount,
		TokenTier:           payload.TokenTier,
		VerificationScore:   payload.VerificationScore,
		SustainabilityScore: payload.SustainabilityScore,
		ErrorKind:           string(payload.ErrorKind),
		DurationMs:          payload.DurationMs,
	})

	logger.FromContext(ctx).Debug(LogMsgEventBroadcast,
		"event_type", sseType,
		"process_id", payload.ProcessID)
	return nil
}

func (s *Subscriber) handleIssuance(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.IssuancePayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}

	sseType := EventTypeRewardIssued
	if evt.Type == event.IssuanceFailed {
		sseType = EventTypeIssuanceFailed
	}
	s.hub.Broadcast(sseType, payload.UserID, IssuanceUpdatePayload{
		ProcessID:      payload.ProcessID,
		Amount:         payload.Amount,
		Status:         payload.Status,
		TransactionRef: payload.TransactionRef,
		Error:          payload.Error,
	})

	logger.FromContext(ctx).Debug(LogMsgEventBroadcast,
		"event_type", sseType,
		"process_id", payload.ProcessID)
	return nil
}
