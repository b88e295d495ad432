package event

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/logger"
)

type retryEntry struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps a Bus with a retry queue and a dead-letter file.
// Callers never block on delivery; failed events are retried with
// exponential backoff by a single worker.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher starts the retry worker and opens the dead-letter file
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()
	return rp, nil
}

// Publish satisfies Bus; it always returns nil because failures are queued
func (rp *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	rp.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the wrapped bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

// PublishWithRetry publishes once and queues the event for retry on failure
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := rp.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)

	entry := retryEntry{event: event, attempts: 1, lastErr: err}
	select {
	case rp.retryQueue <- entry:
	default:
		logger.FromContext(ctx).Error(LogMsgRetryQueueFull, "event_type", event.Type)
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	for {
		select {
		case entry := <-rp.retryQueue:
			rp.retry(entry)
		case <-rp.shutdown:
			rp.drain()
			return
		}
	}
}

// retry keeps publishing one event until it succeeds, runs out of attempts
// or the publisher shuts down
func (rp *ResilientPublisher) retry(entry retryEntry) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for entry.attempts <= rp.maxRetries {
		timer := time.NewTimer(CalculateRetryDelay(rp.retryDelay, entry.attempts))
		select {
		case <-timer.C:
		case <-rp.shutdown:
			timer.Stop()
			rp.finalAttempt(entry)
			return
		}

		err := rp.bus.Publish(ctx, entry.event)
		entry.attempts++
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempts", entry.attempts)
			return
		}
		entry.lastErr = err
		log.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempts, "error", err)
	}

	log.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempts)
	rp.writeDeadLetter(entry)
}

// finalAttempt publishes once more without waiting and dead-letters on failure
func (rp *ResilientPublisher) finalAttempt(entry retryEntry) {
	if err := rp.bus.Publish(context.Background(), entry.event); err != nil {
		entry.attempts++
		entry.lastErr = err
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-rp.retryQueue:
			rp.finalAttempt(entry)
			drained++
		default:
			if drained > 0 {
				logger.FromContext(context.Background()).Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (rp *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	log := logger.FromContext(context.Background())
	log.Warn(LogMsgEventDeadLettered, "event_type", entry.event.Type, "attempts", entry.attempts)
	if rp.deadLetter == nil {
		return
	}
	if err := rp.deadLetter.Write(entry.event, entry.attempts, entry.lastErr); err != nil {
		log.Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops the retry worker, flushing queued events once, and closes
// the dead-letter file
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.closeOnce.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	if rp.deadLetter == nil {
		return nil
	}
	return rp.deadLetter.Close()
}

// ReplayDeadLetters republishes the events left in the dead-letter file by a
// previous run. The file is renamed first, so events that fail again are
// dead-lettered into a fresh file. It returns how many entries were replayed.
func (rp *ResilientPublisher) ReplayDeadLetters(ctx context.Context) (int, error) {
	if rp.deadLetter == nil {
		return 0, nil
	}
	path := rp.deadLetter.Path()
	entries, err := ReadDeadLetters(ctx, path)
	if err != nil || len(entries) == 0 {
		return 0, err
	}

	// Reopened lazily at path on the next write
	if err := rp.deadLetter.Close(); err != nil {
		return 0, err
	}
	rotated := path + fmt.Sprintf(DeadLetterReplayedSuffix, time.Now().UTC().Format(DeadLetterReplayedLayout))
	if err := os.Rename(path, rotated); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgDeadLetterRotate, err)
	}

	for _, entry := range entries {
		rp.PublishWithRetry(ctx, entry.Event)
	}

	logger.FromContext(ctx).Info(LogMsgDeadLettersReplayed, "count", len(entries), "archived_to", rotated)
	return len(entries), nil
}
