package event

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBusDown = errors.New("bus down")

// flakyBus fails the calls for which failOn returns true
type flakyBus struct {
	mu     sync.Mutex
	events []Event
	failOn func(call int) bool
	delay  time.Duration
}

func (b *flakyBus) Publish(_ context.Context, evt Event) error {
	b.mu.Lock()
	b.events = append(b.events, evt)
	call := len(b.events)
	b.mu.Unlock()

	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	if b.failOn != nil && b.failOn(call) {
		return errBusDown
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func alwaysFail(int) bool { return true }

func processedEvent(processID string) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     ActivityProcessed,
		Payload:  map[string]interface{}{"process_id": processID},
		Metadata: map[string]interface{}{MetadataProcessID: processID},
	}
}

func newTestPublisher(t *testing.T, bus Bus, maxRetries int, delay time.Duration) (*ResilientPublisher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	rp, err := NewResilientPublisher(bus, maxRetries, delay, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rp.Shutdown(context.Background()) })
	return rp, path
}

func TestResilientPublisher_DeliversFirstTime(t *testing.T) {
	bus := &flakyBus{}
	rp, path := newTestPublisher(t, bus, 3, 10*time.Millisecond)

	rp.PublishWithRetry(context.Background(), processedEvent("eco_1"))

	assert.Equal(t, 1, bus.calls())
	assert.NoFileExists(t, path)
}

func TestResilientPublisher_RetriesUntilDelivered(t *testing.T) {
	bus := &flakyBus{failOn: func(call int) bool { return call == 1 }}
	rp, path := newTestPublisher(t, bus, 3, 10*time.Millisecond)

	rp.PublishWithRetry(context.Background(), processedEvent("eco_2"))

	require.Eventually(t, func() bool { return bus.calls() == 2 }, time.Second, 5*time.Millisecond)
	assert.NoFileExists(t, path)
}

func TestResilientPublisher_DeadLettersAfterExhaustion(t *testing.T) {
	bus := &flakyBus{failOn: alwaysFail}
	rp, path := newTestPublisher(t, bus, 2, 10*time.Millisecond)

	rp.PublishWithRetry(context.Background(), processedEvent("eco_3"))

	// initial attempt plus two retries
	require.Eventually(t, func() bool {
		entries, err := ReadDeadLetters(context.Background(), path)
		return err == nil && len(entries) == 1
	}, 2*time.Second, 10*time.Millisecond)

	entries, err := ReadDeadLetters(context.Background(), path)
	require.NoError(t, err)
	entry := entries[0]
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	assert.Equal(t, "eco_3", entry.ProcessID)
	assert.Equal(t, ActivityProcessed, entry.Event.Type)
	assert.Equal(t, 3, entry.Attempts)
	assert.Equal(t, errBusDown.Error(), entry.LastError)
	assert.Equal(t, 3, bus.calls())
}

func TestResilientPublisher_FullQueueGoesStraightToDeadLetter(t *testing.T) {
	bus := &flakyBus{failOn: alwaysFail, delay: 20 * time.Millisecond}
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 1,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	rp.wg.Add(1)
	go rp.retryWorker()
	t.Cleanup(func() { _ = rp.Shutdown(context.Background()) })

	for i := 0; i < 6; i++ {
		rp.PublishWithRetry(context.Background(), processedEvent("eco_overflow"))
	}

	entries, err := ReadDeadLetters(context.Background(), path)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, 1, e.Attempts)
	}
}

func TestResilientPublisher_ShutdownFlushesQueue(t *testing.T) {
	bus := &flakyBus{failOn: func(call int) bool { return call <= 2 }}
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), processedEvent("eco_a"))
	rp.PublishWithRetry(context.Background(), processedEvent("eco_b"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	// both events get one final attempt which succeeds
	assert.Equal(t, 4, bus.calls())
	assert.NoFileExists(t, path)
	assert.NoError(t, rp.Shutdown(ctx), "second shutdown is a no-op")
}

func TestResilientPublisher_ConcurrentPublishers(t *testing.T) {
	bus := &flakyBus{}
	rp, _ := newTestPublisher(t, bus, 3, 10*time.Millisecond)

	const publishers, perPublisher = 8, 25
	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perPublisher; j++ {
				rp.PublishWithRetry(context.Background(), processedEvent("eco_c"))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, publishers*perPublisher, bus.calls())
}

func TestResilientPublisher_ReplayDeadLetters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")

	seed, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	require.NoError(t, seed.Write(processedEvent("eco_old1"), 6, errBusDown))
	require.NoError(t, seed.Write(processedEvent("eco_old2"), 6, errBusDown))
	require.NoError(t, seed.Close())

	bus := &flakyBus{}
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rp.Shutdown(context.Background()) })

	n, err := rp.ReplayDeadLetters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, bus.calls())
	assert.NoFileExists(t, path)

	archived, err := filepath.Glob(path + ".replayed-*")
	require.NoError(t, err)
	assert.Len(t, archived, 1)

	n, err = rp.ReplayDeadLetters(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "archived files are not replayed twice")
}

func TestReadDeadLetters(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		entries, err := ReadDeadLetters(context.Background(), filepath.Join(t.TempDir(), "none.jsonl"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("skips malformed lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dl.jsonl")
		content := `{"schema_version":"1.1","event":{"type":"reward.issued"},"attempts":2}
not json

{"schema_version":"1.1","attempts":1}
{"schema_version":"1.1","event":{"type":"activity.failed"},"attempts":4}
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		entries, err := ReadDeadLetters(context.Background(), path)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, RewardIssued, entries[0].Event.Type)
		assert.Equal(t, ActivityFailed, entries[1].Event.Type)
	})
}
