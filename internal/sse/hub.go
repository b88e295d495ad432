package sse

import (
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// Event is one message on the live stream
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is a connected stream consumer. EventChannel is closed when the
// client is unregistered or the hub stops.
type Client struct {
	ID           string
	EventChannel chan Event

	types   map[string]bool // nil means every type
	user    string          // empty means every user
	dropped atomic.Int64
}

func (c *Client) wants(e Event) bool {
	if c.types != nil && !c.types[e.Type] {
		return false
	}
	return c.user == "" || c.user == e.UserID
}

// Dropped counts events skipped because the client's buffer was full
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

// Hub fans broadcast events out to the registered clients. Broadcast never
// blocks the publisher; a single loop does the fan-out.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	stopped bool

	broadcast chan Event
	shutdown  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	now       func() time.Time
}

// NewHub creates a hub; call Start before broadcasting
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan Event, BroadcastBufferSize),
		shutdown:  make(chan struct{}),
		now:       time.Now,
	}
}

// Start runs the fan-out loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the fan-out loop and closes every client channel. It is safe to
// call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.shutdown) })
	h.wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	for id, client := range h.clients {
		close(client.EventChannel)
		delete(h.clients, id)
	}
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case event := <-h.broadcast:
			h.fanOut(event)
		case <-h.shutdown:
			return
		}
	}
}

// fanOut delivers without blocking; a slow client misses the event. The
// read lock keeps Unregister from closing a channel mid-send.
func (h *Hub) fanOut(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if !client.wants(event) {
			continue
		}
		select {
		case client.EventChannel <- event:
		default:
			client.dropped.Add(1)
		}
	}
}

// Register adds a client. eventTypes and userID narrow what it receives;
// blank entries in eventTypes are ignored. Registering on a stopped hub
// returns a client whose channel is already closed.
func (h *Hub) Register(eventTypes []string, userID string) *Client {
	client := &Client{
		ID:           uuid.NewString(),
		EventChannel: make(chan Event, ClientEventBuffer),
		user:         strings.TrimSpace(userID),
	}
	for _, t := range eventTypes {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if client.types == nil {
			client.types = make(map[string]bool)
		}
		client.types[t] = true
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		close(client.EventChannel)
		return client
	}
	h.clients[client.ID] = client
	return client
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.EventChannel)
		delete(h.clients, clientID)
	}
}

// Broadcast queues an event for every interested client. When the queue is
// full the event is dropped and logged.
func (h *Hub) Broadcast(eventType, userID string, payload interface{}) {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: h.now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- event:
	default:
		logger.Warn(LogMsgEventDropped, "event_type", eventType)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders e in text/event-stream framing
func FormatSSEMessage(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if e.ID != "" {
		b.WriteString("id: " + e.ID + "\n")
	}
	b.WriteString("event: " + e.Type + "\n")
	b.WriteString("data: ")
	b.Write(data)
	b.WriteString("\n\n")
	return []byte(b.String()), nil
}
