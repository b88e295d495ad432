package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types for SSE
const (
	// EventTypeActivityProcessed is sent for every successfully scored submission
	EventTypeActivityProcessed = "activity-processed"

	// EventTypeActivityFailed is sent when a submission fell back
	EventTypeActivityFailed = "activity-failed"

	// EventTypeRewardIssued is sent when tokens were transferred
	EventTypeRewardIssued = "reward-issued"

	// EventTypeIssuanceFailed is sent when a transfer failed or was skipped
	EventTypeIssuanceFailed = "reward-issuance-failed"

	// EventTypeConnected is the first event every client receives
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Query parameters of the stream endpoint
const (
	QueryParamTypes = "types"
	QueryParamUser  = "user"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgPayloadInvalid     = "Invalid event payload for SSE"
	LogMsgSubscribed         = "SSE subscriber registered for event types"
	LogMsgWriteError         = "Failed to write SSE event"
)

// ErrMsgStreamingUnsupported is returned when the response cannot be flushed
const ErrMsgStreamingUnsupported = "streaming not supported"
