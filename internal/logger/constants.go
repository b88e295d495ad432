package logger

// Level names accepted in Config.Level
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Format names accepted in Config.Format
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Values used for empty Config fields
const (
	DefaultServiceName = "ecohunt-engine"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"
)

// Attribute keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyProcessID   = "process_id"
)
