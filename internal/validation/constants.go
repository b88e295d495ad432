package validation

// Custom struct tags
const (
	TagActivityType = "activity_type"
	TagEthAddress   = "eth_address"
)

// Error messages
const (
	ErrMsgReadDataFailed      = "failed to read data file %s: %w"
	ErrMsgLoadSchemaFailed    = "failed to load schema %s: %w"
	ErrMsgParseDataFailed     = "failed to parse JSON data: %w"
	ErrMsgReadSchemaFailed    = "failed to read schema file: %w"
	ErrMsgParseSchemaFailed   = "failed to parse schema JSON: %w"
	ErrMsgAddResourceFailed   = "failed to add schema resource: %w"
	ErrMsgCompileFailed       = "failed to compile schema: %w"
	ErrMsgSchemaNotFound      = "schema file not found: %s"
	ErrMsgSchemaValidation    = "schema validation failed"
	ErrMsgInvalidRequestShape = "Invalid request format"
)
