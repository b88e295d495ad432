package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every engine metric
const Namespace = "ecohunt"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Engine metric names
const (
	MetricNameSubmissions        = "submissions_total"
	MetricNameSubmissionDuration = "submission_duration_seconds"
	MetricNameTokensRewarded     = "tokens_rewarded_total"
	MetricNameFallbacksGranted   = "fallback_rewards_total"
	MetricNameVerificationScore  = "verification_score"
	MetricNameCarbonOffset       = "carbon_offset_kg_total"
	MetricNameIssuances          = "issuances_total"
	MetricNameTokensIssued       = "tokens_issued_total"
	MetricNameStatsProcessed     = "orchestrator_processed"
	MetricNameStatsSuccessRate   = "orchestrator_success_rate_percent"
	MetricNameStatsAvgLatency    = "orchestrator_avg_processing_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Engine metric help text
const (
	HelpTextSubmissions        = "Processed activity submissions by outcome"
	HelpTextSubmissionDuration = "End to end submission processing time in seconds"
	HelpTextTokensRewarded     = "Tokens granted by successful submissions"
	HelpTextFallbacksGranted   = "Fallback rewards granted to failed submissions"
	HelpTextVerificationScore  = "Photo verification scores of processed submissions"
	HelpTextCarbonOffset       = "Estimated kilograms of CO2 offset by successful submissions"
	HelpTextIssuances          = "Reward issuance attempts by status"
	HelpTextTokensIssued       = "Tokens transferred by confirmed or submitted issuances"
	HelpTextStatsProcessed     = "Submissions processed since start, as reported by the orchestrator"
	HelpTextStatsSuccessRate   = "Orchestrator success rate in percent"
	HelpTextStatsAvgLatency    = "Orchestrator rolling average processing time in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod       = "method"
	LabelPath         = "path"
	LabelStatus       = "status"
	LabelType         = "type"
	LabelActivityType = "activity_type"
	LabelOutcome      = "outcome"
	LabelErrorKind    = "error_kind"
	LabelTokenTier    = "token_tier"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Fallback label values
const (
	UnmatchedRoute  = "unmatched"
	UnknownActivity = "unknown"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SubmissionLatencyBuckets covers fast in-memory runs up to the 30s timeout
var SubmissionLatencyBuckets = []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// ScoreBuckets splits 0-100 scores at the eligibility thresholds
var ScoreBuckets = []float64{20, 40, 60, 70, 80, 90, 100}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
	LogMsgStatsExported            = "Orchestrator stats exported"
)
