package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Engine Metrics
var (
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameSubmissions,
			Help:      HelpTextSubmissions,
		},
		[]string{LabelActivityType, LabelOutcome, LabelErrorKind},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameSubmissionDuration,
			Help:      HelpTextSubmissionDuration,
			Buckets:   SubmissionLatencyBuckets,
		},
		[]string{LabelActivityType},
	)

	TokensRewarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameTokensRewarded,
			Help:      HelpTextTokensRewarded,
		},
		[]string{LabelActivityType, LabelTokenTier},
	)

	FallbacksGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameFallbacksGranted,
			Help:      HelpTextFallbacksGranted,
		},
	)

	VerificationScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameVerificationScore,
			Help:      HelpTextVerificationScore,
			Buckets:   ScoreBuckets,
		},
	)

	CarbonOffset = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCarbonOffset,
			Help:      HelpTextCarbonOffset,
		},
		[]string{LabelActivityType},
	)

	Issuances = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameIssuances,
			Help:      HelpTextIssuances,
		},
		[]string{LabelStatus},
	)

	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameTokensIssued,
			Help:      HelpTextTokensIssued,
		},
	)
)

// Orchestrator stats gauges, refreshed by StatsExportJob
var (
	StatsProcessed = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameStatsProcessed,
			Help:      HelpTextStatsProcessed,
		},
		[]string{LabelOutcome},
	)

	StatsSuccessRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameStatsSuccessRate,
			Help:      HelpTextStatsSuccessRate,
		},
	)

	StatsAverageLatency = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameStatsAvgLatency,
			Help:      HelpTextStatsAvgLatency,
		},
	)
)
