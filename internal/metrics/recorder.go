package metrics

import (
	"context"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// ResultRecorder turns finished process results into engine metrics
type ResultRecorder struct{}

// NewResultRecorder creates a ResultRecorder
func NewResultRecorder() *ResultRecorder {
	return &ResultRecorder{}
}

// ObserveResult records one finished submission
func (ResultRecorder) ObserveResult(result domain.ProcessResult) {
	activity := string(result.ActivityType)
	if !result.ActivityType.IsKnown() {
		activity = UnknownActivity
	}

	outcome := OutcomeSuccess
	if !result.Success {
		outcome = OutcomeFailed
	}
	Submissions.WithLabelValues(activity, outcome, string(result.ErrorKind)).Inc()
	SubmissionDuration.WithLabelValues(activity).Observe(result.ProcessingTime.Seconds())

	if !result.Success {
		if result.Fallback != nil {
			FallbacksGranted.Inc()
		}
		return
	}

	if result.Reward != nil && result.Reward.RewardAmount > 0 {
		TokensRewarded.WithLabelValues(activity, string(result.Reward.TokenTier)).Add(result.Reward.RewardAmount)
	}
	if result.Verification != nil {
		VerificationScore.Observe(float64(result.Verification.VerificationScore))
	}
	if result.Carbon != nil && result.Carbon.CarbonImpact > 0 {
		CarbonOffset.WithLabelValues(activity).Add(result.Carbon.CarbonImpact)
	}
}

// StatsSource exposes orchestrator stats
type StatsSource interface {
	Stats() domain.OrchestratorStats
}

// StatsExportJob copies orchestrator stats into gauges. It is run
// periodically by the scheduler.
type StatsExportJob struct {
	source StatsSource
}

// NewStatsExportJob creates a job exporting source
func NewStatsExportJob(source StatsSource) *StatsExportJob {
	return &StatsExportJob{source: source}
}

// Process implements worker.Job
func (j *StatsExportJob) Process(ctx context.Context) error {
	stats := j.source.Stats()
	StatsProcessed.WithLabelValues(OutcomeSuccess).Set(float64(stats.Successful))
	StatsProcessed.WithLabelValues(OutcomeFailed).Set(float64(stats.Failed))
	StatsSuccessRate.Set(stats.SuccessRate)
	StatsAverageLatency.Set(stats.AverageProcessingTime.Seconds())

	logger.FromContext(ctx).Debug(LogMsgStatsExported,
		"total", stats.TotalProcessed,
		"success_rate", stats.SuccessRate)
	return nil
}
