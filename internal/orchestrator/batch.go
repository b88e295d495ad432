package orchestrator

import (
	"context"
	"sort"
	"sync"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/utils"
	"github.com/osse101/EcoHunt_Go/internal/worker"
)

// ProcessFunc processes a single submission
type ProcessFunc func(ctx context.Context, sub domain.ActivitySubmission) domain.ProcessResult

// ProcessBatch processes subs concurrently and returns results in input order
func (o *Orchestrator) ProcessBatch(ctx context.Context, subs []domain.ActivitySubmission) domain.BatchResult {
	return o.ProcessBatchWith(ctx, subs, o.Process)
}

// ProcessBatchWith fans subs out over the worker pool using process, which
// lets callers wrap Process with their own bookkeeping
func (o *Orchestrator) ProcessBatchWith(ctx context.Context, subs []domain.ActivitySubmission, process ProcessFunc) domain.BatchResult {
	batchID := NewBatchID(o.now())
	log := logger.FromContext(ctx).With("batch_id", batchID)
	log.Info(LogMsgBatchStarted, "size", len(subs))

	results := make([]domain.ProcessResult, len(subs))
	var wg sync.WaitGroup
	for i := range subs {
		i := i
		wg.Add(1)
		job := worker.JobFunc(func(ctx context.Context) error {
			defer wg.Done()
			results[i] = process(ctx, subs[i])
			return nil
		})

		if o.deps.Pool == nil {
			go func() { _ = job.Process(ctx) }()
			continue
		}
		if err := o.deps.Pool.Submit(ctx, job); err != nil {
			log.Warn(LogMsgBatchSubmitFailed, "index", i, "error", err)
			_ = job.Process(ctx)
		}
	}
	wg.Wait()

	summary := BuildSummary(results)
	log.Info(LogMsgBatchCompleted,
		"successful", summary.Successful,
		"failed", summary.Failed,
		"total_rewards", summary.TotalRewards)

	return domain.BatchResult{
		BatchID:     batchID,
		Results:     results,
		Summary:     summary,
		CompletedAt: o.now(),
	}
}

// Monitor processes submissions as they arrive on in, one at a time and in
// arrival order. The returned channel is closed when in is closed or ctx is
// done.
func (o *Orchestrator) Monitor(ctx context.Context, in <-chan domain.ActivitySubmission) <-chan domain.ProcessResult {
	return o.MonitorWith(ctx, in, o.Process)
}

// MonitorWith is Monitor with a custom process function
func (o *Orchestrator) MonitorWith(ctx context.Context, in <-chan domain.ActivitySubmission, process ProcessFunc) <-chan domain.ProcessResult {
	out := make(chan domain.ProcessResult)
	go func() {
		defer close(out)
		defer logger.FromContext(ctx).Debug(LogMsgMonitorStopped)
		for {
			select {
			case <-ctx.Done():
				return
			case sub, ok := <-in:
				if !ok {
					return
				}
				result := process(ctx, sub)
				select {
				case out <- result:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// StreamSummary aggregates the results a stream has produced
func StreamSummary(results []domain.ProcessResult) domain.StreamSummary {
	s := domain.StreamSummary{
		TotalProcessed: len(results),
		Summary:        BuildSummary(results),
	}
	for _, r := range results {
		if s.FirstProcessedAt.IsZero() || r.ProcessedAt.Before(s.FirstProcessedAt) {
			s.FirstProcessedAt = r.ProcessedAt
		}
		if r.ProcessedAt.After(s.LastProcessedAt) {
			s.LastProcessedAt = r.ProcessedAt
		}
	}
	return s
}

// BuildSummary aggregates results. Rewards, sustainability and top
// activities count successful results only; common issues come from failed
// results and from validation flags.
func BuildSummary(results []domain.ProcessResult) domain.BatchSummary {
	summary := domain.BatchSummary{
		Total:         len(results),
		TopActivities: []domain.ActivityCount{},
		CommonIssues:  []domain.IssueCount{},
	}
	if len(results) == 0 {
		return summary
	}

	activities := make(map[domain.ActivityType]int)
	issues := make(map[string]int)
	var sustainabilitySum float64

	for _, r := range results {
		if !r.Success {
			summary.Failed++
			if r.Error != "" {
				issues[r.Error]++
			}
			continue
		}
		summary.Successful++
		summary.TotalRewards += r.RewardAmount()
		if r.Sustainability != nil {
			sustainabilitySum += float64(r.Sustainability.Score)
		}
		activities[r.ActivityType]++
		if r.Validation != nil && !r.Validation.IsValid {
			for _, issue := range r.Validation.Issues {
				issues[issue]++
			}
		}
	}

	summary.SuccessRate = utils.RoundTo(float64(summary.Successful)/float64(summary.Total)*100, 2)
	summary.TotalRewards = utils.RoundTo(summary.TotalRewards, 2)
	if summary.Successful > 0 {
		summary.AverageSustainabilityScore = utils.RoundTo(sustainabilitySum/float64(summary.Successful), 2)
	}
	summary.TopActivities = topActivities(activities, TopActivitiesLimit)
	summary.CommonIssues = commonIssues(issues, CommonIssuesLimit)
	return summary
}

func topActivities(counts map[domain.ActivityType]int, limit int) []domain.ActivityCount {
	out := make([]domain.ActivityCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, domain.ActivityCount{ActivityType: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ActivityType < out[j].ActivityType
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func commonIssues(counts map[string]int, limit int) []domain.IssueCount {
	out := make([]domain.IssueCount, 0, len(counts))
	for issue, n := range counts {
		out = append(out, domain.IssueCount{Issue: issue, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Issue < out[j].Issue
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
