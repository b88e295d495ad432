package eventlog

import (
	"context"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// CleanupJob prunes the event log on a schedule. A non-positive retention
// keeps events forever and turns the job into a no-op.
type CleanupJob struct {
	service       Service
	retentionDays int
}

// NewCleanupJob creates a cleanup job for the scheduler
func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	return &CleanupJob{service: service, retentionDays: retentionDays}
}

func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if j.retentionDays <= 0 {
		log.Debug(LogMsgCleanupJobDisabled)
		return nil
	}

	start := time.Now()
	deleted, err := j.service.CleanupOldEvents(ctx, j.retentionDays)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed,
			LogFieldRetentionDays, j.retentionDays,
			LogFieldError, err)
		return err
	}

	log.Info(LogMsgCleanupJobCompleted,
		LogFieldRetentionDays, j.retentionDays,
		LogFieldDeletedCount, deleted,
		LogFieldDuration, time.Since(start))
	return nil
}
