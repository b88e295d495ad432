package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/worker"
)

// Log messages
const (
	LogMsgJobScheduled     = "Job scheduled"
	LogMsgJobNotQueued     = "Scheduled job could not be queued"
	LogMsgSchedulerStopped = "Scheduler stopped"
)

type entry struct {
	name     string
	interval time.Duration
	job      worker.Job
}

// Scheduler enqueues jobs on the worker pool at fixed intervals
type Scheduler struct {
	workerPool *worker.Pool
	entries    []entry
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.Mutex
	started    bool
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		workerPool: pool,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Schedule registers a job to run every interval. Jobs registered after
// Start begin ticking immediately. Non-positive intervals are ignored.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	if interval <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{name: name, interval: interval, job: job}
	s.entries = append(s.entries, e)
	if s.started {
		s.run(e)
	}
}

// Start begins ticking every registered job
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	for _, e := range s.entries {
		s.run(e)
	}
}

func (s *Scheduler) run(e entry) {
	logger.Info(LogMsgJobScheduled, "job", e.name, "interval", e.interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// a full queue delays the next tick instead of piling up runs
				if err := s.workerPool.Submit(s.ctx, e.job); err != nil && s.ctx.Err() == nil {
					logger.Warn(LogMsgJobNotQueued, "job", e.name, "error", err)
				}
			case <-s.ctx.Done():
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	logger.Debug(LogMsgSchedulerStopped)
}
