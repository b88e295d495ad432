package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// ErrPoolStopped is returned when a job is submitted after Stop
var ErrPoolStopped = errors.New("worker pool stopped")

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a plain function to a Job
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

type queuedJob struct {
	ctx context.Context
	job Job
}

// Pool represents a worker pool
type Pool struct {
	workers  int
	jobQueue chan queuedJob
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once

	// mu guards stopped; Submit holds the read lock while it sends
	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &Pool{
		workers:  workers,
		jobQueue: make(chan queuedJob, queueSize),
		quit:     make(chan struct{}),
	}
}

// Workers returns the number of worker goroutines
func (p *Pool) Workers() int {
	return p.workers
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case q := <-p.jobQueue:
			p.run(q)
		case <-p.quit:
			return
		}
	}
}

// run executes a single job; a panicking job is logged and does not kill the worker
func (p *Pool) run(q queuedJob) {
	ctx := q.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgWorkerJobPanic, "panic", fmt.Sprint(r))
		}
	}()
	if err := q.job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// Enqueue adds a background job to the queue, blocking while it is full.
// Jobs enqueued after Stop are dropped.
func (p *Pool) Enqueue(job Job) {
	_ = p.Submit(context.Background(), job)
}

// Submit queues job to run with ctx. It blocks until a slot is free, ctx is
// done or the pool is stopped.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}
	select {
	case <-p.quit:
		return ErrPoolStopped
	default:
	}
	select {
	case p.jobQueue <- queuedJob{ctx: ctx, job: job}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrPoolStopped
	}
}

// Stop stops the workers and waits for them to finish. Jobs still queued
// are then run on the calling goroutine with a cancelled context, so every
// accepted job is processed exactly once.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })

	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	p.wg.Wait()
	p.drain()
}

func (p *Pool) drain() {
	drained := 0
	for {
		select {
		case q := <-p.jobQueue:
			parent := q.ctx
			if parent == nil {
				parent = context.Background()
			}
			ctx, cancel := context.WithCancel(parent)
			cancel()
			q.ctx = ctx
			p.run(q)
			drained++
		default:
			if drained > 0 {
				logger.FromContext(context.Background()).Info(LogMsgDrainedJobs, "count", drained)
			}
			return
		}
	}
}
