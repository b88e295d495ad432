package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
)

var errSettled = fmt.Errorf("%w: %s", domain.ErrPipelineFailure, ErrMsgSettled)

// effects collects the state changes of one submission. They are applied
// when the submission succeeds and undone when it fails. A run that
// outlives its timeout can no longer stage anything once Process has
// settled the submission.
type effects struct {
	mu       sync.Mutex
	settled  bool
	commits  []func()
	releases []func()
}

// stage runs apply immediately and schedules commit for success and release
// for failure. Any of the funcs may be nil.
func (e *effects) stage(apply, commit, release func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.settled {
		return errSettled
	}
	if apply != nil {
		apply()
	}
	if commit != nil {
		e.commits = append(e.commits, commit)
	}
	if release != nil {
		e.releases = append(e.releases, release)
	}
	return nil
}

// settle runs the commits on success or the releases on failure. Only the
// first call has any effect.
func (e *effects) settle(ctx context.Context, success bool) {
	e.mu.Lock()
	if e.settled {
		e.mu.Unlock()
		return
	}
	e.settled = true
	fns := e.releases
	if success {
		fns = e.commits
	}
	e.commits, e.releases = nil, nil
	e.mu.Unlock()

	for _, fn := range fns {
		runEffect(ctx, fn)
	}
}

func runEffect(ctx context.Context, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgEffectPanic, "panic", fmt.Sprint(r))
		}
	}()
	fn()
}
