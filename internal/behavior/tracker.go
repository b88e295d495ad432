package behavior

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

type runningMetrics struct {
	metrics domain.BehaviorMetrics
	samples int
}

// Tracker holds the long-run behaviour metrics of recently analysed users.
// Each user's metrics are the running mean of every snapshot recorded for
// them since construction or the last Reset.
type Tracker struct {
	mu    sync.Mutex
	users *lru.Cache[string, runningMetrics]
}

// NewTracker creates an empty tracker remembering at most size users
func NewTracker(size int) *Tracker {
	if size <= 0 {
		size = DefaultTrackedUsers
	}
	return &Tracker{users: newUserCache(size)}
}

func newUserCache(size int) *lru.Cache[string, runningMetrics] {
	cache, err := lru.New[string, runningMetrics](size)
	if err != nil {
		// lru.New only fails for a non-positive size
		panic(err)
	}
	return cache
}

// Record folds snapshot into the user's running metrics and returns the result
func (t *Tracker) Record(userID string, snapshot domain.BehaviorMetrics) domain.BehaviorMetrics {
	if userID == "" {
		userID = anonymousUser
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	current, _ := t.users.Get(userID)
	next := current.fold(snapshot)
	t.users.Add(userID, next)
	return next.metrics
}

// Preview returns what Record would produce without storing it
func (t *Tracker) Preview(userID string, snapshot domain.BehaviorMetrics) domain.BehaviorMetrics {
	if userID == "" {
		userID = anonymousUser
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	current, _ := t.users.Peek(userID)
	return current.fold(snapshot).metrics
}

func (r runningMetrics) fold(snapshot domain.BehaviorMetrics) runningMetrics {
	n := float64(r.samples)
	return runningMetrics{
		metrics: domain.BehaviorMetrics{
			Consistency: (r.metrics.Consistency*n + snapshot.Consistency) / (n + 1),
			Quality:     (r.metrics.Quality*n + snapshot.Quality) / (n + 1),
			Diversity:   (r.metrics.Diversity*n + snapshot.Diversity) / (n + 1),
			Community:   (r.metrics.Community*n + snapshot.Community) / (n + 1),
			Progression: (r.metrics.Progression*n + snapshot.Progression) / (n + 1),
		},
		samples: r.samples + 1,
	}
}

// Metrics returns the user's running metrics and whether any were recorded
func (t *Tracker) Metrics(userID string) (domain.BehaviorMetrics, bool) {
	if userID == "" {
		userID = anonymousUser
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	current, ok := t.users.Peek(userID)
	return current.metrics, ok
}

// Len returns the number of tracked users
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.users.Len()
}

// Reset forgets every tracked user
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.users.Purge()
}
