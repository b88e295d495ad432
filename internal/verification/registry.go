package verification

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// PhotoRegistry remembers the digests of accepted photos. A submission
// reserves its photo while it is processed, then commits the reservation
// when it succeeds or releases it when it does not, so only completed
// submissions make a photo count as seen.
type PhotoRegistry struct {
	mu       sync.Mutex
	accepted *expirable.LRU[string, struct{}]
	pending  map[string]int
}

// NewPhotoRegistry creates a registry remembering up to size accepted photos
// for ttl
func NewPhotoRegistry(size int, ttl time.Duration) *PhotoRegistry {
	if size <= 0 {
		size = DefaultDuplicateCacheSize
	}
	return &PhotoRegistry{
		accepted: expirable.NewLRU[string, struct{}](size, nil, ttl),
		pending:  make(map[string]int),
	}
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Seen reports whether data belongs to an accepted photo
func (r *PhotoRegistry) Seen(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return r.accepted.Contains(digest(data))
}

// Reserve claims data for one in-flight submission and reports whether the
// photo was accepted before or is already claimed by another submission.
// Every Reserve must be followed by exactly one Commit or Release.
func (r *PhotoRegistry) Reserve(data []byte) (duplicate bool) {
	if len(data) == 0 {
		return false
	}
	key := digest(data)

	r.mu.Lock()
	defer r.mu.Unlock()
	duplicate = r.pending[key] > 0 || r.accepted.Contains(key)
	r.pending[key]++
	return duplicate
}

// Commit turns a reservation into an accepted photo
func (r *PhotoRegistry) Commit(data []byte) {
	if len(data) == 0 {
		return
	}
	key := digest(data)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.unreserve(key)
	r.accepted.Add(key, struct{}{})
}

// Release drops a reservation without accepting the photo
func (r *PhotoRegistry) Release(data []byte) {
	if len(data) == 0 {
		return
	}
	key := digest(data)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.unreserve(key)
}

func (r *PhotoRegistry) unreserve(key string) {
	if r.pending[key] <= 1 {
		delete(r.pending, key)
		return
	}
	r.pending[key]--
}
