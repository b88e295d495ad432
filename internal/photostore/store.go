package photostore

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

const (
	// MaxPhotoBytes bounds the size of a photo read from any store
	MaxPhotoBytes = 20 << 20

	// DefaultMemoryCapacity is the number of photos a MemoryStore keeps
	DefaultMemoryCapacity = 128
)

// Error messages
const (
	ErrMsgEmptyRef      = "empty photo reference"
	ErrMsgPhotoTooLarge = "photo exceeds %d bytes"
	ErrMsgLoadConfig    = "failed to load object store config: %w"
)

// Log messages
const (
	LogMsgPhotoFetched = "Photo fetched"
	LogMsgPhotoStored  = "Photo stored"
)

// Store resolves photo references to bytes and stores new photos
type Store interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// MemoryStore is an in-process Store for development. It keeps the most
// recently stored photos and evicts the oldest beyond its capacity.
type MemoryStore struct {
	objects *lru.Cache[string, []byte]
}

// NewMemoryStore creates an empty MemoryStore holding at most capacity photos
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	objects, err := lru.New[string, []byte](capacity)
	if err != nil {
		// lru.New only fails for a non-positive size
		panic(err)
	}
	return &MemoryStore{objects: objects}
}

// Fetch returns a copy of the stored bytes
func (m *MemoryStore) Fetch(_ context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrPhotoNotFound, ErrMsgEmptyRef)
	}
	data, ok := m.objects.Get(ref)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPhotoNotFound, ref)
	}
	return append([]byte(nil), data...), nil
}

// Put stores a copy of data under key and returns key as the reference
func (m *MemoryStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrPhotoIO, ErrMsgEmptyRef)
	}
	if len(data) > MaxPhotoBytes {
		return "", fmt.Errorf("%w: "+ErrMsgPhotoTooLarge, domain.ErrPhotoIO, MaxPhotoBytes)
	}
	m.objects.Add(key, append([]byte(nil), data...))
	return key, nil
}
