package verification

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhotoRegistry_ReleaseForgetsPhoto(t *testing.T) {
	r := NewPhotoRegistry(8, time.Hour)
	data := []byte("photo-bytes")

	assert.False(t, r.Reserve(data))
	r.Release(data)

	assert.False(t, r.Seen(data))
	assert.False(t, r.Reserve(data), "released photo must be accepted again")
}

func TestPhotoRegistry_CommitMarksSeen(t *testing.T) {
	r := NewPhotoRegistry(8, time.Hour)
	data := []byte("photo-bytes")

	assert.False(t, r.Reserve(data))
	assert.False(t, r.Seen(data), "reservation alone is not acceptance")
	r.Commit(data)

	assert.True(t, r.Seen(data))
	assert.True(t, r.Reserve(data))
}

func TestPhotoRegistry_InFlightDuplicate(t *testing.T) {
	r := NewPhotoRegistry(8, time.Hour)
	data := []byte("photo-bytes")

	assert.False(t, r.Reserve(data))
	assert.True(t, r.Reserve(data))

	r.Release(data)
	assert.True(t, r.Reserve(data), "one reservation is still held")
}

func TestPhotoRegistry_ConcurrentReservations(t *testing.T) {
	r := NewPhotoRegistry(8, time.Hour)
	data := []byte("same-photo")

	const n = 16
	var fresh atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !r.Reserve(data) {
				fresh.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fresh.Load())
}

func TestPhotoRegistry_EmptyDataIgnored(t *testing.T) {
	r := NewPhotoRegistry(8, time.Hour)

	assert.False(t, r.Reserve(nil))
	r.Commit(nil)
	assert.False(t, r.Seen(nil))
}
