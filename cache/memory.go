package cache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

const (
	numShards          = 64
	evictionPercentage = 10
)

// entry pairs a serialized payload with its expiry instant. The sturdyc
// client only supports a cache-wide TTL, so per-entry expiration is enforced
// here: reads past ExpiresAt report absence.
type entry struct {
	payload   string
	expiresAt time.Time
}

// MemoryStore is a Store backed by a sharded in-process sturdyc cache.
type MemoryStore struct {
	client *sturdyc.Client[entry]

	// now is replaceable in tests to control expiry.
	now func() time.Time
}

// NewMemoryStore creates a MemoryStore holding at most capacity entries.
// The underlying client evicts entries after ResponseTTL; shorter per-entry
// TTLs passed to Set are honored on read.
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{
		client: sturdyc.New[entry](capacity, numShards, ResponseTTL, evictionPercentage),
		now:    time.Now,
	}
}

// Get implements Store. An expired entry is deleted and reported as absent;
// stale payloads are never returned.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	e, ok := s.client.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	if !s.now().Before(e.expiresAt) {
		s.client.Delete(key)
		return "", ErrNotFound
	}
	return e.payload, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, key, payload string, ttl time.Duration) error {
	s.client.Set(key, entry{payload: payload, expiresAt: s.now().Add(ttl)})
	return nil
}
