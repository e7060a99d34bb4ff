// Package cache provides the response cache for the catalog API: a key/value
// store of serialized response bodies with per-entry expiration, plus the
// builders that derive stable cache keys from request filters.
package cache

import (
	"context"
	"errors"
	"time"
)

// ResponseTTL is the retention window applied to every cached response.
const ResponseTTL = 24 * time.Hour

// ErrNotFound is returned when a key does not exist in the cache or has
// expired.
var ErrNotFound = errors.New("cache: key not found")

// Store abstracts the response cache. Both operations may fail when the
// backing store is unavailable; callers log the failure and degrade — a
// failed read is a miss, a failed write is skipped. A store failure never
// fails the request.
type Store interface {
	// Get retrieves the payload stored under key. Returns ErrNotFound if
	// the key is absent or its TTL has elapsed.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a payload under key for the given TTL.
	Set(ctx context.Context, key, payload string, ttl time.Duration) error
}
