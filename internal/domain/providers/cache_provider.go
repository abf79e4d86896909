package providers

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key does not exist
var ErrCacheMiss = errors.New("cache miss")

// CacheProvider is a byte-oriented key/value store with expiry
type CacheProvider interface {
	// Get returns ErrCacheMiss (possibly wrapped) for unknown keys
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value for ttl; a non-positive ttl keeps it until deleted
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the keys, ignoring those that do not exist
	Delete(ctx context.Context, keys ...string) error
}
