package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrNilStore   = errors.New("cache: store is nil")
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Store is the interface for the entity snapshot cache.
//
// Contract:
// - Concurrency: implementations must be safe for arbitrary concurrent callers.
// - Expiry: an entry must read as absent once its TTL has elapsed, even
//   if it has not been physically purged yet.
// - Errors: Get never errors; it returns (nil, false) on miss or expiry.
type Store interface {
	// Get retrieves a cached value. Returns (nil, false) on miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value with the given TTL, resetting the expiry clock
	// on overwrite. TTL<=0 means no caching.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Remove deletes a cached value unconditionally. Idempotent - no
	// error when the key is absent.
	Remove(ctx context.Context, key string) error
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}

// Recorder receives cache outcome events for metrics. Implementations
// must be safe for concurrent use and must return quickly.
type Recorder interface {
	Hit(ctx context.Context, kind, level string)
	Miss(ctx context.Context, kind, level string)
	Invalidation(ctx context.Context, kind, level string)
}

// nopRecorder is used when no Recorder is configured.
type nopRecorder struct{}

func (nopRecorder) Hit(context.Context, string, string)          {}
func (nopRecorder) Miss(context.Context, string, string)         {}
func (nopRecorder) Invalidation(context.Context, string, string) {}
