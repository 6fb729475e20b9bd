package cache

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by redis, for deployments where several
// API processes must share one cache. Transport errors on Get degrade
// to a miss so a flaky cache never fails a read path.
type RedisStore struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Client goredis.UniversalClient

	// CloseClient releases the client on Close. Set only when this
	// store exclusively owns the client.
	CloseClient bool
}

// NewRedisStore creates a redis-backed store.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Client == nil {
		return nil, ErrNilStore
	}
	return &RedisStore{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// Get retrieves a value. Misses and transport errors both report absent.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores a value with the given TTL. TTL<=0 means no caching;
// redis handles the expiry, so overwrite resets the clock server-side.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// Remove deletes a value. Idempotent - no error on miss.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// Close releases the underlying client when this store owns it. Safe
// to call multiple times.
func (s *RedisStore) Close() error {
	if !s.closeClient {
		return nil
	}
	if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}

// Ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)
