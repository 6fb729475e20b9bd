package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation. Expiry is lazy: an
// expired entry reads as absent and is purged on the access that finds
// it. An optional background sweep bounds memory held by entries that
// are never read again.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
	now     func() time.Time
	stop    chan struct{}
	closed  sync.Once
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	sweepInterval time.Duration
	now           func() time.Time
}

// WithSweepInterval enables a background sweep that purges expired
// entries every d. Purely a memory-hygiene measure; visibility of
// expired entries does not depend on it.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.sweepInterval = d }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *memoryConfig) { c.now = now }
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	cfg := memoryConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &MemoryStore{
		entries: make(map[string]*entry),
		now:     cfg.now,
		stop:    make(chan struct{}),
	}
	if cfg.sweepInterval > 0 {
		go s.sweep(cfg.sweepInterval)
	}
	return s
}

// Get retrieves a value. Returns (nil, false) on miss or expiry.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if !s.now().Before(e.expiresAt) {
		// Expired - clean up lazily. Re-check under the write lock in
		// case a concurrent Set replaced the entry meanwhile.
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && cur == e {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores a value with the given TTL. Overwriting resets the expiry
// clock. TTL<=0 means no caching.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	s.entries[key] = &entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	s.mu.Unlock()

	return nil
}

// Remove deletes a value. Idempotent - no error on miss.
func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Close stops the background sweep, if one was started.
func (s *MemoryStore) Close() {
	s.closed.Do(func() { close(s.stop) })
}

// Len reports the number of physically present entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := s.now()
			s.mu.Lock()
			for k, e := range s.entries {
				if !now.Before(e.expiresAt) {
					delete(s.entries, k)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
