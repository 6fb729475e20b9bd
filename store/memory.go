package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store implementation. Rows are stored by
// value, so callers never share memory with the store.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	rows    map[int]T
	nextID  int
	stampID func(T, int) T
}

// NewMemoryStore creates an in-memory store. stampID writes the
// assigned id into a row on Create and on Update (so stored rows are
// always consistent with their key).
func NewMemoryStore[T any](stampID func(T, int) T) *MemoryStore[T] {
	return &MemoryStore[T]{
		rows:    make(map[int]T),
		nextID:  1,
		stampID: stampID,
	}
}

// Create stores a new row under a fresh id and returns it.
func (s *MemoryStore[T]) Create(_ context.Context, v T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	row := s.stampID(v, id)
	s.rows[id] = row
	return row, nil
}

// Get returns the row with the given id.
func (s *MemoryStore[T]) Get(_ context.Context, id int) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return row, nil
}

// List returns all rows in ascending id order.
func (s *MemoryStore[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.rows[id])
	}
	return out, nil
}

// Update replaces the row with the given id and returns the stored value.
func (s *MemoryStore[T]) Update(_ context.Context, id int, v T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		var zero T
		return zero, ErrNotFound
	}

	row := s.stampID(v, id)
	s.rows[id] = row
	return row, nil
}

// Delete removes the row with the given id.
func (s *MemoryStore[T]) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// Exists reports whether a row with the given id is present.
func (s *MemoryStore[T]) Exists(_ context.Context, id int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rows[id]
	return ok, nil
}

// Ensure MemoryStore implements Store
var _ Store[struct{}] = (*MemoryStore[struct{}])(nil)
