// Package store defines the persistence collaborator contract for
// portfolio entities and provides an in-memory reference
// implementation. The real database lives behind this interface.
package store

import (
	"context"
	"errors"
)

// Sentinel errors reported by entity stores.
var (
	// ErrNotFound signals the requested id has no row.
	ErrNotFound = errors.New("store: not found")

	// ErrConflict signals the row changed or vanished between read and
	// write. Callers should re-check existence: vanished means
	// not-found, otherwise the conflict stands.
	ErrConflict = errors.New("store: concurrent modification")
)

// Store is the persistence contract for one entity type.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Create assigns the id and returns the stored row.
// - Get/Update/Delete report ErrNotFound for absent ids.
// - Operations may block on I/O; callers pass a context for that reason.
type Store[T any] interface {
	Create(ctx context.Context, v T) (T, error)
	Get(ctx context.Context, id int) (T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id int, v T) (T, error)
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
}
