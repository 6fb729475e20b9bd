package cache

import (
	"context"
	"errors"
)

// Invalidator removes the cache entries a successful write supersedes.
// Invalidation is fire-and-forget relative to the write: the write is
// complete once the persistence layer acknowledges it, and a reader
// racing the removal may see a stale value for that window. Within the
// entry TTLs that staleness is bounded and accepted.
type Invalidator struct {
	store Store
	rec   Recorder
}

// NewInvalidator creates an invalidator over the given store.
func NewInvalidator(store Store, rec Recorder) *Invalidator {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Invalidator{store: store, rec: rec}
}

// OnCreate removes the list entry for the kind. A just-created entity
// has no item entry yet, so only the collection is stale.
func (i *Invalidator) OnCreate(ctx context.Context, kind string) error {
	i.rec.Invalidation(ctx, kind, "list")
	return i.store.Remove(ctx, ListKey(kind))
}

// OnUpdate removes both the list entry and the item entry for the id.
func (i *Invalidator) OnUpdate(ctx context.Context, kind string, id int) error {
	return i.removeBoth(ctx, kind, id)
}

// OnDelete removes both the list entry and the item entry for the id.
func (i *Invalidator) OnDelete(ctx context.Context, kind string, id int) error {
	return i.removeBoth(ctx, kind, id)
}

func (i *Invalidator) removeBoth(ctx context.Context, kind string, id int) error {
	i.rec.Invalidation(ctx, kind, "list")
	listErr := i.store.Remove(ctx, ListKey(kind))

	i.rec.Invalidation(ctx, kind, "item")
	itemErr := i.store.Remove(ctx, ItemKey(kind, id))

	return errors.Join(listErr, itemErr)
}
