package cache

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/skillsnap/portfolio/codec"
)

// ReadThrough serves list and item reads for one entity kind through
// the cache. On a hit the loader is never invoked; on a miss the
// loader result is stored under the kind's key and returned. A load
// that fails - including a not-found lookup - is never cached, so an
// entity created right after a failed lookup is not hidden.
//
// Concurrent misses on the same key may each invoke the loader; the
// last writer wins, which is safe because loads for the same key are
// idempotent. WithSingleFlight collapses them as an optimization.
type ReadThrough[V any] struct {
	kind      string
	store     Store
	ttl       TTL
	itemCodec codec.Codec[V]
	listCodec codec.Codec[[]V]
	rec       Recorder
	sf        *singleflight.Group
}

// Option configures a ReadThrough.
type Option[V any] func(*ReadThrough[V])

// WithCodecs overrides the snapshot encodings (default JSON).
func WithCodecs[V any](item codec.Codec[V], list codec.Codec[[]V]) Option[V] {
	return func(r *ReadThrough[V]) {
		r.itemCodec = item
		r.listCodec = list
	}
}

// WithRecorder attaches a metrics recorder for hit/miss outcomes.
func WithRecorder[V any](rec Recorder) Option[V] {
	return func(r *ReadThrough[V]) {
		if rec != nil {
			r.rec = rec
		}
	}
}

// WithSingleFlight collapses concurrent misses on the same key into a
// single loader invocation. Off by default; duplicate loads are
// harmless, this only trims redundant trips to the persistence layer.
func WithSingleFlight[V any]() Option[V] {
	return func(r *ReadThrough[V]) {
		r.sf = &singleflight.Group{}
	}
}

// NewReadThrough creates a read-through for one entity kind with the
// TTLs the policy holds for it.
func NewReadThrough[V any](kind string, store Store, policy *Policy, opts ...Option[V]) *ReadThrough[V] {
	r := &ReadThrough[V]{
		kind:      kind,
		store:     store,
		ttl:       policy.For(kind),
		itemCodec: codec.JSON[V]{},
		listCodec: codec.JSON[[]V]{},
		rec:       nopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetList returns the cached collection for the kind, loading and
// caching it on a miss.
func (r *ReadThrough[V]) GetList(ctx context.Context, load func(ctx context.Context) ([]V, error)) ([]V, error) {
	key := ListKey(r.kind)

	if raw, ok := r.store.Get(ctx, key); ok {
		if list, err := r.listCodec.Decode(raw); err == nil {
			r.rec.Hit(ctx, r.kind, "list")
			return list, nil
		}
		// Undecodable snapshot, e.g. after a codec change. Drop it and
		// fall through to a fresh load.
		_ = r.store.Remove(ctx, key)
	}
	r.rec.Miss(ctx, r.kind, "list")

	list, err := r.load(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		return nil, err
	}
	typed := list.([]V)

	if raw, err := r.listCodec.Encode(typed); err == nil {
		_ = r.store.Set(ctx, key, raw, r.ttl.List)
	}
	return typed, nil
}

// GetItem returns the cached entity with the given id, loading and
// caching it on a miss. A not-found load error propagates uncached.
func (r *ReadThrough[V]) GetItem(ctx context.Context, id int, load func(ctx context.Context) (V, error)) (V, error) {
	key := ItemKey(r.kind, id)

	if raw, ok := r.store.Get(ctx, key); ok {
		if v, err := r.itemCodec.Decode(raw); err == nil {
			r.rec.Hit(ctx, r.kind, "item")
			return v, nil
		}
		_ = r.store.Remove(ctx, key)
	}
	r.rec.Miss(ctx, r.kind, "item")

	loaded, err := r.load(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v := loaded.(V)

	if raw, err := r.itemCodec.Encode(v); err == nil {
		_ = r.store.Set(ctx, key, raw, r.ttl.Item)
	}
	return v, nil
}

func (r *ReadThrough[V]) load(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	if r.sf == nil {
		return fn(ctx)
	}
	v, err, _ := r.sf.Do(key, func() (any, error) {
		return fn(ctx)
	})
	return v, err
}
