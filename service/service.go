// Package service composes the access gate, the read-through cache and
// the persistence collaborator into the portfolio operations. Reads go
// gate -> cache -> store; writes go gate -> validation -> store ->
// invalidation.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/skillsnap/portfolio/auth"
	"github.com/skillsnap/portfolio/cache"
	"github.com/skillsnap/portfolio/model"
	"github.com/skillsnap/portfolio/observe"
	"github.com/skillsnap/portfolio/store"
)

// EntityConfig wires one entity service.
type EntityConfig[T any] struct {
	Kind        model.Kind
	Gate        *auth.Gate
	Store       store.Store[T]
	Cache       *cache.ReadThrough[T]
	Invalidator *cache.Invalidator
	Logger      observe.Logger

	// Validate checks a write payload, including referential rules
	// such as "the parent profile must exist".
	Validate func(ctx context.Context, v *T) error

	// ID extracts the primary key from a row.
	ID func(T) int
}

// Entity serves the classified operations for one entity kind:
// list/get are Public, create/update are Authenticated, delete is
// AdminOnly.
type Entity[T any] struct {
	cfg EntityConfig[T]
}

// NewEntity creates an entity service.
func NewEntity[T any](cfg EntityConfig[T]) *Entity[T] {
	if cfg.Logger == nil {
		cfg.Logger = observe.NopLogger{}
	}
	return &Entity[T]{cfg: cfg}
}

// List returns all entities of the kind, served through the cache.
func (s *Entity[T]) List(ctx context.Context) ([]T, error) {
	if _, err := s.cfg.Gate.Check(ctx, auth.Public); err != nil {
		return nil, err
	}

	started := time.Now()
	list, err := s.cfg.Cache.GetList(ctx, s.cfg.Store.List)
	if err != nil {
		return nil, err
	}

	s.cfg.Logger.Debug(ctx, "list served",
		observe.F("kind", s.cfg.Kind.String()),
		observe.F("count", len(list)),
		observe.F("elapsed_ms", time.Since(started).Milliseconds()),
	)
	return list, nil
}

// Get returns one entity by id, served through the cache. A not-found
// result is never cached.
func (s *Entity[T]) Get(ctx context.Context, id int) (T, error) {
	var zero T
	if _, err := s.cfg.Gate.Check(ctx, auth.Public); err != nil {
		return zero, err
	}

	return s.cfg.Cache.GetItem(ctx, id, func(ctx context.Context) (T, error) {
		return s.cfg.Store.Get(ctx, id)
	})
}

// Create stores a new entity and invalidates the kind's list entry.
// The write is complete once the store acknowledges it; invalidation
// follows and its failure is logged, not surfaced.
func (s *Entity[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T

	id, err := s.cfg.Gate.Check(ctx, auth.Authenticated)
	if err != nil {
		return zero, err
	}

	if err := s.cfg.Validate(ctx, &v); err != nil {
		return zero, err
	}

	created, err := s.cfg.Store.Create(ctx, v)
	if err != nil {
		return zero, err
	}

	if err := s.cfg.Invalidator.OnCreate(ctx, s.cfg.Kind.String()); err != nil {
		s.cfg.Logger.Warn(ctx, "cache invalidation failed",
			observe.F("kind", s.cfg.Kind.String()),
			observe.F("op", "create"),
			observe.F("error", err.Error()),
		)
	}

	s.cfg.Logger.Info(ctx, "entity created",
		observe.F("kind", s.cfg.Kind.String()),
		observe.F("id", s.cfg.ID(created)),
		observe.F("subject", id.Subject),
	)
	return created, nil
}

// Update replaces an entity and invalidates its list and item entries.
// A store conflict triggers an existence re-check: a vanished row is
// reported as not-found, anything else stays a conflict.
func (s *Entity[T]) Update(ctx context.Context, entityID int, v T) (T, error) {
	var zero T

	id, err := s.cfg.Gate.Check(ctx, auth.Authenticated)
	if err != nil {
		return zero, err
	}

	if err := s.cfg.Validate(ctx, &v); err != nil {
		return zero, err
	}

	updated, err := s.cfg.Store.Update(ctx, entityID, v)
	if errors.Is(err, store.ErrConflict) {
		exists, exErr := s.cfg.Store.Exists(ctx, entityID)
		if exErr == nil && !exists {
			return zero, store.ErrNotFound
		}
		return zero, err
	}
	if err != nil {
		return zero, err
	}

	if err := s.cfg.Invalidator.OnUpdate(ctx, s.cfg.Kind.String(), entityID); err != nil {
		s.cfg.Logger.Warn(ctx, "cache invalidation failed",
			observe.F("kind", s.cfg.Kind.String()),
			observe.F("op", "update"),
			observe.F("error", err.Error()),
		)
	}

	s.cfg.Logger.Info(ctx, "entity updated",
		observe.F("kind", s.cfg.Kind.String()),
		observe.F("id", entityID),
		observe.F("subject", id.Subject),
	)
	return updated, nil
}

// Delete removes an entity and invalidates its list and item entries.
func (s *Entity[T]) Delete(ctx context.Context, entityID int) error {
	id, err := s.cfg.Gate.Check(ctx, auth.AdminOnly)
	if err != nil {
		return err
	}

	if err := s.cfg.Store.Delete(ctx, entityID); err != nil {
		return err
	}

	if err := s.cfg.Invalidator.OnDelete(ctx, s.cfg.Kind.String(), entityID); err != nil {
		s.cfg.Logger.Warn(ctx, "cache invalidation failed",
			observe.F("kind", s.cfg.Kind.String()),
			observe.F("op", "delete"),
			observe.F("error", err.Error()),
		)
	}

	s.cfg.Logger.Info(ctx, "entity deleted",
		observe.F("kind", s.cfg.Kind.String()),
		observe.F("id", entityID),
		observe.F("subject", id.Subject),
	)
	return nil
}
