// Package cache provides the read cache for portfolio entities: a
// TTL-bounded key/value store, deterministic key construction per
// entity kind, read-through lookups, and write-triggered invalidation.
package cache
