// Package codec serializes entity snapshots for cache storage.
package codec

// Codec encodes and decodes values of type V to bytes for the cache.
//
// Contract:
// - Round-trip: Decode(Encode(v)) must yield a value equivalent to v.
// - Concurrency: implementations must be safe for concurrent use.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
