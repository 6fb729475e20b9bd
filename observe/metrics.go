package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records cache and auth outcomes. It satisfies the cache
// package's Recorder interface.
type Metrics struct {
	hits          metric.Int64Counter
	misses        metric.Int64Counter
	invalidations metric.Int64Counter
	denied        metric.Int64Counter
}

// NewMetrics creates instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	hits, err := meter.Int64Counter(
		"cache.hits",
		metric.WithDescription("Cache lookups answered without the persistence layer"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"cache.misses",
		metric.WithDescription("Cache lookups that invoked the loader"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	invalidations, err := meter.Int64Counter(
		"cache.invalidations",
		metric.WithDescription("Cache entries removed after writes"),
		metric.WithUnit("{removal}"),
	)
	if err != nil {
		return nil, err
	}

	denied, err := meter.Int64Counter(
		"auth.denied",
		metric.WithDescription("Gate denials by reason class"),
		metric.WithUnit("{denial}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		hits:          hits,
		misses:        misses,
		invalidations: invalidations,
		denied:        denied,
	}, nil
}

// Hit records a cache hit for a kind at the list or item level.
func (m *Metrics) Hit(ctx context.Context, kind, level string) {
	m.hits.Add(ctx, 1, cacheAttrs(kind, level))
}

// Miss records a cache miss for a kind at the list or item level.
func (m *Metrics) Miss(ctx context.Context, kind, level string) {
	m.misses.Add(ctx, 1, cacheAttrs(kind, level))
}

// Invalidation records a post-write cache removal.
func (m *Metrics) Invalidation(ctx context.Context, kind, level string) {
	m.invalidations.Add(ctx, 1, cacheAttrs(kind, level))
}

// Denied records a gate denial. The reason stays internal to metrics
// and logs; callers surface a uniform outcome.
func (m *Metrics) Denied(ctx context.Context, reason string) {
	m.denied.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

func cacheAttrs(kind, level string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("level", level),
	)
}
