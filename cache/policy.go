package cache

import "time"

// TTL holds the list-level and item-level lifetimes for one entity
// kind. The two are independent: neither bounds the other.
type TTL struct {
	List time.Duration
	Item time.Duration
}

// Policy maps entity kinds to their cache TTLs. TTLs are fixed
// configuration, not computed per entry.
type Policy struct {
	kinds    map[string]TTL
	fallback TTL
}

// NewPolicy creates a policy with the given fallback TTL for kinds
// that have no explicit entry.
func NewPolicy(fallback TTL) *Policy {
	return &Policy{
		kinds:    make(map[string]TTL),
		fallback: fallback,
	}
}

// Set assigns the TTLs for a kind, replacing any previous entry.
func (p *Policy) Set(kind string, ttl TTL) *Policy {
	p.kinds[kind] = ttl
	return p
}

// For returns the TTLs configured for a kind.
func (p *Policy) For(kind string) TTL {
	if ttl, ok := p.kinds[kind]; ok {
		return ttl
	}
	return p.fallback
}

// DefaultPolicy returns the reference TTL table: profile lists 10m and
// items 15m, project and skill lists 5m and items 10m.
func DefaultPolicy() *Policy {
	return NewPolicy(TTL{List: 5 * time.Minute, Item: 10 * time.Minute}).
		Set("profile", TTL{List: 10 * time.Minute, Item: 15 * time.Minute}).
		Set("project", TTL{List: 5 * time.Minute, Item: 10 * time.Minute}).
		Set("skill", TTL{List: 5 * time.Minute, Item: 10 * time.Minute})
}
