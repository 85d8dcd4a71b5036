package shard

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNoShards is returned when a router is built from an empty shard list.
var ErrNoShards = errors.New("shard: at least one shard is required")

// Options tunes router construction.
type Options struct {
	// Hash overrides the ring hash. Nil means Murmur64.
	Hash HashFunc
	// KeyTag extracts the routing substring from string keys: the first
	// capture group of the first match. Keys that do not match route on the
	// whole key. Nil disables tag extraction.
	KeyTag *regexp.Regexp
}

// Router resolves keys to shard resources over an immutable ring. Each
// distinct descriptor is bound to exactly one resource, created by its
// factory at construction time regardless of the shard's virtual-point
// count.
type Router[R any] struct {
	ring      *ring[R]
	shards    []*Shard[R]
	resources map[*Shard[R]]R
	hash      HashFunc
	tag       *regexp.Regexp
}

// New builds a router with the default hash and no key-tag pattern.
func New[R any](shards []*Shard[R]) (*Router[R], error) {
	return NewWithOptions(shards, Options{})
}

// NewWithOptions builds the ring and the resource table synchronously; the
// router is fully constructed before it is returned and is never mutated
// afterwards.
func NewWithOptions[R any](shards []*Shard[R], opts Options) (*Router[R], error) {
	if len(shards) == 0 {
		return nil, ErrNoShards
	}
	if opts.KeyTag != nil && opts.KeyTag.NumSubexp() < 1 {
		return nil, fmt.Errorf("shard: key tag pattern %q has no capture group", opts.KeyTag)
	}
	hash := opts.Hash
	if hash == nil {
		hash = Murmur64
	}

	resources := make(map[*Shard[R]]R, len(shards))
	order := make([]*Shard[R], 0, len(shards))
	for _, s := range shards {
		if _, seen := resources[s]; seen {
			continue
		}
		res, err := s.New()
		if err != nil {
			return nil, fmt.Errorf("shard %q: create resource: %w", s.Name, err)
		}
		resources[s] = res
		order = append(order, s)
	}

	return &Router[R]{
		ring:      buildRing(shards, hash),
		shards:    order,
		resources: resources,
		hash:      hash,
		tag:       opts.KeyTag,
	}, nil
}

// KeyTag returns the substring of key used for routing: the first capture
// group of the first pattern match, or the whole key when no pattern is
// configured or nothing matches.
func (rt *Router[R]) KeyTag(key string) string {
	if rt.tag == nil {
		return key
	}
	if m := rt.tag.FindStringSubmatch(key); m != nil {
		return m[1]
	}
	return key
}

// Lookup returns the shard owning key, after key-tag extraction.
func (rt *Router[R]) Lookup(key string) *Shard[R] {
	return rt.ring.locate(rt.hash([]byte(rt.KeyTag(key))))
}

// LookupBytes routes a binary key. No tag extraction is applied.
func (rt *Router[R]) LookupBytes(key []byte) *Shard[R] {
	return rt.ring.locate(rt.hash(key))
}

// Route returns the resource bound to the shard owning key.
func (rt *Router[R]) Route(key string) R {
	return rt.resources[rt.Lookup(key)]
}

// RouteBytes returns the resource bound to the shard owning a binary key.
func (rt *Router[R]) RouteBytes(key []byte) R {
	return rt.resources[rt.LookupBytes(key)]
}

// Resource returns the resource bound to s.
func (rt *Router[R]) Resource(s *Shard[R]) (R, bool) {
	res, ok := rt.resources[s]
	return res, ok
}

// Shards returns the distinct shard descriptors in construction order, which
// is independent of ring ordering.
func (rt *Router[R]) Shards() []*Shard[R] {
	return append([]*Shard[R](nil), rt.shards...)
}

// Resources returns the distinct backend resources in construction order.
func (rt *Router[R]) Resources() []R {
	out := make([]R, 0, len(rt.shards))
	for _, s := range rt.shards {
		out = append(out, rt.resources[s])
	}
	return out
}

// VirtualPoints returns the ring size after collision drops.
func (rt *Router[R]) VirtualPoints() int { return rt.ring.size() }

// Collisions reports virtual points dropped to token clashes at build time.
// A nonzero count means the distribution is skewed relative to the
// configured weights.
func (rt *Router[R]) Collisions() int { return rt.ring.collisions }
