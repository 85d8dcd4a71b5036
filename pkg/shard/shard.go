// Package shard routes keys across a fixed set of backend shards using a
// weighted virtual-node consistent-hash ring. The ring is built once, is
// immutable afterwards, and routing is a pure function of the key and the
// ring snapshot, so concurrent lookups need no locking.
package shard

import (
	"regexp"

	"github.com/spaolacci/murmur3"
)

// DefaultWeight is the relative weight assumed for shards that leave
// Weight unset.
const DefaultWeight = 1

// DefaultKeyTagPattern extracts the tag between braces: with it configured,
// "foo{bar}baz" routes on "bar", so related keys can be forced onto the same
// shard. The first capture group of the first match is hashed.
var DefaultKeyTagPattern = regexp.MustCompile(`\{(.+?)\}`)

// HashFunc maps a virtual-point name or a routing key to a point on the
// ring.
type HashFunc func([]byte) uint64

// Murmur64 is the default ring hash.
func Murmur64(b []byte) uint64 {
	return murmur3.Sum64(b)
}

// Shard describes one backend: an optional stable name, a relative weight,
// and a factory producing the single resource bound to the shard. Each
// descriptor is a distinct entity; the same descriptor value used twice
// still maps to one resource.
//
// Named shards get a ring layout that depends only on name, weight, and
// point number, so reordering the shard list never remaps keys. The
// name+weight combination must be unique across shards and must never change
// for a live shard; a clash silently overlaps virtual points and skews
// distribution. Unnamed shards hash their list position instead, so any
// reordering remaps virtually every key.
type Shard[R any] struct {
	Name   string
	Weight int
	New    func() (R, error)
}

func (s *Shard[R]) weight() int {
	if s.Weight < DefaultWeight {
		return DefaultWeight
	}
	return s.Weight
}
