package shard

import (
	"fmt"
	"sort"
)

// pointsPerWeight is the number of virtual points generated per unit of
// shard weight.
const pointsPerWeight = 160

type point[R any] struct {
	token uint64
	shard *Shard[R]
}

// ring is the sorted table of virtual points. It is fully built before being
// published and never mutated afterwards.
type ring[R any] struct {
	points     []point[R]
	collisions int
}

func buildRing[R any](shards []*Shard[R], hash HashFunc) *ring[R] {
	byToken := make(map[uint64]*Shard[R])
	collisions := 0

	for i, s := range shards {
		w := s.weight()
		for n := 0; n < pointsPerWeight*w; n++ {
			var pointName string
			if s.Name != "" {
				pointName = fmt.Sprintf("%s*%d#%d", s.Name, w, n)
			} else {
				pointName = fmt.Sprintf("SHARD-%d-NODE-%d", i, n)
			}
			token := hash([]byte(pointName))
			if _, dup := byToken[token]; dup {
				// A clash drops the earlier point; the later insertion wins,
				// matching the original ordered-map behavior. Counted so
				// callers can surface the skew.
				collisions++
			}
			byToken[token] = s
		}
	}

	points := make([]point[R], 0, len(byToken))
	for token, s := range byToken {
		points = append(points, point[R]{token: token, shard: s})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].token < points[j].token
	})

	return &ring[R]{points: points, collisions: collisions}
}

// locate returns the shard owning the smallest point with token >= the
// query. Past the last point the ring wraps to the smallest token; the ring
// is logically circular.
func (r *ring[R]) locate(token uint64) *Shard[R] {
	if len(r.points) == 0 {
		return nil
	}
	idx := sort.Search(len(r.points), func(i int) bool {
		return r.points[i].token >= token
	})
	if idx == len(r.points) {
		idx = 0
	}
	return r.points[idx].shard
}

func (r *ring[R]) size() int { return len(r.points) }
