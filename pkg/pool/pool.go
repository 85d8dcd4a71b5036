// Package pool provides a generic acquire/release/invalidate lifecycle for
// backend resources, typically one pool per shard.
package pool

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anthanhphan/gosdk/logger"
)

// ErrClosed is returned by Acquire after Close.
var ErrClosed = errors.New("pool: closed")

// Config tunes one pool.
type Config struct {
	// MaxActive caps resources checked out at once. Defaults to 8.
	MaxActive int
	// MaxIdle caps resources kept for reuse. Defaults to MaxActive.
	MaxIdle int
	// IdleTimeout evicts resources idle for longer than this. Zero disables
	// eviction.
	IdleTimeout time.Duration
}

type idleResource[R any] struct {
	res      R
	idleFrom time.Time
}

// Pool hands out exclusively owned resources. A resource belongs to exactly
// one caller between Acquire and Release/Invalidate; Release returns a
// healthy resource for reuse, Invalidate destroys a broken one.
//
// A resource that produced a connection-level failure must be invalidated,
// never released: its stream position is unknown and reusing it would
// corrupt the next caller's exchange.
type Pool[R any] struct {
	mu     sync.Mutex
	idle   []idleResource[R]
	closed bool

	slots   chan struct{}
	newFn   func(context.Context) (R, error)
	closeFn func(R)
	cfg     Config
	done    chan struct{}
	once    sync.Once
}

// New builds a pool around a resource factory and destructor. The factory is
// called lazily, on Acquire, when no idle resource is available.
func New[R any](cfg Config, newFn func(context.Context) (R, error), closeFn func(R)) *Pool[R] {
	if cfg.MaxActive <= 0 {
		cfg.MaxActive = 8
	}
	if cfg.MaxIdle <= 0 || cfg.MaxIdle > cfg.MaxActive {
		cfg.MaxIdle = cfg.MaxActive
	}

	p := &Pool[R]{
		slots:   make(chan struct{}, cfg.MaxActive),
		newFn:   newFn,
		closeFn: closeFn,
		cfg:     cfg,
		done:    make(chan struct{}),
	}
	for i := 0; i < cfg.MaxActive; i++ {
		p.slots <- struct{}{}
	}
	if cfg.IdleTimeout > 0 {
		go p.reapLoop()
	}
	return p
}

// Acquire returns an exclusively owned resource, reusing an idle one when
// available. At capacity it blocks until a slot frees, ctx is done, or the
// pool closes.
func (p *Pool[R]) Acquire(ctx context.Context) (R, error) {
	var zero R
	select {
	case <-p.done:
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-p.slots:
	}

	// The select picks randomly when a slot and done are both ready, so a
	// won slot does not prove the pool is still open.
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return zero, ErrClosed
	}

	if res, ok := p.popIdle(); ok {
		return res, nil
	}

	res, err := p.newFn(ctx)
	if err != nil {
		p.freeSlot()
		return zero, err
	}
	return res, nil
}

// Release returns a healthy resource to the pool for reuse.
func (p *Pool[R]) Release(res R) {
	p.mu.Lock()
	if !p.closed && len(p.idle) < p.cfg.MaxIdle {
		p.idle = append(p.idle, idleResource[R]{res: res, idleFrom: time.Now()})
		p.mu.Unlock()
		p.freeSlot()
		return
	}
	p.mu.Unlock()

	p.closeFn(res)
	p.freeSlot()
}

// Invalidate destroys a broken resource and frees its slot.
func (p *Pool[R]) Invalidate(res R) {
	p.closeFn(res)
	p.freeSlot()
}

// Close destroys all idle resources and fails subsequent Acquires. Resources
// checked out at the time of the call stay valid until released or
// invalidated by their owners.
func (p *Pool[R]) Close() {
	p.once.Do(func() {
		close(p.done)

		p.mu.Lock()
		p.closed = true
		idle := p.idle
		p.idle = nil
		p.mu.Unlock()

		for _, it := range idle {
			p.closeFn(it.res)
		}
	})
}

// Stats is a point-in-time snapshot for operational visibility.
type Stats struct {
	Idle      int `json:"idle"`
	Active    int `json:"active"`
	MaxActive int `json:"max_active"`
}

func (p *Pool[R]) Stats() Stats {
	p.mu.Lock()
	idle := len(p.idle)
	p.mu.Unlock()
	return Stats{
		Idle:      idle,
		Active:    p.cfg.MaxActive - len(p.slots),
		MaxActive: p.cfg.MaxActive,
	}
}

func (p *Pool[R]) popIdle() (R, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	// LIFO keeps recently used resources hot and lets stale ones age out.
	for len(p.idle) > 0 {
		it := p.idle[len(p.idle)-1]
		p.idle = p.idle[:len(p.idle)-1]
		if p.cfg.IdleTimeout > 0 && now.Sub(it.idleFrom) > p.cfg.IdleTimeout {
			p.closeFn(it.res)
			continue
		}
		return it.res, true
	}

	var zero R
	return zero, false
}

func (p *Pool[R]) freeSlot() {
	select {
	case p.slots <- struct{}{}:
	default:
	}
}

func (p *Pool[R]) reapLoop() {
	ticker := time.NewTicker(p.cfg.IdleTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			if n := p.evictStale(); n > 0 {
				logger.Debugw("Evicted idle resources", "count", n)
			}
		}
	}
}

func (p *Pool[R]) evictStale() int {
	cutoff := time.Now().Add(-p.cfg.IdleTimeout)

	p.mu.Lock()
	kept := p.idle[:0]
	var stale []R
	for _, it := range p.idle {
		if it.idleFrom.Before(cutoff) {
			stale = append(stale, it.res)
		} else {
			kept = append(kept, it)
		}
	}
	p.idle = kept
	p.mu.Unlock()

	for _, res := range stale {
		p.closeFn(res)
	}
	return len(stale)
}
