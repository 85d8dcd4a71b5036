package client

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/anthanhphan/gosdk/logger"

	"github.com/anthanhphan/go-sharded-kv-client/internal/client/config"
	"github.com/anthanhphan/go-sharded-kv-client/pkg/pool"
	"github.com/anthanhphan/go-sharded-kv-client/pkg/resp"
	"github.com/anthanhphan/go-sharded-kv-client/pkg/shard"
)

// DialFunc produces a connection to a shard backend.
type DialFunc func(ctx context.Context, addr string, timeout time.Duration) (*Conn, error)

// Client routes keys across a fixed set of backend shards and runs commands
// over pooled connections, one pool per shard. The shard set is fixed at
// construction; redirect errors (MOVED/ASK) are returned to the caller, who
// is responsible for following them.
type Client struct {
	router  *shard.Router[*pool.Pool[*Conn]]
	timeout time.Duration
	dial    DialFunc
}

// New builds the hash ring and one connection pool per shard. Connections
// themselves are dialed lazily, on first use of each pool.
func New(cfg *config.Config) (*Client, error) {
	c := &Client{
		timeout: cfg.Timeout(),
		dial:    Dial,
	}

	shards := make([]*shard.Shard[*pool.Pool[*Conn]], 0, len(cfg.Shards))
	for _, sc := range cfg.Shards {
		shards = append(shards, &shard.Shard[*pool.Pool[*Conn]]{
			Name:   sc.Name,
			Weight: sc.Weight,
			New:    c.poolFactory(sc.Addr, cfg.Pool),
		})
	}

	opts := shard.Options{}
	if cfg.KeyTagPattern != "" {
		re, err := regexp.Compile(cfg.KeyTagPattern)
		if err != nil {
			return nil, fmt.Errorf("key tag pattern: %w", err)
		}
		opts.KeyTag = re
	}

	router, err := shard.NewWithOptions(shards, opts)
	if err != nil {
		return nil, err
	}
	c.router = router

	if n := router.Collisions(); n > 0 {
		logger.Warnw("Virtual points dropped to hash collisions, distribution may skew",
			"count", n, "points", router.VirtualPoints())
	}
	return c, nil
}

func (c *Client) poolFactory(addr string, cfg config.PoolConfig) func() (*pool.Pool[*Conn], error) {
	return func() (*pool.Pool[*Conn], error) {
		p := pool.New(
			pool.Config{
				MaxActive:   cfg.MaxActive,
				MaxIdle:     cfg.MaxIdle,
				IdleTimeout: cfg.IdleTimeout(),
			},
			func(ctx context.Context) (*Conn, error) {
				return c.dial(ctx, addr, c.timeout)
			},
			func(conn *Conn) {
				_ = conn.Close()
			},
		)
		return p, nil
	}
}

// Do resolves key to its shard, runs cmd on a pooled connection, and returns
// the decoded reply. Broken connections are invalidated instead of released;
// healthy ones go back to their pool even when the server reported an error.
func (c *Client) Do(ctx context.Context, key string, cmd resp.Command, args ...[]byte) (*resp.Reply, error) {
	p := c.router.Route(key)
	conn, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	reply, err := conn.Do(ctx, cmd, args...)
	if conn.Broken() {
		logger.Debugw("Discarding broken connection", "addr", conn.Addr())
		p.Invalidate(conn)
	} else {
		p.Release(conn)
	}
	return reply, err
}

// Get fetches the value stored at key.
func (c *Client) Get(ctx context.Context, key string) (*resp.Reply, error) {
	return c.Do(ctx, key, resp.CmdGet, []byte(key))
}

// Set stores value at key.
func (c *Client) Set(ctx context.Context, key string, value []byte) (*resp.Reply, error) {
	return c.Do(ctx, key, resp.CmdSet, []byte(key), value)
}

// Del removes key.
func (c *Client) Del(ctx context.Context, key string) (*resp.Reply, error) {
	return c.Do(ctx, key, resp.CmdDel, []byte(key))
}

// Exists checks whether key is present.
func (c *Client) Exists(ctx context.Context, key string) (*resp.Reply, error) {
	return c.Do(ctx, key, resp.CmdExists, []byte(key))
}

// Ping checks every shard's backend and returns the first failure.
func (c *Client) Ping(ctx context.Context) error {
	for i, p := range c.router.Resources() {
		conn, err := p.Acquire(ctx)
		if err != nil {
			return fmt.Errorf("shard %d: %w", i, err)
		}

		_, err = conn.Do(ctx, resp.CmdPing)
		if conn.Broken() {
			p.Invalidate(conn)
		} else {
			p.Release(conn)
		}
		if err != nil {
			return fmt.Errorf("shard %d: %w", i, err)
		}
	}
	return nil
}

// Router exposes the read-only routing table for inspection.
func (c *Client) Router() *shard.Router[*pool.Pool[*Conn]] {
	return c.router
}

// Close shuts down every shard's pool.
func (c *Client) Close() {
	for _, p := range c.router.Resources() {
		p.Close()
	}
}

// SetDialFunc overrides how connections are established, for testing.
func (c *Client) SetDialFunc(dial DialFunc) {
	c.dial = dial
}
