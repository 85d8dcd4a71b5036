package client

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/anthanhphan/go-sharded-kv-client/pkg/resp"
)

// Conn is one connection to a backend shard, exclusively owned by a single
// caller between pool acquire and release. It carries the protocol codec for
// its stream.
type Conn struct {
	addr    string
	nc      net.Conn
	r       *resp.Reader
	w       *resp.Writer
	timeout time.Duration
	broken  bool
}

// Dial connects to addr and wraps the stream in the protocol codec.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*Conn, error) {
	d := net.Dialer{Timeout: timeout}
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return newConn(nc, addr, timeout), nil
}

func newConn(nc net.Conn, addr string, timeout time.Duration) *Conn {
	return &Conn{
		addr:    addr,
		nc:      nc,
		r:       resp.NewReader(nc),
		w:       resp.NewWriter(nc),
		timeout: timeout,
	}
}

// Do sends one command and reads its reply. Server-reported errors (data,
// redirect, cluster-down) are returned with the connection still healthy.
// Any connection-level failure marks the connection broken; the owner must
// invalidate it instead of releasing it, since the stream position is lost.
func (c *Conn) Do(ctx context.Context, cmd resp.Command, args ...[]byte) (*resp.Reply, error) {
	if err := c.applyDeadline(ctx); err != nil {
		return nil, err
	}
	if err := c.w.WriteCommand(cmd, args...); err != nil {
		c.broken = true
		return nil, err
	}
	if err := c.w.Flush(); err != nil {
		c.broken = true
		return nil, err
	}

	reply, err := c.r.ReadReply()
	if err != nil {
		if !resp.IsServerError(err) {
			c.broken = true
		}
		return nil, err
	}
	return reply, nil
}

// Broken reports whether the connection suffered a connection-level failure
// and must not be reused.
func (c *Conn) Broken() bool { return c.broken }

// Addr returns the backend address this connection is bound to.
func (c *Conn) Addr() string { return c.addr }

func (c *Conn) Close() error {
	return c.nc.Close()
}

func (c *Conn) applyDeadline(ctx context.Context) error {
	var deadline time.Time
	if c.timeout > 0 {
		deadline = time.Now().Add(c.timeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	if err := c.nc.SetDeadline(deadline); err != nil {
		c.broken = true
		return fmt.Errorf("set deadline on %s: %w", c.addr, err)
	}
	return nil
}
