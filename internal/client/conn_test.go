package client

import (
	"bufio"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthanhphan/go-sharded-kv-client/pkg/resp"
)

// pipeServer answers exactly one request on the server side of a pipe with
// the given canned reply, returning the raw request bytes it saw.
func pipeServer(t *testing.T, server net.Conn, reply string) <-chan []byte {
	t.Helper()
	requests := make(chan []byte, 1)

	go func() {
		defer close(requests)
		br := bufio.NewReader(server)

		header, err := br.ReadString('\n')
		if err != nil {
			return
		}
		raw := []byte(header)
		count := int(header[1] - '0')
		for i := 0; i < count; i++ {
			lenLine, err := br.ReadString('\n')
			if err != nil {
				return
			}
			raw = append(raw, lenLine...)
			n := 0
			for _, ch := range lenLine[1 : len(lenLine)-2] {
				n = n*10 + int(ch-'0')
			}
			payload := make([]byte, n+2)
			if _, err := io.ReadFull(br, payload); err != nil {
				return
			}
			raw = append(raw, payload...)
		}
		requests <- raw
		_, _ = server.Write([]byte(reply))
	}()

	return requests
}

func TestConn_Do(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()
	requests := pipeServer(t, serverSide, "$5\r\nworld\r\n")

	c := newConn(clientSide, "test:6379", 0)
	reply, err := c.Do(context.Background(), resp.CmdGet, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte("world"), reply.Bytes())
	assert.False(t, c.Broken())
	assert.Equal(t, "test:6379", c.Addr())

	assert.Equal(t, "*2\r\n$3\r\nGET\r\n$5\r\nhello\r\n", string(<-requests))
}

func TestConn_ServerErrorKeepsConnUsable(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()
	pipeServer(t, serverSide, "-ERR wrong type\r\n")

	c := newConn(clientSide, "test:6379", 0)
	_, err := c.Do(context.Background(), resp.CmdGet, []byte("k"))

	var dataErr *resp.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.False(t, c.Broken())
}

func TestConn_RedirectErrorKeepsConnUsable(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()
	pipeServer(t, serverSide, "-MOVED 99 10.0.0.1:7001\r\n")

	c := newConn(clientSide, "test:6379", 0)
	_, err := c.Do(context.Background(), resp.CmdGet, []byte("k"))

	var movedErr *resp.MovedError
	require.ErrorAs(t, err, &movedErr)
	assert.Equal(t, 99, movedErr.Slot)
	assert.False(t, c.Broken())
}

func TestConn_StreamFailureMarksBroken(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	pipeServer(t, serverSide, "@garbage\r\n")

	c := newConn(clientSide, "test:6379", 0)
	_, err := c.Do(context.Background(), resp.CmdPing)

	var connErr *resp.ConnError
	require.ErrorAs(t, err, &connErr)
	assert.True(t, c.Broken())
	_ = clientSide.Close()
}

func TestConn_ClosedPeerMarksBroken(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	require.NoError(t, serverSide.Close())

	c := newConn(clientSide, "test:6379", 50*time.Millisecond)
	_, err := c.Do(context.Background(), resp.CmdPing)

	var connErr *resp.ConnError
	require.ErrorAs(t, err, &connErr)
	assert.True(t, c.Broken())
	_ = clientSide.Close()
}
