package resp

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCommand_Frame(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteCommand(CmdSet, []byte("key"), []byte("value")))
	require.NoError(t, w.Flush())

	assert.Equal(t, "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$5\r\nvalue\r\n", buf.String())
}

func TestWriteCommand_NoArgs(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteCommand(CmdPing))
	require.NoError(t, w.Flush())

	assert.Equal(t, "*1\r\n$4\r\nPING\r\n", buf.String())
}

func TestWriteCommand_BinaryArgs(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	arg := []byte("a\r\nb\x00c")
	require.NoError(t, w.WriteCommand(CmdEcho, arg))
	require.NoError(t, w.Flush())

	assert.Equal(t, "*2\r\n$4\r\nECHO\r\n$7\r\na\r\nb\x00c\r\n", buf.String())
}

func TestWriteCommand_EmptyArg(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteCommand(CmdSet, []byte("k"), nil))
	require.NoError(t, w.Flush())

	assert.Equal(t, "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$0\r\n\r\n", buf.String())
}

// parseRequest plays the server side of the request framing, reading back an
// array of bulk strings.
func parseRequest(t *testing.T, r io.Reader) [][]byte {
	t.Helper()
	br := bufio.NewReader(r)

	readLine := func() string {
		line, err := br.ReadString('\n')
		require.NoError(t, err)
		require.True(t, len(line) >= 2 && line[len(line)-2] == '\r')
		return line[:len(line)-2]
	}

	header := readLine()
	require.Equal(t, byte('*'), header[0])
	count, err := strconv.Atoi(header[1:])
	require.NoError(t, err)

	parts := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		bulkHeader := readLine()
		require.Equal(t, byte('$'), bulkHeader[0])
		n, err := strconv.Atoi(bulkHeader[1:])
		require.NoError(t, err)

		payload := make([]byte, n+2)
		_, err = io.ReadFull(br, payload)
		require.NoError(t, err)
		require.Equal(t, "\r\n", string(payload[n:]))
		parts = append(parts, payload[:n])
	}
	return parts
}

func TestWriteCommand_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		args [][]byte
	}{
		{name: "NoArgs", cmd: CmdPing},
		{name: "SingleArg", cmd: CmdGet, args: [][]byte{[]byte("user:1")}},
		{name: "Binary", cmd: CmdSet, args: [][]byte{[]byte("k"), {0, 1, 2, '\r', '\n', 255}}},
		{name: "Numeric", cmd: CmdExpire, args: [][]byte{[]byte("k"), FormatInt(30)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			require.NoError(t, w.WriteCommand(tt.cmd, tt.args...))
			require.NoError(t, w.Flush())

			parts := parseRequest(t, &buf)
			require.Len(t, parts, len(tt.args)+1)
			assert.Equal(t, tt.cmd.Bytes(), parts[0])
			for i, arg := range tt.args {
				if arg == nil {
					arg = []byte{}
				}
				assert.Equal(t, arg, parts[i+1])
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriter_FlushFailureIsConnError(t *testing.T) {
	w := NewWriter(failingWriter{})
	require.NoError(t, w.WriteCommand(CmdPing))

	err := w.Flush()
	var connErr *ConnError
	require.ErrorAs(t, err, &connErr)
	assert.ErrorContains(t, err, "broken pipe")
}
