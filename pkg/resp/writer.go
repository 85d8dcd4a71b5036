package resp

import (
	"bufio"
	"io"
	"strconv"
)

var crlf = []byte("\r\n")

// Writer encodes command frames onto a byte stream. It buffers internally;
// call Flush to push pending frames, which also enables pipelining several
// commands per flush. A Writer is owned by one caller at a time.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteCommand appends one request frame: an array header counting the token
// plus the arguments, then each as a length-prefixed bulk string. Arguments
// are opaque binary data; nothing is escaped or inspected.
//
// Any write failure is a ConnError and the connection must be assumed
// unusable, since a partial frame may already be on the wire.
func (w *Writer) WriteCommand(cmd Command, args ...[]byte) error {
	if err := w.writeHeader('*', int64(len(args)+1)); err != nil {
		return err
	}
	if err := w.writeBulk(cmd.Bytes()); err != nil {
		return err
	}
	for _, arg := range args {
		if err := w.writeBulk(arg); err != nil {
			return err
		}
	}
	return nil
}

// Flush pushes all buffered frames to the underlying stream.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return &ConnError{Message: "write failed", Cause: err}
	}
	return nil
}

func (w *Writer) writeHeader(sigil byte, n int64) error {
	if err := w.w.WriteByte(sigil); err != nil {
		return &ConnError{Message: "write failed", Cause: err}
	}
	var buf [20]byte
	if _, err := w.w.Write(strconv.AppendInt(buf[:0], n, 10)); err != nil {
		return &ConnError{Message: "write failed", Cause: err}
	}
	if _, err := w.w.Write(crlf); err != nil {
		return &ConnError{Message: "write failed", Cause: err}
	}
	return nil
}

func (w *Writer) writeBulk(b []byte) error {
	if err := w.writeHeader('$', int64(len(b))); err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return &ConnError{Message: "write failed", Cause: err}
	}
	if _, err := w.w.Write(crlf); err != nil {
		return &ConnError{Message: "write failed", Cause: err}
	}
	return nil
}
