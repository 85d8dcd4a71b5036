package resp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// DefaultMaxNesting bounds multi-bulk recursion. Exceeding it is reported as
// a ConnError because decode stops mid-frame, leaving the stream position
// unrecoverable.
const DefaultMaxNesting = 64

// Arrays announce their element count before the elements arrive, so the
// count alone is not trusted for allocation.
const maxPreallocElems = 1024

// Reader decodes reply frames from a byte stream. A Reader is owned by one
// caller at a time; interleaved reads on a shared connection are not
// supported.
type Reader struct {
	r          *bufio.Reader
	maxNesting int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r), maxNesting: DefaultMaxNesting}
}

// SetMaxNesting overrides the array nesting cap.
func (r *Reader) SetMaxNesting(n int) {
	if n > 0 {
		r.maxNesting = n
	}
}

// ReadReply decodes the next reply. Top-level server error lines ("-") are
// returned as typed errors (DataError, MovedError, AskError,
// ClusterDownError); the connection remains usable after them. Any ConnError
// means the stream position is lost and the connection must be discarded.
//
// Server error lines met while decoding array elements are not returned:
// they are captured into the array as TypeError elements and decoding
// continues. ConnError aborts at any depth.
func (r *Reader) ReadReply() (*Reply, error) {
	return r.readReply(0)
}

func (r *Reader) readReply(depth int) (*Reply, error) {
	if depth > r.maxNesting {
		return nil, &ConnError{Message: fmt.Sprintf("reply nested deeper than %d", r.maxNesting)}
	}

	sigil, err := r.r.ReadByte()
	if err != nil {
		return nil, &ConnError{Message: "read failed", Cause: err}
	}

	switch sigil {
	case '+':
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		return &Reply{Type: TypeStatus, Str: line}, nil
	case '-':
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		return nil, classifyErrorLine(string(line))
	case ':':
		n, err := r.readInt()
		if err != nil {
			return nil, err
		}
		return &Reply{Type: TypeInteger, Int: n}, nil
	case '$':
		return r.readBulk()
	case '*':
		return r.readArray(depth)
	default:
		return nil, &ConnError{Message: fmt.Sprintf("unknown reply: %c", sigil)}
	}
}

func (r *Reader) readBulk() (*Reply, error) {
	n, err := r.readInt()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return &Reply{Type: TypeBulk, Null: true}, nil
	}
	if n < 0 {
		return nil, &ConnError{Message: fmt.Sprintf("invalid bulk length %d", n)}
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, &ConnError{Message: "read failed", Cause: err}
	}
	// Consume the trailing delimiter.
	var tail [2]byte
	if _, err := io.ReadFull(r.r, tail[:]); err != nil {
		return nil, &ConnError{Message: "read failed", Cause: err}
	}
	return &Reply{Type: TypeBulk, Str: buf}, nil
}

func (r *Reader) readArray(depth int) (*Reply, error) {
	n, err := r.readInt()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return &Reply{Type: TypeArray, Null: true}, nil
	}
	if n < 0 {
		return nil, &ConnError{Message: fmt.Sprintf("invalid multi-bulk length %d", n)}
	}

	elems := make([]*Reply, 0, min(n, maxPreallocElems))
	for i := int64(0); i < n; i++ {
		elem, err := r.readReply(depth + 1)
		if err != nil {
			if IsServerError(err) {
				// Inherited behavior: a server error decoded as an array
				// element becomes an element instead of aborting the array.
				elems = append(elems, &Reply{Type: TypeError, Err: err})
				continue
			}
			return nil, err
		}
		elems = append(elems, elem)
	}
	return &Reply{Type: TypeArray, Elems: elems}, nil
}

// readLine returns the next line, CRLF excluded.
func (r *Reader) readLine() ([]byte, error) {
	line, err := r.r.ReadBytes('\n')
	if err != nil {
		return nil, &ConnError{Message: "read failed", Cause: err}
	}
	if len(line) < 2 || line[len(line)-2] != '\r' {
		return nil, &ConnError{Message: "malformed line terminator"}
	}
	return line[:len(line)-2], nil
}

func (r *Reader) readInt() (int64, error) {
	line, err := r.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		// The framing is unrecoverable once a length or integer line cannot
		// be parsed.
		return 0, &ConnError{Message: fmt.Sprintf("unparseable integer line %q", line), Cause: err}
	}
	return n, nil
}
