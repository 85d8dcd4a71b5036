package resp

import (
	"fmt"
	"strconv"
	"strings"
)

// ReplyType tags the variant carried by a Reply.
type ReplyType uint8

const (
	TypeStatus ReplyType = iota
	TypeInteger
	TypeBulk
	TypeArray
	TypeError
)

func (t ReplyType) String() string {
	switch t {
	case TypeStatus:
		return "status"
	case TypeInteger:
		return "integer"
	case TypeBulk:
		return "bulk"
	case TypeArray:
		return "array"
	case TypeError:
		return "error"
	default:
		return "unknown"
	}
}

// Reply is one decoded server reply. Exactly one payload field is
// meaningful, selected by Type. Null marks the absent bulk string ($-1) and
// the absent array (*-1).
//
// A TypeError element only ever appears inside an Array: server error lines
// decoded as array elements are captured in place instead of aborting the
// array decode, so callers iterating Elems must be prepared to meet them.
// Top-level error lines are returned as errors, not replies.
type Reply struct {
	Type  ReplyType
	Str   []byte
	Int   int64
	Elems []*Reply
	Err   error
	Null  bool
}

// IsNull reports whether the reply is a null bulk string or null array.
func (r *Reply) IsNull() bool { return r.Null }

// Bytes returns the status or bulk payload; nil for null replies.
func (r *Reply) Bytes() []byte { return r.Str }

// Text returns the status or bulk payload as a string.
func (r *Reply) Text() string { return string(r.Str) }

func (r *Reply) String() string {
	switch r.Type {
	case TypeStatus:
		return string(r.Str)
	case TypeInteger:
		return strconv.FormatInt(r.Int, 10)
	case TypeBulk:
		if r.Null {
			return "(nil)"
		}
		return strconv.Quote(string(r.Str))
	case TypeArray:
		if r.Null {
			return "(nil)"
		}
		parts := make([]string, 0, len(r.Elems))
		for _, e := range r.Elems {
			parts = append(parts, e.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeError:
		return fmt.Sprintf("(error) %v", r.Err)
	default:
		return fmt.Sprintf("(unknown reply type %d)", r.Type)
	}
}
