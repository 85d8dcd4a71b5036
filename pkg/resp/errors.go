package resp

import (
	"errors"
	"strconv"
	"strings"
)

const (
	movedPrefix       = "MOVED"
	askPrefix         = "ASK"
	clusterDownPrefix = "CLUSTERDOWN"
)

// ConnError reports a failure that leaves the connection unusable: an I/O
// error, a stream closed mid-frame, an unparseable integer or length line,
// or an unknown reply sigil. The stream position is unreliable after any of
// these, so the owning connection must be discarded, never returned to a
// pool.
type ConnError struct {
	Message string
	Cause   error
}

func (e *ConnError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ConnError) Unwrap() error { return e.Cause }

// DataError is a server-reported failure line that does not match a known
// redirect prefix. The connection remains usable.
type DataError struct {
	Message string
}

func (e *DataError) Error() string { return e.Message }

// MovedError is the MOVED redirect: the slot now lives on the given node.
// Following the redirect is the caller's responsibility.
type MovedError struct {
	Message string
	Host    string
	Port    int
	Slot    int
}

func (e *MovedError) Error() string { return e.Message }

// AskError is the ASK redirect: retry this one request against the given
// node. Following the redirect is the caller's responsibility.
type AskError struct {
	Message string
	Host    string
	Port    int
	Slot    int
}

func (e *AskError) Error() string { return e.Message }

// ClusterDownError signals whole-cluster unavailability. Callers should
// treat it as a backoff signal; there is no redirect target.
type ClusterDownError struct {
	Message string
}

func (e *ClusterDownError) Error() string { return e.Message }

// IsServerError reports whether err is a server-reported error line (data,
// redirect, or cluster-down) as opposed to a connection-fatal one. Server
// errors leave the stream well-positioned and the connection reusable.
func IsServerError(err error) bool {
	var (
		dataErr    *DataError
		movedErr   *MovedError
		askErr     *AskError
		clusterErr *ClusterDownError
	)
	return errors.As(err, &dataErr) ||
		errors.As(err, &movedErr) ||
		errors.As(err, &askErr) ||
		errors.As(err, &clusterErr)
}

// classifyErrorLine turns the payload of a "-" reply into its typed error.
// Redirect lines that fail to parse fall back to DataError; the frame itself
// was well-formed, so the connection stays usable.
func classifyErrorLine(message string) error {
	switch {
	case strings.HasPrefix(message, movedPrefix):
		if host, port, slot, ok := parseRedirect(message); ok {
			return &MovedError{Message: message, Host: host, Port: port, Slot: slot}
		}
	case strings.HasPrefix(message, askPrefix):
		if host, port, slot, ok := parseRedirect(message); ok {
			return &AskError{Message: message, Host: host, Port: port, Slot: slot}
		}
	case strings.HasPrefix(message, clusterDownPrefix):
		return &ClusterDownError{Message: message}
	}
	return &DataError{Message: message}
}

// parseRedirect splits "<prefix> <slot> <host>:<port>".
func parseRedirect(message string) (host string, port, slot int, ok bool) {
	fields := strings.Split(message, " ")
	if len(fields) < 3 {
		return "", 0, 0, false
	}
	slot, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, 0, false
	}
	sep := strings.LastIndexByte(fields[2], ':')
	if sep < 0 {
		return "", 0, 0, false
	}
	port, err = strconv.Atoi(fields[2][sep+1:])
	if err != nil {
		return "", 0, 0, false
	}
	return fields[2][:sep], port, slot, true
}
