// Package sourceerr defines the closed set of failures produced while
// resolving a content source into text.
package sourceerr

import (
	"errors"
	"fmt"
)

// Kind identifies which stage of resolution failed.
type Kind int

const (
	// KindRequest is a transport failure or non-2xx status during a remote fetch.
	KindRequest Kind = iota + 1
	// KindDecode means response bytes could not be interpreted as text.
	KindDecode
	// KindRead is a local filesystem read failure.
	KindRead
	// KindParse is an invalid selector or no text at the matched location.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindDecode:
		return "decode"
	case KindRead:
		return "read"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error carries the failing kind, the offending path or URL when there is
// one, and a human-readable detail.
type Error struct {
	Kind   Kind
	Target string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRequest:
		return fmt.Sprintf("error making request to '%s': %s", e.Target, e.Detail)
	case KindDecode:
		return "error decoding response: " + e.Detail
	case KindRead:
		return "error importing file from file system: " + e.Detail
	case KindParse:
		return "error parsing HTML: " + e.Detail
	default:
		return e.Detail
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Request reports a failed remote fetch of target.
func Request(target, detail string) *Error {
	return &Error{Kind: KindRequest, Target: target, Detail: detail}
}

// RequestErr is Request with the underlying transport error kept for unwrapping.
func RequestErr(target string, err error) *Error {
	return &Error{Kind: KindRequest, Target: target, Detail: err.Error(), Err: err}
}

// Decode reports bytes that are not valid text.
func Decode(detail string) *Error {
	return &Error{Kind: KindDecode, Detail: detail}
}

// Read wraps a filesystem error for path.
func Read(path string, err error) *Error {
	return &Error{Kind: KindRead, Target: path, Detail: err.Error(), Err: err}
}

// Parse reports a selector or extraction failure.
func Parse(detail string) *Error {
	return &Error{Kind: KindParse, Detail: detail}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Is reports whether err's chain holds an *Error of kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
