package urltemplate

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a substitution failure.
type ErrorKind int

const (
	// NotAURL means the template does not parse as an
	// absolute URL.
	NotAURL ErrorKind = iota + 1
	// InvalidScheme means the template scheme is neither
	// http nor https.
	InvalidScheme
	// InvalidPattern means the brace syntax is malformed.
	InvalidPattern
	// UnknownPlaceholder means a placeholder name is absent
	// from the parameters. Only reported in strict mode.
	UnknownPlaceholder
)

// Sentinels matched by errors.Is against an *Error of the
// same kind.
var (
	ErrNotAURL            = errors.New("not a URL")
	ErrInvalidScheme      = errors.New("invalid scheme")
	ErrInvalidPattern     = errors.New("invalid pattern")
	ErrUnknownPlaceholder = errors.New("unknown placeholder")

	// ErrInternal is matched by *InternalError.
	ErrInternal = errors.New("internal error")
)

var kindNames = map[ErrorKind]string{
	NotAURL:            "NotAURL",
	InvalidScheme:      "InvalidScheme",
	InvalidPattern:     "InvalidPattern",
	UnknownPlaceholder: "UnknownPlaceholder",
}

// String returns the kind name.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// MarshalText encodes the kind as its name so it reads
// well in JSON output.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k ErrorKind) sentinel() error {
	switch k {
	case NotAURL:
		return ErrNotAURL
	case InvalidScheme:
		return ErrInvalidScheme
	case InvalidPattern:
		return ErrInvalidPattern
	case UnknownPlaceholder:
		return ErrUnknownPlaceholder
	default:
		return nil
	}
}

// Error is returned for every rejected template. Position
// is a byte offset into the original template string.
type Error struct {
	Kind     ErrorKind `json:"kind"`
	Position int       `json:"position"`
}

func newError(kind ErrorKind, pos int) *Error {
	return &Error{Kind: kind, Position: pos}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg string

	switch e.Kind {
	case NotAURL:
		msg = "provided pattern is not a valid URL"
	case InvalidScheme:
		msg = "URL scheme differs from expected `http` or `https`"
	case InvalidPattern:
		msg = "the pattern has invalid syntax"
	case UnknownPlaceholder:
		msg = "placeholder is not present in parameters"
	default:
		msg = "unknown error"
	}

	return fmt.Sprintf(
		"%s at position %d: %s", e.Kind, e.Position, msg,
	)
}

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()

	return s != nil && s == target
}

// InternalError signals that a template which passed
// validation produced a string net/url refuses to parse.
// It indicates a defect, not a malformed template.
type InternalError struct {
	Substituted string
	Err         error
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf(
		"internal error: re-parsing substituted URL %q: %v",
		e.Substituted, e.Err,
	)
}

// Unwrap returns the underlying parse error.
func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is matches ErrInternal.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}
