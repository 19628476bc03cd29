// Package errors classifies client failures so callers can tell a request
// that was never sent apart from one that failed on the wire.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind determines where in the call an error originated.
type Kind int

const (
	// Configuration errors happen before any network traffic.
	// Examples: missing key file, unencodable path parameter, bad JSON body.
	Configuration Kind = iota

	// Transport errors happen during the HTTP exchange.
	// Examples: DNS failure, connection refused, TLS handshake, timeout.
	Transport
)

// String returns a human-readable representation of the error kind.
func (k Kind) String() string {
	switch k {
	case Configuration:
		return "Configuration"
	case Transport:
		return "Transport"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

var (
	// ErrCredentialNotFound is returned when the key file does not exist.
	ErrCredentialNotFound = stderrors.New("credential file not found")
	// ErrCredentialRead is returned when the key file exists but cannot be used.
	ErrCredentialRead = stderrors.New("credential file unreadable")
	// ErrInvalidParam is returned when a path or query parameter cannot be encoded.
	ErrInvalidParam = stderrors.New("invalid parameter")
	// ErrEncodeBody is returned when a request body cannot be serialized.
	ErrEncodeBody = stderrors.New("cannot encode request body")
)

// Error wraps an underlying failure with its kind and the operation that failed.
type Error struct {
	Kind       Kind
	Op         string // endpoint or function name
	RequestID  string // empty for failures that never reached the transport
	Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("[%s] %s (request %s): %v", e.Kind, e.Op, e.RequestID, e.Underlying)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Op, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewConfigError creates an error for a request that could not be built.
func NewConfigError(op string, err error) *Error {
	return &Error{Kind: Configuration, Op: op, Underlying: err}
}

// NewTransportError creates an error for a failed HTTP exchange.
func NewTransportError(op, requestID string, err error) *Error {
	return &Error{Kind: Transport, Op: op, RequestID: requestID, Underlying: err}
}

// IsConfiguration reports whether err (or anything it wraps) is a configuration error.
func IsConfiguration(err error) bool {
	return hasKind(err, Configuration)
}

// IsTransport reports whether err (or anything it wraps) is a transport error.
func IsTransport(err error) bool {
	return hasKind(err, Transport)
}

func hasKind(err error, k Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
