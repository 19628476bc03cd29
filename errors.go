package shodan

import (
	"github.com/netscout/shodan/internal/dispatch"
	clienterrors "github.com/netscout/shodan/internal/errors"
)

// Error is the concrete type of every configuration and transport error
// returned by this package. Inspect Kind, or use IsConfiguration/IsTransport.
type Error = clienterrors.Error

// Re-export sentinels so callers compare against a single symbol.
var (
	ErrCredentialNotFound = clienterrors.ErrCredentialNotFound
	ErrCredentialRead     = clienterrors.ErrCredentialRead
	ErrInvalidParam       = clienterrors.ErrInvalidParam
	ErrEncodeBody         = clienterrors.ErrEncodeBody

	// ErrQueueFull is returned in a batch Result when the worker queue stayed full.
	ErrQueueFull = dispatch.ErrQueueFull
	// ErrClientClosed is returned in a batch Result after Close.
	ErrClientClosed = dispatch.ErrPoolClosed
)

// IsConfiguration reports whether err was raised before any request was sent.
func IsConfiguration(err error) bool { return clienterrors.IsConfiguration(err) }

// IsTransport reports whether err happened during the HTTP exchange.
func IsTransport(err error) bool { return clienterrors.IsTransport(err) }
