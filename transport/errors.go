package transport

import "errors"

var (
	// ErrConfigNil indicates that an option was applied to a nil Config.
	ErrConfigNil = errors.New("transport config is nil")

	// ErrClosed indicates that the transport has been closed.
	ErrClosed = errors.New("transport closed")
)
