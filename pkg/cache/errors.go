package cache

import "errors"

// Sentinel errors for cache backends and the collaborators that use them.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned for transport failures (timeouts, connection
	// errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)
