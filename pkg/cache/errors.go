package cache

import (
	"errors"
	"fmt"
)

// Sentinel errors for caching operations.
var (
	// ErrUnavailable is returned when the backing store cannot be reached.
	ErrUnavailable = errors.New("cache backend unavailable")

	// ErrUnknownBackend is returned by [Open] for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// unavailable wraps a backend error so callers can match ErrUnavailable.
func unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
