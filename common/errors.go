package common

import (
	"github.com/pkg/errors"
)

// ErrNotFound is returned by storage adapters when a key has no value.
var ErrNotFound = errors.New("not found")

// ErrClosed is returned when an operation is attempted on a closed pubsub.
var ErrClosed = errors.New("pubsub is closed")

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
