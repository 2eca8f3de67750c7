package service

import (
	"errors"
	"fmt"
)

// Error taxonomy crossing the service boundary. Store and broker errors
// are translated into these; no raw driver error escapes.
var (
	// ErrNotFound indicates the referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidStatus indicates an unknown claim status value.
	ErrInvalidStatus = errors.New("invalid claim status")

	// ErrStoreUnavailable indicates the transaction could not be started,
	// committed, or the row lock could not be acquired in time. Retryable
	// by the caller; the service itself never retries.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// InsufficientQuantityError indicates a claim requested more than the
// listing's remaining quantity. Available is the quantity observed under
// the row lock, for display to the claimant.
type InsufficientQuantityError struct {
	Available int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("insufficient quantity: available=%d", e.Available)
}
