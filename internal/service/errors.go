package service

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable indicates the store could not be reached or failed.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrValidationRejected indicates the store refused malformed task input.
	ErrValidationRejected = errors.New("validation rejected")

	// ErrNotFound indicates no task exists with the requested ID.
	ErrNotFound = errors.New("not found")
)

// Unavailable wraps err as ErrStoreUnavailable, keeping err in the chain.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// Rejected returns an ErrValidationRejected error with the given reason.
func Rejected(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidationRejected, reason)
}

// NotFound returns an ErrNotFound error for the given task ID.
func NotFound(id int64) error {
	return fmt.Errorf("%w: task %d", ErrNotFound, id)
}

// Classify returns err unchanged when it already belongs to the taxonomy,
// otherwise wraps it as ErrStoreUnavailable.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStoreUnavailable),
		errors.Is(err, ErrValidationRejected),
		errors.Is(err, ErrNotFound):
		return err
	default:
		return Unavailable(err)
	}
}
