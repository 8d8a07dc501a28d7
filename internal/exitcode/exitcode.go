// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"taskman/internal/service"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, rejected input, unknown task).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates the task store could not be reached or failed.
	BackendError = 3
)

// For returns the exit code for a store error.
func For(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, service.ErrValidationRejected), errors.Is(err, service.ErrNotFound):
		return UserError
	default:
		return BackendError
	}
}
