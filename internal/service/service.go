// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// Every store round trip goes through this interface; commands and the
// collection controller never import a backend directly.
type Service interface {
	// ListTasks returns the full task collection in store order.
	// No pagination and no client-side sorting.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask stores a new task. The store assigns the ID; the created
	// record is not returned, callers re-list to observe it.
	CreateTask(ctx context.Context, task Task) error

	// ToggleTask inverts the completed flag of the task with the given ID.
	// Returns ErrNotFound if no such task exists.
	ToggleTask(ctx context.Context, id int64) error
}
