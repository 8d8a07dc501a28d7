// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"taskman/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// IDs are assigned sequentially starting at 1, like the SQLite store.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int64
	calls  map[string]int

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	ToggleTaskErr error

	// Block, when non-nil, stalls every operation until it is closed or the
	// caller's context ends.
	Block chan struct{}

	// BeforeToggle, when set, runs at the start of every ToggleTask call.
	BeforeToggle func(id int64)
}

var _ service.Service = (*FakeService)(nil)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		calls:  make(map[string]int),
	}
}

// AddTask seeds a task and returns its assigned ID.
func (f *FakeService) AddTask(title, category string, priority int, completed bool) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.tasks = append(f.tasks, service.Task{
		ID:        id,
		Title:     title,
		Category:  category,
		Priority:  priority,
		Completed: completed,
	})
	return id
}

// Snapshot returns a copy of the stored tasks.
func (f *FakeService) Snapshot() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// Calls returns how many times the named request reached the fake.
// Names follow the wire requests: get_tasks, add_task, toggle_task.
func (f *FakeService) Calls(op string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[op]
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.count("get_tasks")
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Snapshot(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.Task) error {
	f.count("add_task")
	if err := f.wait(ctx); err != nil {
		return err
	}
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	if err := task.Validate(); err != nil {
		return err
	}
	f.AddTask(task.Title, task.Category, task.Priority, false)
	return nil
}

// ToggleTask implements service.Service.
func (f *FakeService) ToggleTask(ctx context.Context, id int64) error {
	f.count("toggle_task")
	if f.BeforeToggle != nil {
		f.BeforeToggle(id)
	}
	if err := f.wait(ctx); err != nil {
		return err
	}
	if f.ToggleTaskErr != nil {
		return f.ToggleTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Completed = !t.Completed
			return nil
		}
	}
	return service.NotFound(id)
}

func (f *FakeService) count(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *FakeService) wait(ctx context.Context) error {
	if f.Block == nil {
		return nil
	}
	select {
	case <-f.Block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
