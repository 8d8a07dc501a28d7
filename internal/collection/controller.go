// Package collection owns the in-memory task list shown by the views.
//
// The Controller never patches its list locally: every successful mutation is
// followed by a full re-list from the store, so the collection only ever holds
// store-confirmed tasks in store order.
package collection

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"taskman/internal/service"
)

// Controller owns the task collection and the creation-form state.
type Controller struct {
	store service.Service
	log   *slog.Logger

	mu       sync.RWMutex
	tasks    []service.Task
	formOpen bool
	issued   uint64 // sequence of the last re-list started
	applied  uint64 // sequence of the listing currently held

	toggles singleflight.Group
}

// New creates a Controller over store. A nil logger discards output.
func New(store service.Service, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Controller{
		store: store,
		log:   log.With("component", "collection"),
	}
}

// Initialize loads the collection from the store.
func (c *Controller) Initialize(ctx context.Context) error {
	return c.refresh(ctx)
}

// Refresh re-lists the collection from the store.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.refresh(ctx)
}

// Tasks returns a copy of the collection as last received from the store.
func (c *Controller) Tasks() []service.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]service.Task, len(c.tasks))
	copy(result, c.tasks)
	return result
}

// Task looks up a task in the collection by ID.
func (c *Controller) Task(id int64) (service.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Len returns the number of tasks in the collection.
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tasks)
}

// OpenForm opens the creation form.
func (c *Controller) OpenForm() {
	c.setForm(true)
}

// CancelForm closes the creation form without contacting the store.
func (c *Controller) CancelForm() {
	c.setForm(false)
}

// FormOpen reports whether the creation form is open.
func (c *Controller) FormOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.formOpen
}

// SubmitNewTask creates a task, re-lists and closes the form.
// On any failure the collection and the form are left as they were.
func (c *Controller) SubmitNewTask(ctx context.Context, title, category string, priority int) error {
	err := c.store.CreateTask(ctx, service.Task{
		Title:    title,
		Category: category,
		Priority: priority,
	})
	if err != nil {
		return err
	}
	if err := c.refresh(ctx); err != nil {
		return err
	}
	c.setForm(false)
	return nil
}

// Toggle flips the completion of the task with the given ID and re-lists.
// A zero ID belongs to a task the store has not confirmed yet; that is a
// no-op. Concurrent toggles of the same ID share a single store round trip.
// The shared round trip is not canceled by any one caller; a caller whose ctx
// ends stops waiting and gets ErrStoreUnavailable.
func (c *Controller) Toggle(ctx context.Context, id int64) error {
	if id <= 0 {
		c.log.Debug("toggle ignored: task has no id")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return service.Unavailable(err)
	}

	detached := context.WithoutCancel(ctx)
	ch := c.toggles.DoChan(strconv.FormatInt(id, 10), func() (any, error) {
		if err := c.store.ToggleTask(detached, id); err != nil {
			return nil, err
		}
		return nil, c.refresh(detached)
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.log.Debug("toggle coalesced", "id", id)
		}
		return res.Err
	case <-ctx.Done():
		c.log.Debug("toggle abandoned", "id", id, "err", ctx.Err())
		return service.Unavailable(ctx.Err())
	}
}

func (c *Controller) setForm(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formOpen = open
}

// refresh lists the store and replaces the collection, unless a listing
// issued later has already been applied.
func (c *Controller) refresh(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	tasks, err := c.store.ListTasks(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.applied {
		c.log.Debug("stale listing dropped", "seq", seq, "applied", c.applied)
		return nil
	}
	c.tasks = tasks
	c.applied = seq
	return nil
}
