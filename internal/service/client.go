package service

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"
)

// DefaultTimeout bounds a single store round trip.
const DefaultTimeout = 5 * time.Second

// Client is the store boundary used by the collection controller.
// It wraps a backend Service, validates input before it leaves the process,
// applies a per-call timeout and classifies every failure into the error
// taxonomy (ErrStoreUnavailable, ErrValidationRejected, ErrNotFound).
type Client struct {
	backend Service
	timeout time.Duration
	log     *slog.Logger
}

var _ Service = (*Client)(nil)

// NewClient wraps backend. A zero timeout disables the per-call deadline.
// A nil logger discards debug output.
func NewClient(backend Service, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Client{
		backend: backend,
		timeout: timeout,
		log:     log.With("component", "store"),
	}
}

// ListTasks returns the current full collection.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	tasks, err := c.backend.ListTasks(ctx)
	err = Classify(err)
	c.trace("get_tasks", start, err, "count", len(tasks))
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask submits a new task with Completed forced to false.
// Blank titles are rejected without contacting the backend.
func (c *Client) CreateTask(ctx context.Context, task Task) error {
	task.ID = 0
	task.Completed = false
	task.Title = strings.TrimSpace(task.Title)
	if err := task.Validate(); err != nil {
		c.log.Debug("add_task rejected", "err", err)
		return err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := Classify(c.backend.CreateTask(ctx, task))
	c.trace("add_task", start, err, "category", task.Category, "priority", task.Priority)
	return err
}

// ToggleTask inverts the completed flag of the task with the given ID.
func (c *Client) ToggleTask(ctx context.Context, id int64) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := Classify(c.backend.ToggleTask(ctx, id))
	c.trace("toggle_task", start, err, "id", id)
	return err
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) trace(op string, start time.Time, err error, attrs ...any) {
	attrs = append(attrs, "took", time.Since(start))
	if err != nil {
		c.log.Debug(op+" failed", append(attrs, "err", err)...)
		return
	}
	c.log.Debug(op, attrs...)
}
