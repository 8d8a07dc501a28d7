// Package googletasks implements the service.Service interface using Google Tasks API.
//
// Google tasks have string IDs and no category or priority, so each task
// managed here carries a metadata line in its notes holding the integer ID
// this backend assigned, the category and the priority. Tasks in the list
// without that line were created elsewhere and are not reported.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskman/internal/config"
	"taskman/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks per page.
	PageSize = 100

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusOpen      = "needsAction"
	statusCompleted = "completed"
)

// Client implements service.Service using Google Tasks API.
type Client struct {
	svc    *tasks.Service
	listID string
}

var _ service.Service = (*Client)(nil)

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	// Load OAuth client config
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	// Load token
	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Token source refreshes automatically; the HTTP client carries it.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	return NewWithHTTPClient(ctx, httpClient, cfg.TaskList)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// An empty listID selects the default list.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, listID string, opts ...option.ClientOption) (*Client, error) {
	if listID == "" {
		listID = DefaultListID
	}
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, listID: listID}, nil
}

// ListTasks returns every managed task in the list, completed ones included,
// in API order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	items, err := c.listAll(ctx)
	if err != nil {
		return nil, err
	}

	result := []service.Task{}
	for _, item := range items {
		m, ok := decodeMeta(item.Notes)
		if !ok {
			continue
		}
		result = append(result, service.Task{
			ID:        m.ID,
			Title:     item.Title,
			Category:  m.Category,
			Priority:  m.Priority,
			Completed: item.Status == statusCompleted,
		})
	}
	return result, nil
}

// CreateTask inserts a task with the next free ID.
func (c *Client) CreateTask(ctx context.Context, task service.Task) error {
	task.Title = strings.TrimSpace(task.Title)
	if err := task.Validate(); err != nil {
		return err
	}

	items, err := c.listAll(ctx)
	if err != nil {
		return err
	}
	var maxID int64
	for _, item := range items {
		if m, ok := decodeMeta(item.Notes); ok && m.ID > maxID {
			maxID = m.ID
		}
	}

	_, err = c.svc.Tasks.Insert(c.listID, &tasks.Task{
		Title:  task.Title,
		Status: statusOpen,
		Notes: encodeMeta(meta{
			ID:       maxID + 1,
			Category: task.Category,
			Priority: task.Priority,
		}),
	}).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// ToggleTask flips the task between completed and needsAction.
func (c *Client) ToggleTask(ctx context.Context, id int64) error {
	items, err := c.listAll(ctx)
	if err != nil {
		return err
	}

	var target *tasks.Task
	for _, item := range items {
		if m, ok := decodeMeta(item.Notes); ok && m.ID == id {
			target = item
			break
		}
	}
	if target == nil {
		return service.NotFound(id)
	}

	patch := &tasks.Task{Status: statusCompleted}
	if target.Status == statusCompleted {
		// Reopening also clears the completion timestamp.
		patch = &tasks.Task{Status: statusOpen, NullFields: []string{"Completed"}}
	}

	_, err = c.svc.Tasks.Patch(c.listID, target.Id, patch).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			return service.NotFound(id)
		}
		return wrapError(err)
	}
	return nil
}

// listAll fetches every page of the list, including completed and hidden tasks.
func (c *Client) listAll(ctx context.Context) ([]*tasks.Task, error) {
	var items []*tasks.Task
	err := c.svc.Tasks.List(c.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			items = append(items, resp.Items...)
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return items, nil
}

// wrapError maps API errors onto the service error taxonomy with
// user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return service.Unavailable(errors.New("request timed out"))
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return service.Unavailable(errors.New("token expired or revoked (run: taskman login)"))
		case http.StatusBadRequest:
			return service.Rejected(gerr.Message)
		case http.StatusNotFound:
			return service.Unavailable(errors.New("task list not found"))
		}
	}

	return service.Unavailable(err)
}
