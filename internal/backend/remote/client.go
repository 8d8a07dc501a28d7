// Package remote implements service.Service against a taskman server.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"taskman/internal/server"
	"taskman/internal/service"
)

// Client calls the /invoke endpoints of a taskman server.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ service.Service = (*Client)(nil)

// New creates a client for the server at baseURL. A nil httpClient uses
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid remote url: %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.invoke(ctx, server.GetTasks, struct{}{}, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, task service.Task) error {
	return c.invoke(ctx, server.AddTask, server.AddTaskRequest{Task: task}, nil)
}

// ToggleTask implements service.Service.
func (c *Client) ToggleTask(ctx context.Context, id int64) error {
	return c.invoke(ctx, server.ToggleTask, server.ToggleTaskRequest{ID: id}, nil)
}

func (c *Client) invoke(ctx context.Context, name string, reqBody, respBody any) error {
	data, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+server.InvokePath(name), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return service.Unavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if respBody == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return service.Unavailable(fmt.Errorf("decode %s response: %w", name, err))
	}
	return nil
}

// remoteError keeps the server's message while matching the taxonomy
// sentinel with errors.Is.
type remoteError struct {
	kind error
	msg  string
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.kind }

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body server.ErrorResponse
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		return service.Unavailable(fmt.Errorf("unexpected status %s", resp.Status))
	}

	switch body.Code {
	case server.CodeRejected:
		return &remoteError{kind: service.ErrValidationRejected, msg: body.Error}
	case server.CodeNotFound:
		return &remoteError{kind: service.ErrNotFound, msg: body.Error}
	default:
		return &remoteError{kind: service.ErrStoreUnavailable, msg: body.Error}
	}
}
