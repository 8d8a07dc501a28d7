// Package server exposes a task store over HTTP.
//
// Each store request is a POST to /invoke/<name> with a JSON body, named after
// the requests the desktop client sends: get_tasks, add_task, toggle_task.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskman/internal/service"
)

// Request names.
const (
	GetTasks   = "get_tasks"
	AddTask    = "add_task"
	ToggleTask = "toggle_task"
)

// Error codes carried in ErrorResponse.
const (
	CodeUnavailable = "store_unavailable"
	CodeRejected    = "validation_rejected"
	CodeNotFound    = "not_found"
)

const shutdownTimeout = 5 * time.Second

// AddTaskRequest is the add_task body.
type AddTaskRequest struct {
	Task service.Task `json:"task"`
}

// ToggleTaskRequest is the toggle_task body.
type ToggleTaskRequest struct {
	ID int64 `json:"id"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// InvokePath returns the route for a request name.
func InvokePath(name string) string {
	return "/invoke/" + name
}

// Server is the HTTP front of a task store.
type Server struct {
	svc    service.Service
	log    *slog.Logger
	router *gin.Engine
}

// New creates a server for svc. A nil logger discards request logs.
func New(svc service.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	router := gin.New()

	s := &Server{
		svc:    svc,
		log:    log.With("component", "server"),
		router: router,
	}

	router.Use(gin.Recovery(), s.logRequests)

	invoke := router.Group("/invoke")
	{
		invoke.POST("/"+GetTasks, s.handleGetTasks)
		invoke.POST("/"+AddTask, s.handleAddTask)
		invoke.POST("/"+ToggleTask, s.handleToggleTask)
	}

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.log.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleGetTasks(c *gin.Context) {
	tasks, err := s.svc.ListTasks(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleAddTask(c *gin.Context) {
	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, service.Rejected(err.Error()))
		return
	}
	if err := s.svc.CreateTask(c.Request.Context(), req.Task); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleToggleTask(c *gin.Context) {
	var req ToggleTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, service.Rejected(err.Error()))
		return
	}
	if err := s.svc.ToggleTask(c.Request.Context(), req.ID); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail writes err as an ErrorResponse with the status for its kind.
func (s *Server) fail(c *gin.Context, err error) {
	status, code := http.StatusServiceUnavailable, CodeUnavailable
	switch {
	case errors.Is(err, service.ErrValidationRejected):
		status, code = http.StatusUnprocessableEntity, CodeRejected
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, CodeNotFound
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"took", time.Since(start),
	)
}
