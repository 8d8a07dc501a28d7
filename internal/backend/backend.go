// Package backend opens the task store selected by configuration.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"taskman/internal/backend/googletasks"
	"taskman/internal/backend/remote"
	"taskman/internal/backend/sqlstore"
	"taskman/internal/config"
	"taskman/internal/service"
)

// ErrNotAuthenticated is returned when the Google backend has no credentials.
var ErrNotAuthenticated = errors.New("not authenticated")

// Open returns the backend named by cfg.Backend. Callers close it with Close
// when done.
func Open(ctx context.Context, cfg *config.Config) (service.Service, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Database), 0700); err != nil {
			return nil, service.Unavailable(err)
		}
		s, err := sqlstore.Open(ctx, sqlstore.DriverSQLite, cfg.Database)
		if err != nil {
			return nil, service.Unavailable(fmt.Errorf("open %s: %w", cfg.Database, err))
		}
		return s, nil

	case config.BackendMySQL:
		s, err := sqlstore.Open(ctx, sqlstore.DriverMySQL, cfg.Database)
		if err != nil {
			return nil, service.Unavailable(fmt.Errorf("open mysql: %w", err))
		}
		return s, nil

	case config.BackendGoogle:
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("%w: %s not found in %s", ErrNotAuthenticated, config.OAuthClientFile, cfg.Dir)
		}
		if !cfg.HasToken() {
			return nil, fmt.Errorf("%w: not logged in (run: taskman login)", ErrNotAuthenticated)
		}
		c, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
		}
		return c, nil

	case config.BackendRemote:
		return remote.New(cfg.RemoteURL, nil)

	default:
		return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalid, cfg.Backend)
	}
}

// Close releases svc if it holds resources.
func Close(svc service.Service) error {
	if c, ok := svc.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
