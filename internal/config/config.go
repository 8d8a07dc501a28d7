// Package config handles the XDG configuration directory, the optional
// config.yaml inside it and the settings derived from both.
package config

import (
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the application directory name.
	AppName = "taskman"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// ConfigFile is the optional settings file inside Dir.
	ConfigFile = "config.yaml"

	// DatabaseFile is the default SQLite database filename.
	DatabaseFile = "tasks.db"
)

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendGoogle = "google"
	BackendRemote = "remote"
)

// Defaults.
const (
	DefaultBackend  = BackendSQLite
	DefaultTaskList = "@default"
	DefaultListen   = "127.0.0.1:8420"
	DefaultTimeout  = 5 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// NoColor disables ANSI colors in list output.
	NoColor bool

	// Backend selects the task store: sqlite, mysql, google or remote.
	Backend string

	// Database is the SQLite file path or the MySQL DSN.
	Database string

	// TaskList is the Google Tasks list ID.
	TaskList string

	// RemoteURL is the base URL of a taskman server.
	RemoteURL string

	// Listen is the address serve binds to.
	Listen string

	// Timeout bounds every store request. Zero disables it.
	Timeout time.Duration

	// Logger receives debug traces. Nil discards them.
	Logger *slog.Logger
}

// New creates a new Config with the default or specified config directory
// and default settings. Load reads config.yaml on top of it.
// If configDir is empty, uses XDG_CONFIG_HOME/taskman or $HOME/.config/taskman.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:      dir,
		Backend:  DefaultBackend,
		Database: filepath.Join(dir, DatabaseFile),
		TaskList: DefaultTaskList,
		Listen:   DefaultListen,
		Timeout:  DefaultTimeout,
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return c.Logger
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
