package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TASKMAN_BACKEND.
const EnvPrefix = "TASKMAN"

// Setting keys in config.yaml.
const (
	keyBackend   = "backend"
	keyDatabase  = "database"
	keyTaskList  = "google.tasklist"
	keyRemoteURL = "remote.url"
	keyListen    = "listen"
	keyTimeout   = "timeout"
)

// ErrInvalid is returned for settings that cannot be used.
var ErrInvalid = errors.New("invalid config")

// Load applies config.yaml (when present) and TASKMAN_* environment
// variables on top of the defaults already in c.
func (c *Config) Load() error {
	v := viper.New()
	v.SetConfigFile(c.ConfigPath())
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyBackend, c.Backend)
	v.SetDefault(keyDatabase, c.Database)
	v.SetDefault(keyTaskList, c.TaskList)
	v.SetDefault(keyRemoteURL, c.RemoteURL)
	v.SetDefault(keyListen, c.Listen)
	v.SetDefault(keyTimeout, c.Timeout)

	if _, err := os.Stat(c.ConfigPath()); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, ConfigFile, err)
		}
	}

	c.Backend = strings.ToLower(strings.TrimSpace(v.GetString(keyBackend)))
	c.Database = v.GetString(keyDatabase)
	c.TaskList = v.GetString(keyTaskList)
	c.RemoteURL = v.GetString(keyRemoteURL)
	c.Listen = v.GetString(keyListen)
	c.Timeout = v.GetDuration(keyTimeout)

	return c.validate()
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendSQLite, BackendMySQL, BackendGoogle:
	case BackendRemote:
		if c.RemoteURL == "" {
			return fmt.Errorf("%w: remote.url is required for the remote backend", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	if c.Database == "" && (c.Backend == BackendSQLite || c.Backend == BackendMySQL) {
		return fmt.Errorf("%w: database is required for the %s backend", ErrInvalid, c.Backend)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalid)
	}
	return nil
}
