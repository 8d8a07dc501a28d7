package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Backend=%q", cfg.Backend)
	}
	if cfg.Database != filepath.Join(dir, "tasks.db") {
		t.Errorf("Database=%q", cfg.Database)
	}
	if cfg.TaskList != "@default" || cfg.Listen != "127.0.0.1:8420" || cfg.Timeout != 5*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.TokenPath() != filepath.Join(dir, "token.json") {
		t.Errorf("TokenPath=%q", cfg.TokenPath())
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != "/tmp/xdg/taskman" {
		t.Errorf("DefaultConfigDir()=%q", got)
	}
}

func TestLoad_NoFileKeepsDefaults(t *testing.T) {
	cfg, _ := New(t.TempDir())
	want := *cfg
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Backend != want.Backend || cfg.Database != want.Database || cfg.Timeout != want.Timeout {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `backend: remote
remote:
  url: http://tasks.local:8420
timeout: 2s
listen: 0.0.0.0:9000
google:
  tasklist: L1
`)
	cfg, _ := New(dir)
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Backend != BackendRemote || cfg.RemoteURL != "http://tasks.local:8420" {
		t.Errorf("unexpected backend settings %+v", cfg)
	}
	if cfg.Timeout != 2*time.Second || cfg.Listen != "0.0.0.0:9000" || cfg.TaskList != "L1" {
		t.Errorf("unexpected settings %+v", cfg)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "backend: google\n")
	t.Setenv("TASKMAN_BACKEND", "mysql")
	t.Setenv("TASKMAN_DATABASE", "user:pw@tcp(db:3306)/tasks")

	cfg, _ := New(dir)
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Backend != BackendMySQL || cfg.Database != "user:pw@tcp(db:3306)/tasks" {
		t.Errorf("unexpected settings %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown backend", "backend: postgres\n"},
		{"remote without url", "backend: remote\n"},
		{"negative timeout", "timeout: -1s\n"},
		{"malformed yaml", "backend: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)
			cfg, _ := New(dir)
			if err := cfg.Load(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLog_NilDiscards(t *testing.T) {
	cfg, _ := New(t.TempDir())
	if cfg.Log() == nil {
		t.Fatal("Log() returned nil")
	}
	cfg.Log().Debug("dropped")
}
