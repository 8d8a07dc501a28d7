package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskman/internal/backend"
	"taskman/internal/cli"
	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/output"
	"taskman/internal/service"
	"taskman/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, testFactory(testutil.NewFakeService()), "help", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, testFactory(testutil.NewFakeService()), "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskman 0.1.0\n" {
		t.Errorf("expected 'taskman 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "add", "--category")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -category\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", "Comprar", 2, false)

	stdout, stderr, code := run(t, testFactory(svc))

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	// Color is on by default but stdout is not a terminal.
	want := output.TaskLine(service.Task{ID: 1, Title: "Buy milk", Category: "Comprar", Priority: 2}, nil) + "\n"
	if stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}
}

func TestDispatcher_AddThenToggle(t *testing.T) {
	dir := t.TempDir()
	svc := testutil.NewFakeService()

	stdout, stderr, code := run(t, testFactory(svc), "add", "--config", dir, "-c", "Hacer", "-p", "3", "Fix", "bike")
	if code != exitcode.Success || stdout != "ok\n" {
		t.Fatalf("add: code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}

	stdout, stderr, code = run(t, testFactory(svc), "t", "--config", dir, "#1")
	if code != exitcode.Success {
		t.Fatalf("toggle: code=%d stderr=%q", code, stderr)
	}
	if stdout != "#1 done  Fix bike\n" {
		t.Errorf("unexpected toggle output %q", stdout)
	}

	want := service.Task{ID: 1, Title: "Fix bike", Category: "Hacer", Priority: 3, Completed: true}
	if got := svc.Snapshot(); len(got) != 1 || got[0] != want {
		t.Errorf("expected [%+v], got %+v", want, got)
	}
}

func TestDispatcher_StoreErrors(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*testutil.FakeService)
		args   []string
		code   int
		stderr string
	}{
		{
			name:   "unavailable",
			setup:  func(s *testutil.FakeService) { s.ListTasksErr = errors.New("connection refused") },
			args:   []string{"list"},
			code:   exitcode.BackendError,
			stderr: "error: backend error: store unavailable: connection refused\n",
		},
		{
			name:   "not found",
			args:   []string{"toggle", "7"},
			code:   exitcode.UserError,
			stderr: "error: not found: task 7\n",
		},
		{
			name:   "bad id",
			args:   []string{"toggle", "seven"},
			code:   exitcode.UserError,
			stderr: "error: invalid task id: seven\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			if tt.setup != nil {
				tt.setup(svc)
			}
			args := append([]string{tt.args[0], "--config", t.TempDir()}, tt.args[1:]...)
			_, stderr, code := run(t, testFactory(svc), args...)
			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if stderr != tt.stderr {
				t.Errorf("expected %q, got %q", tt.stderr, stderr)
			}
		})
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: not logged in (run: taskman login)", backend.ErrNotAuthenticated), exitcode.AuthError},
		{fmt.Errorf("%w: unknown backend %q", config.ErrInvalid, "x"), exitcode.AuthError},
		{service.Unavailable(errors.New("dial tcp: refused")), exitcode.BackendError},
	}
	for _, tt := range tests {
		factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
			return nil, tt.err
		}
		_, stderr, code := run(t, factory, "list", "--config", t.TempDir())
		if code != tt.code {
			t.Errorf("%v: expected exit code %d, got %d", tt.err, tt.code, code)
		}
		if !strings.HasPrefix(stderr, "error: ") {
			t.Errorf("unexpected stderr %q", stderr)
		}
	}
}

func TestDispatcher_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("backend: postgres\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "list", "--config", dir)
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: invalid config: unknown backend \"postgres\"\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}

	// Commands without a store still run.
	_, _, code = run(t, nil, "version", "--config", dir)
	if code != exitcode.Success {
		t.Errorf("version should ignore a broken config, got %d", code)
	}
}

func TestDispatcher_DebugLogsCarryRunID(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, testFactory(svc), "list", "--debug", "--config", t.TempDir())
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(stderr, "run=") || !strings.Contains(stderr, "msg=get_tasks") {
		t.Errorf("expected debug trace with run id, got %q", stderr)
	}
}

func TestDispatcher_DefaultBackendIsSQLite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKMAN_BACKEND", "")

	stdout, stderr, code := run(t, nil, "add", "--config", dir, "--quiet", "Buy", "milk")
	if code != exitcode.Success {
		t.Fatalf("add: code=%d stderr=%q", code, stderr)
	}
	if stdout != "" {
		t.Errorf("expected no stdout with --quiet, got %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, config.DatabaseFile)); err != nil {
		t.Errorf("expected sqlite database in config dir: %v", err)
	}

	stdout, _, code = run(t, nil, "ls", "--config", dir, "--no-color")
	if code != exitcode.Success {
		t.Fatalf("list: code=%d", code)
	}
	want := output.TaskLine(service.Task{ID: 1, Title: "Buy milk", Category: "Otros", Priority: 1}, nil) + "\n"
	if stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}
}
