package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

func authConfig(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(cfg.Dir, name), []byte(body), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return cfg
}

func TestLoginCommand_NoOAuthClient(t *testing.T) {
	cfg := authConfig(t, nil)

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LoginCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no stdout, got %q", outBuf.String())
	}
	if !strings.HasPrefix(errBuf.String(), "error: oauth_client.json not found in "+cfg.Dir) {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
	if !strings.Contains(errBuf.String(), cfg.OAuthClientPath()) {
		t.Error("setup help should name the credentials path")
	}
}

func TestLoginCommand_InvalidOAuthClient(t *testing.T) {
	cfg := authConfig(t, map[string]string{config.OAuthClientFile: "not json"})

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LoginCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(errBuf.String(), "error: invalid oauth_client.json") {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
}

// A token without a refresh token must not count as logged in.
func TestLoginCommand_NoRefreshToken(t *testing.T) {
	cfg := authConfig(t, map[string]string{
		config.OAuthClientFile: testOAuthClient,
		config.TokenFile:       `{"access_token":"test","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`,
	})

	// Cancelled up front so the flow does not wait for a browser callback.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LoginCmd{}).Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if outBuf.String() == "already logged in\n" {
		t.Error("should not say 'already logged in' with token missing refresh_token")
	}
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
}

func TestLoginCommand_CorruptToken(t *testing.T) {
	cfg := authConfig(t, map[string]string{
		config.OAuthClientFile: testOAuthClient,
		config.TokenFile:       `{corrupt`,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var outBuf, errBuf bytes.Buffer
	_ = (&commands.LoginCmd{}).Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if outBuf.String() == "already logged in\n" {
		t.Error("should not say 'already logged in' with a corrupt token")
	}
}

func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	cfg := authConfig(t, map[string]string{
		config.OAuthClientFile: testOAuthClient,
		config.TokenFile:       `{"access_token":"test","refresh_token":"test"}`,
	})

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LogoutCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", outBuf.String())
	}
	if cfg.HasToken() {
		t.Error("token.json should have been deleted")
	}
	if !cfg.HasOAuthClient() {
		t.Error("oauth_client.json should NOT have been deleted")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	tests := []struct {
		quiet bool
		want  string
	}{
		{false, "not logged in\n"},
		{true, ""},
	}
	for _, tt := range tests {
		cfg := authConfig(t, nil)
		cfg.Quiet = tt.quiet

		var outBuf, errBuf bytes.Buffer
		code := (&commands.LogoutCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

		if code != exitcode.Success {
			t.Errorf("quiet=%v: expected exit code %d, got %d", tt.quiet, exitcode.Success, code)
		}
		if errBuf.String() != "" {
			t.Errorf("quiet=%v: expected no stderr, got %q", tt.quiet, errBuf.String())
		}
		if outBuf.String() != tt.want {
			t.Errorf("quiet=%v: expected %q, got %q", tt.quiet, tt.want, outBuf.String())
		}
	}
}
