// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	cfg.expandVariables()

	if cfg.BaseURL != "https://api.honcho.dev" {
		t.Errorf("expected base_url=https://api.honcho.dev, got %s", cfg.BaseURL)
	}
	if cfg.Workspace != "agent-zero" {
		t.Errorf("expected workspace=agent-zero, got %s", cfg.Workspace)
	}
	if cfg.User != "user" {
		t.Errorf("expected user=user, got %s", cfg.User)
	}
	if cfg.Cache.TTL.Std() != 120*time.Second {
		t.Errorf("expected cache.ttl=120s, got %s", cfg.Cache.TTL.Std())
	}
	if cfg.Retry.Attempts != 3 {
		t.Errorf("expected retry.attempts=3, got %d", cfg.Retry.Attempts)
	}
	if cfg.Retry.BaseDelay.Std() != 500*time.Millisecond {
		t.Errorf("expected retry.base_delay=500ms, got %s", cfg.Retry.BaseDelay.Std())
	}
	if cfg.Message.MaxLength != 10_000 {
		t.Errorf("expected message.max_length=10000, got %d", cfg.Message.MaxLength)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadWithoutVariableReturnsDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HONCHO_WORKSPACE_ID", "")
	t.Setenv("HONCHO_USER_ID", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without %s failed: %v", EnvConfigPath, err)
	}
	if cfg.Workspace != "agent-zero" {
		t.Errorf("expected workspace=agent-zero, got %s", cfg.Workspace)
	}
}

func TestLoadWithConfigPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "honcho-bridge.yaml")
	configContent := `
workspace: research-fleet
user: analyst
cache:
  ttl: 30s
retry:
  attempts: 5
  base_delay: 250ms
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv(EnvConfigPath, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Workspace != "research-fleet" {
		t.Errorf("expected workspace=research-fleet, got %s", cfg.Workspace)
	}
	if cfg.User != "analyst" {
		t.Errorf("expected user=analyst, got %s", cfg.User)
	}
	if cfg.Cache.TTL.Std() != 30*time.Second {
		t.Errorf("expected cache.ttl=30s, got %s", cfg.Cache.TTL.Std())
	}
	if cfg.Retry.Attempts != 5 {
		t.Errorf("expected retry.attempts=5, got %d", cfg.Retry.Attempts)
	}
	// Untouched sections keep their defaults.
	if cfg.Message.MaxLength != 10_000 {
		t.Errorf("expected message.max_length=10000, got %d", cfg.Message.MaxLength)
	}
}

func TestLoadFileRejectsUnknownFields(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "honcho-bridge.yaml")
	if err := os.WriteFile(configPath, []byte("workspce: typo\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadFile(configPath); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestLoadFileRejectsBadDuration(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "honcho-bridge.yaml")
	if err := os.WriteFile(configPath, []byte("cache:\n  ttl: fast\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("expected error for unparsable duration, got nil")
	}
	if !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("expected invalid duration error, got: %v", err)
	}
}

func TestEnvironmentOverridesWorkspaceAndUser(t *testing.T) {
	t.Setenv("HONCHO_WORKSPACE_ID", "ops-fleet")
	t.Setenv("HONCHO_USER_ID", "operator")

	cfg := Default()
	cfg.expandVariables()

	if cfg.Workspace != "ops-fleet" {
		t.Errorf("expected workspace=ops-fleet, got %s", cfg.Workspace)
	}
	if cfg.User != "operator" {
		t.Errorf("expected user=operator, got %s", cfg.User)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("HB_TEST_SET", "value")
	t.Setenv("HB_TEST_EMPTY", "")

	cases := []struct {
		input string
		want  string
	}{
		{"${HB_TEST_SET}", "value"},
		{"${HB_TEST_SET:-fallback}", "value"},
		{"${HB_TEST_EMPTY:-fallback}", "fallback"},
		{"${HB_TEST_UNSET:-fallback}", "fallback"},
		{"${HB_TEST_UNSET}", ""},
		{"prefix-${HB_TEST_SET}-suffix", "prefix-value-suffix"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := expandVars(tc.input); got != tc.want {
			t.Errorf("expandVars(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestValidateCatchesBadValues(t *testing.T) {
	cfg := Default()
	cfg.expandVariables()
	cfg.BaseURL = "not a url"
	cfg.Workspace = ""
	cfg.Retry.Attempts = 0
	cfg.Secrets.SealedPath = "/etc/honcho/creds.sealed" // identity path missing

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors, got nil")
	}
	for _, fragment := range []string{"base_url", "workspace", "retry.attempts", "identity_path"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("validation error missing %q: %v", fragment, err)
		}
	}
}
