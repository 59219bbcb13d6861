// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath is the environment variable naming the config file.
const EnvConfigPath = "HONCHO_BRIDGE_CONFIG"

// Defaults for the fields an operator usually leaves alone. The
// workspace and user defaults match what the hosted service expects
// from an Agent Zero deployment.
const (
	DefaultBaseURL   = "https://api.honcho.dev"
	DefaultWorkspace = "agent-zero"
	DefaultUser      = "user"
	DefaultAgentPeer = "agent-zero"

	DefaultCacheTTL       = 120 * time.Second
	DefaultMaxStaleFactor = 10

	DefaultRetryAttempts  = 3
	DefaultRetryBaseDelay = 500 * time.Millisecond

	DefaultMaxMessageLength = 10_000
	DefaultContextTokens    = 500
)

// Config is the bridge configuration. A zero-value file section keeps
// its default; HONCHO_WORKSPACE_ID and HONCHO_USER_ID environment
// variables override the workspace and user fields after loading, so
// hosts that configure through the environment need no file at all.
type Config struct {
	// BaseURL is the service endpoint. Override for self-hosted
	// deployments.
	BaseURL string `yaml:"base_url"`

	// Workspace scopes every remote call.
	Workspace string `yaml:"workspace"`

	// User is the peer identifier for the human side of each session.
	User string `yaml:"user"`

	// AgentPeer is the peer identifier for the agent side.
	AgentPeer string `yaml:"agent_peer"`

	// Cache controls the context response cache.
	Cache CacheConfig `yaml:"cache"`

	// Retry controls the transient-failure retry policy.
	Retry RetryConfig `yaml:"retry"`

	// Message controls validation limits.
	Message MessageConfig `yaml:"message"`

	// Context controls context fetches.
	Context ContextConfig `yaml:"context"`

	// Secrets locates the sealed credentials file. Both paths empty
	// means the environment is the only credential source.
	Secrets SecretsConfig `yaml:"secrets"`
}

// CacheConfig controls the context response cache.
type CacheConfig struct {
	// TTL is how long a cached context stays fresh.
	TTL Duration `yaml:"ttl"`

	// MaxStaleFactor bounds the stale-but-available fallback: on
	// fetch failure an expired entry is still served while its age is
	// under TTL * MaxStaleFactor, then discarded.
	MaxStaleFactor int `yaml:"max_stale_factor"`
}

// RetryConfig controls the transient-failure retry policy.
type RetryConfig struct {
	// Attempts is the total number of calls, first try included.
	Attempts int `yaml:"attempts"`

	// BaseDelay is the wait before the first retry; it doubles each
	// subsequent retry.
	BaseDelay Duration `yaml:"base_delay"`
}

// MessageConfig controls validation limits.
type MessageConfig struct {
	// MaxLength is the rune count a message is truncated to before
	// leaving the validator.
	MaxLength int `yaml:"max_length"`
}

// ContextConfig controls context fetches.
type ContextConfig struct {
	// Tokens is the summarization budget requested from the service.
	Tokens int `yaml:"tokens"`
}

// SecretsConfig locates the sealed credentials file.
type SecretsConfig struct {
	// SealedPath is the age-encrypted credentials file written by
	// honchoctl seal.
	SealedPath string `yaml:"sealed_path"`

	// IdentityPath is the age identity that opens SealedPath.
	IdentityPath string `yaml:"identity_path"`
}

// Duration wraps time.Duration so YAML fields accept "120s" / "500ms"
// forms instead of raw nanosecond integers.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the default configuration. Environment references in
// the workspace and user fields are still unexpanded; Load and LoadFile
// expand them.
func Default() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		Workspace: "${HONCHO_WORKSPACE_ID:-" + DefaultWorkspace + "}",
		User:      "${HONCHO_USER_ID:-" + DefaultUser + "}",
		AgentPeer: DefaultAgentPeer,
		Cache: CacheConfig{
			TTL:            Duration(DefaultCacheTTL),
			MaxStaleFactor: DefaultMaxStaleFactor,
		},
		Retry: RetryConfig{
			Attempts:  DefaultRetryAttempts,
			BaseDelay: Duration(DefaultRetryBaseDelay),
		},
		Message: MessageConfig{
			MaxLength: DefaultMaxMessageLength,
		},
		Context: ContextConfig{
			Tokens: DefaultContextTokens,
		},
	}
}

// Load reads the file named by HONCHO_BRIDGE_CONFIG. When the variable
// is unset, the defaults are returned as is — unlike most services the
// bridge runs fine with no file, because the one required value (the
// API key) comes from the secrets source, not from configuration.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific path, layering the file
// over the defaults and then expanding ${VAR} and ${VAR:-default}
// references from the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands environment references in the string fields
// that accept them.
func (c *Config) expandVariables() {
	c.BaseURL = expandVars(c.BaseURL)
	c.Workspace = expandVars(c.Workspace)
	c.User = expandVars(c.User)
	c.AgentPeer = expandVars(c.AgentPeer)
	c.Secrets.SealedPath = expandVars(c.Secrets.SealedPath)
	c.Secrets.IdentityPath = expandVars(c.Secrets.IdentityPath)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL))
	}
	if c.Workspace == "" {
		errs = append(errs, fmt.Errorf("workspace is required"))
	}
	if c.User == "" {
		errs = append(errs, fmt.Errorf("user is required"))
	}
	if c.AgentPeer == "" {
		errs = append(errs, fmt.Errorf("agent_peer is required"))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must be positive"))
	}
	if c.Cache.MaxStaleFactor < 1 {
		errs = append(errs, fmt.Errorf("cache.max_stale_factor must be at least 1"))
	}
	if c.Retry.Attempts < 1 {
		errs = append(errs, fmt.Errorf("retry.attempts must be at least 1"))
	}
	if c.Retry.BaseDelay <= 0 {
		errs = append(errs, fmt.Errorf("retry.base_delay must be positive"))
	}
	if c.Message.MaxLength < 1 {
		errs = append(errs, fmt.Errorf("message.max_length must be at least 1"))
	}
	if c.Context.Tokens < 1 {
		errs = append(errs, fmt.Errorf("context.tokens must be at least 1"))
	}
	if (c.Secrets.SealedPath == "") != (c.Secrets.IdentityPath == "") {
		errs = append(errs, fmt.Errorf("secrets.sealed_path and secrets.identity_path must be set together"))
	}

	return errors.Join(errs...)
}
