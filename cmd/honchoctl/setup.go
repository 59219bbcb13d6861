// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/agentzero-community/honcho-bridge/bridge"
	"github.com/agentzero-community/honcho-bridge/honcho"
	"github.com/agentzero-community/honcho-bridge/lib/config"
	"github.com/agentzero-community/honcho-bridge/lib/secrets"
)

// commandTimeout bounds each remote operation a command performs.
const commandTimeout = 30 * time.Second

// commonFlags returns a flag set preloaded with the flags every
// service-touching command shares.
func commonFlags(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "", "bridge config file (default: $"+config.EnvConfigPath+" or built-in defaults)")
	flags.Bool("verbose", false, "enable debug logging")
	return flags
}

// loadConfig resolves the effective configuration: --config wins,
// then the environment, then built-in defaults. The result is always
// validated.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	path, _ := flags.GetString("config")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// commandLogger builds the logger for one command invocation: text on
// a terminal, JSON when output is captured. All logging goes to
// stderr so stdout stays parseable.
func commandLogger(flags *pflag.FlagSet) *slog.Logger {
	verbose, _ := flags.GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, options))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, options))
}

// newClient assembles the workspace client from configuration. The
// credential chain is the same one the host extensions use: process
// environment first, sealed file second.
func newClient(cfg *config.Config, logger *slog.Logger) (*honcho.Client, error) {
	source := secrets.DefaultChain(cfg.Secrets.SealedPath, cfg.Secrets.IdentityPath)
	return honcho.NewClient(honcho.ClientConfig{
		BaseURL:        cfg.BaseURL,
		Workspace:      cfg.Workspace,
		Secrets:        source,
		Logger:         logger,
		RetryAttempts:  cfg.Retry.Attempts,
		RetryBaseDelay: cfg.Retry.BaseDelay.Std(),
	})
}

func newBridge(cfg *config.Config, client *honcho.Client, logger *slog.Logger) (*bridge.Bridge, error) {
	return bridge.New(bridge.Config{
		Client:           client,
		User:             cfg.User,
		AgentPeer:        cfg.AgentPeer,
		CacheTTL:         cfg.Cache.TTL.Std(),
		MaxStaleFactor:   cfg.Cache.MaxStaleFactor,
		MaxMessageLength: cfg.Message.MaxLength,
		ContextTokens:    cfg.Context.Tokens,
		Logger:           logger,
	})
}

// readSecretFile reads a secret from a file, stripping one trailing
// newline so `echo key > file` round-trips.
func readSecretFile(path string) (*secrets.Buffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	trimmed := strings.TrimRight(string(raw), "\n\r")
	if trimmed == "" {
		return nil, fmt.Errorf("secret file %s is empty", path)
	}
	return secrets.NewBufferFromString(trimmed)
}

// promptSecret reads a secret from the terminal without echo. The
// prompt goes to stderr so piped stdout stays clean.
func promptSecret(prompt string) (*secrets.Buffer, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading secret: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty secret")
	}
	// NewBuffer zeros raw after copying it into protected memory.
	return secrets.NewBuffer(raw)
}
