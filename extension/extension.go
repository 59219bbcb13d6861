// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agentzero-community/honcho-bridge/bridge"
	"github.com/agentzero-community/honcho-bridge/honcho"
	"github.com/agentzero-community/honcho-bridge/lib/config"
	"github.com/agentzero-community/honcho-bridge/lib/secrets"
)

// Extensions bundles the three lifecycle hooks the host invokes. Every
// hook absorbs every failure: whatever goes wrong underneath, the
// host's turn proceeds exactly as if the integration were absent.
type Extensions struct {
	bridge *bridge.Bridge
	logger *slog.Logger
}

// New creates the hook set around an existing bridge.
func New(b *bridge.Bridge, logger *slog.Logger) *Extensions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extensions{bridge: b, logger: logger}
}

// FromConfig assembles the full stack for an embedding host: the
// credential chain (environment first, then the sealed file when one
// is configured), the client, the bridge, and the hooks. An absent
// credential is not an error here — the hooks come up disabled and
// activate on their own once a key appears.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Extensions, error) {
	if cfg == nil {
		return nil, fmt.Errorf("extension: config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	source := secrets.DefaultChain(cfg.Secrets.SealedPath, cfg.Secrets.IdentityPath)

	client, err := honcho.NewClient(honcho.ClientConfig{
		BaseURL:        cfg.BaseURL,
		Workspace:      cfg.Workspace,
		Secrets:        source,
		Logger:         logger,
		RetryAttempts:  cfg.Retry.Attempts,
		RetryBaseDelay: cfg.Retry.BaseDelay.Std(),
	})
	if err != nil {
		return nil, err
	}

	b, err := bridge.New(bridge.Config{
		Client:           client,
		User:             cfg.User,
		AgentPeer:        cfg.AgentPeer,
		CacheTTL:         cfg.Cache.TTL.Std(),
		MaxStaleFactor:   cfg.Cache.MaxStaleFactor,
		MaxMessageLength: cfg.Message.MaxLength,
		ContextTokens:    cfg.Context.Tokens,
		Logger:           logger,
	})
	if err != nil {
		return nil, err
	}

	return New(b, logger), nil
}

// Bridge returns the underlying bridge, for hosts that expose manual
// controls (cache invalidation, direct context reads).
func (e *Extensions) Bridge() *bridge.Bridge {
	return e.bridge
}

// AgentInit runs when an agent context starts. It only reports
// whether the integration is live; the remote session is created
// lazily by the first message or context operation, so a key added
// mid-run still activates everything without another init.
func (e *Extensions) AgentInit(ctx context.Context, chatID string) {
	if !e.bridge.Configured() {
		return
	}
	e.logger.Info("memory integration enabled", "chat", chatID)
}

// HistoryAdd runs before the host persists a message to its chat
// history. It digs the plain text out of the host's content payload
// and forwards it; empty text, a missing credential, and every remote
// failure all end the hook quietly.
func (e *Extensions) HistoryAdd(ctx context.Context, chatID string, contentData any, fromAgent bool) {
	content := strings.TrimSpace(extractText(contentData))
	if content == "" {
		return
	}

	role := string(bridge.RoleUser)
	if fromAgent {
		role = string(bridge.RoleAssistant)
	}

	err := e.bridge.SyncMessage(ctx, chatID, role, content)
	switch {
	case err == nil:
	case errors.Is(err, honcho.ErrNoCredential):
		// Unconfigured is the normal quiet state.
	default:
		e.logger.Debug("message sync skipped", "chat", chatID, "role", role, "error", err)
	}
}

// SystemPrompt runs while the host assembles the agent's system
// prompt. It returns the context fragment to append, or the empty
// string when there is nothing to add or anything failed.
func (e *Extensions) SystemPrompt(ctx context.Context, chatID string) string {
	return e.bridge.PromptFragment(ctx, chatID)
}
