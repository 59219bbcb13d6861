// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/agentzero-community/honcho-bridge/honcho"
	"github.com/agentzero-community/honcho-bridge/lib/clock"
	"github.com/agentzero-community/honcho-bridge/lib/config"
)

// Config holds configuration for creating a Bridge. Only Client is
// required; zero values fall back to the operational defaults in
// [config].
type Config struct {
	// Client performs the remote calls. Required.
	Client *honcho.Client
	// User is the peer ID attributed to user messages.
	User string
	// AgentPeer is the peer ID attributed to assistant messages.
	AgentPeer string
	// CacheTTL is how long a fetched context stays fresh.
	CacheTTL time.Duration
	// MaxStaleFactor bounds how long an expired context may still be
	// served when a refresh fails, as a multiple of CacheTTL.
	MaxStaleFactor int
	// MaxMessageLength is the rune cap applied to outgoing content.
	MaxMessageLength int
	// ContextTokens is the summarization budget for context fetches.
	ContextTokens int
	// Clock drives cache expiry. If nil, clock.Real() is used.
	Clock clock.Clock
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Bridge is the helper layer between host lifecycle hooks and the
// remote memory service. It owns lazy per-session initialization,
// message validation and deduplication, and the context cache. Every
// failure is logged and returned as an ordinary error; nothing here
// panics on remote misbehavior, and message content never outlives
// the call that carried it — only digests and derived context stick
// around.
type Bridge struct {
	client           *honcho.Client
	user             string
	agentPeer        string
	maxMessageLength int
	contextTokens    int
	logger           *slog.Logger
	cache            *contextCache

	mu          sync.Mutex
	initialized map[string]bool
	lastDigest  map[string]fingerprint
}

// New creates a Bridge around an existing client.
func New(cfg Config) (*Bridge, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("bridge: Client is required")
	}

	user := cfg.User
	if user == "" {
		user = config.DefaultUser
	}
	agentPeer := cfg.AgentPeer
	if agentPeer == "" {
		agentPeer = config.DefaultAgentPeer
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = config.DefaultCacheTTL
	}
	maxStaleFactor := cfg.MaxStaleFactor
	if maxStaleFactor < 1 {
		maxStaleFactor = config.DefaultMaxStaleFactor
	}
	maxMessageLength := cfg.MaxMessageLength
	if maxMessageLength <= 0 {
		maxMessageLength = config.DefaultMaxMessageLength
	}
	contextTokens := cfg.ContextTokens
	if contextTokens < 1 {
		contextTokens = config.DefaultContextTokens
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Bridge{
		client:           cfg.Client,
		user:             user,
		agentPeer:        agentPeer,
		maxMessageLength: maxMessageLength,
		contextTokens:    contextTokens,
		logger:           logger,
		cache:            newContextCache(clk, logger, cacheTTL, maxStaleFactor),
		initialized:      make(map[string]bool),
		lastDigest:       make(map[string]fingerprint),
	}, nil
}

// Configured reports whether the credential source currently yields an
// API key. When false, every operation degrades to a no-op error and
// the host behaves as if the integration were absent.
func (b *Bridge) Configured() bool {
	return b.client.Configured()
}

// sessionRef derives the remote session identifier for a host chat.
// The prefix keeps host chat IDs from colliding with sessions other
// tooling may create in the same workspace.
func sessionRef(chatID string) (string, error) {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return "", &ValidationError{Field: "chat ID", Reason: "empty"}
	}
	return "chat-" + chatID, nil
}

// EnsureSession lazily initializes the remote session for a chat:
// get-or-create the session, then the two peers, then join them. Peer
// setup failures are tolerated — the service attributes messages by
// peer ID on append and creates peers as needed — but a session
// creation failure aborts, and the next call retries from scratch.
func (b *Bridge) EnsureSession(ctx context.Context, chatID string) error {
	ref, err := sessionRef(chatID)
	if err != nil {
		return err
	}
	return b.ensureSessionRef(ctx, ref)
}

func (b *Bridge) ensureSessionRef(ctx context.Context, ref string) error {
	b.mu.Lock()
	done := b.initialized[ref]
	b.mu.Unlock()
	if done {
		return nil
	}

	if !b.client.Configured() {
		return honcho.ErrNoCredential
	}

	if _, err := b.client.EnsureSession(ctx, ref); err != nil {
		b.logger.Error("memory session init failed", "session", ref, "error", err)
		return err
	}

	if _, err := b.client.EnsurePeer(ctx, b.user); err != nil {
		b.logger.Debug("user peer setup skipped", "peer", b.user, "error", err)
	}
	if _, err := b.client.EnsurePeer(ctx, b.agentPeer); err != nil {
		b.logger.Debug("agent peer setup skipped", "peer", b.agentPeer, "error", err)
	}
	if err := b.client.AddSessionPeers(ctx, ref, b.user, b.agentPeer); err != nil {
		b.logger.Debug("session peer join skipped", "session", ref, "error", err)
	}

	b.mu.Lock()
	b.initialized[ref] = true
	b.mu.Unlock()

	b.logger.Info("memory session initialised", "session", ref)
	return nil
}

// SyncMessage validates one message and appends it to the chat's
// remote session. The role must normalize to "user" or "assistant";
// content is trimmed and capped at the configured rune length before
// it leaves the validator. A message identical to the last one pushed
// for the session is silently suppressed, so a hook that fires twice
// for the same turn does not double-append.
func (b *Bridge) SyncMessage(ctx context.Context, chatID, rawRole, rawContent string) error {
	role, err := normalizeRole(rawRole)
	if err != nil {
		b.logger.Warn("message rejected", "error", err)
		return err
	}
	content, err := normalizeContent(rawContent, b.maxMessageLength)
	if err != nil {
		b.logger.Warn("message rejected", "role", string(role), "error", err)
		return err
	}
	ref, err := sessionRef(chatID)
	if err != nil {
		b.logger.Warn("message rejected", "role", string(role), "error", err)
		return err
	}

	if err := b.ensureSessionRef(ctx, ref); err != nil {
		return err
	}

	digest := fingerprintMessage(ref, role, content)
	b.mu.Lock()
	last, seen := b.lastDigest[ref]
	b.mu.Unlock()
	if seen && last == digest {
		b.logger.Debug("duplicate message suppressed", "session", ref, "digest", digest)
		return nil
	}

	peerID := b.agentPeer
	if role == RoleUser {
		peerID = b.user
	}

	_, err = b.client.AddMessages(ctx, ref, honcho.NewMessage{PeerID: peerID, Content: content})
	if err != nil {
		b.logger.Error("message sync failed", "session", ref, "role", string(role), "error", err)
		return err
	}

	b.mu.Lock()
	b.lastDigest[ref] = digest
	b.mu.Unlock()

	b.logger.Debug("message synced",
		"session", ref,
		"role", string(role),
		"chars", utf8.RuneCountInString(content),
		"preview", preview(content),
	)
	return nil
}

// UserContext returns the derived context text for a chat, served
// from the cache when fresh. tokens is the summarization budget;
// values below 1 fall back to the configured default. An empty text
// with a nil error means the service has nothing for this session
// yet.
func (b *Bridge) UserContext(ctx context.Context, chatID string, tokens int) (string, error) {
	if tokens < 1 {
		tokens = b.contextTokens
	}
	ref, err := sessionRef(chatID)
	if err != nil {
		return "", err
	}
	if err := b.ensureSessionRef(ctx, ref); err != nil {
		return "", err
	}

	return b.cache.getOrFetch(ref, func() (string, error) {
		sessionContext, err := b.client.SessionContext(ctx, ref, honcho.ContextOptions{
			Tokens:  tokens,
			Summary: true,
		})
		if err != nil {
			return "", err
		}
		return sessionContext.Text(), nil
	})
}

// PromptFragment returns the system-prompt fragment for a chat: the
// remembered user context wrapped in the injection template, or the
// empty string when there is no context or any step failed. This is
// the one operation that absorbs its own errors — prompt assembly
// must never see a failure.
func (b *Bridge) PromptFragment(ctx context.Context, chatID string) string {
	text, err := b.UserContext(ctx, chatID, b.contextTokens)
	if err != nil {
		if !errors.Is(err, honcho.ErrNoCredential) {
			b.logger.Debug("context unavailable for prompt", "chat", chatID, "error", err)
		}
		return ""
	}
	return renderPromptFragment(text)
}

// InvalidateContext drops the cached context for one chat. The next
// UserContext call fetches fresh.
func (b *Bridge) InvalidateContext(chatID string) {
	ref, err := sessionRef(chatID)
	if err != nil {
		return
	}
	b.cache.invalidate(ref)
}

// InvalidateAll empties the context cache for every chat.
func (b *Bridge) InvalidateAll() {
	b.cache.invalidateAll()
}
