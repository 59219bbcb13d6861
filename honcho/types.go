// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package honcho

import (
	"strings"
	"time"
)

// Workspace is the top-level container scoping peers and sessions.
type Workspace struct {
	ID        string         `json:"id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Peer is a participant in sessions: the human user or the agent.
type Peer struct {
	ID        string         `json:"id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Session is one conversation thread within a workspace.
type Session struct {
	ID        string         `json:"id"`
	IsActive  bool           `json:"is_active"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewMessage is a message record to append to a session.
type NewMessage struct {
	// PeerID names the author.
	PeerID string `json:"peer_id"`
	// Content is the message text.
	Content string `json:"content"`
}

// Message is a stored message as the service returns it.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	PeerID    string    `json:"peer_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionContext is the service's derived view of a session: a
// summary when one has been computed, a peer representation as the
// fallback, and optionally the recent raw messages.
type SessionContext struct {
	SessionID          string    `json:"session_id"`
	Summary            string    `json:"summary"`
	PeerRepresentation string    `json:"peer_representation"`
	Messages           []Message `json:"messages,omitempty"`
}

// Text returns the usable context text: the summary when present,
// else the peer representation, whitespace-trimmed. Empty means the
// service has nothing yet for this session.
func (c SessionContext) Text() string {
	if text := strings.TrimSpace(c.Summary); text != "" {
		return text
	}
	return strings.TrimSpace(c.PeerRepresentation)
}

// ContextOptions tunes a context fetch.
type ContextOptions struct {
	// Tokens is the summarization budget. Zero means the service
	// default.
	Tokens int
	// Summary requests summary computation rather than raw messages
	// only.
	Summary bool
}

// SessionPage is one page of a session listing.
type SessionPage struct {
	Items []Session `json:"items"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
	Total int       `json:"total"`
	Pages int       `json:"pages"`
}
