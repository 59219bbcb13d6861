// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package honcho

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// EnsureSession creates a session in the workspace if it does not
// exist and returns it either way. Idempotent.
func (c *Client) EnsureSession(ctx context.Context, sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, fmt.Errorf("honcho: session ID is required")
	}

	path := fmt.Sprintf("/workspaces/%s/sessions", url.PathEscape(c.workspace))
	var session Session
	err := c.withRetry(ctx, "ensure session", func() error {
		body, err := c.doRequest(ctx, http.MethodPost, path, map[string]string{"id": sessionID})
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &session)
	})
	if err != nil {
		return Session{}, fmt.Errorf("honcho: ensure session %q failed: %w", sessionID, err)
	}
	return session, nil
}

// AddSessionPeers joins peers to a session. Joining a peer that is
// already in the session is not an error on the service side, but
// callers that cannot distinguish tolerate failures here anyway —
// message appends carry the authoritative peer attribution.
func (c *Client) AddSessionPeers(ctx context.Context, sessionID string, peerIDs ...string) error {
	if sessionID == "" {
		return fmt.Errorf("honcho: session ID is required")
	}
	if len(peerIDs) == 0 {
		return fmt.Errorf("honcho: at least one peer ID is required")
	}

	path := fmt.Sprintf("/workspaces/%s/sessions/%s/peers",
		url.PathEscape(c.workspace),
		url.PathEscape(sessionID),
	)
	peers := make([]map[string]string, 0, len(peerIDs))
	for _, peerID := range peerIDs {
		peers = append(peers, map[string]string{"id": peerID})
	}

	err := c.withRetry(ctx, "add session peers", func() error {
		_, err := c.doRequest(ctx, http.MethodPost, path, peers)
		return err
	})
	if err != nil {
		return fmt.Errorf("honcho: add peers to session %q failed: %w", sessionID, err)
	}
	return nil
}

// AddMessages appends message records to a session. The whole batch
// retries on transient failure; the service deduplicates nothing, so
// callers that must not double-append should send one message per
// call and suppress duplicates themselves.
func (c *Client) AddMessages(ctx context.Context, sessionID string, messages ...NewMessage) ([]Message, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("honcho: session ID is required")
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("honcho: at least one message is required")
	}

	path := fmt.Sprintf("/workspaces/%s/sessions/%s/messages",
		url.PathEscape(c.workspace),
		url.PathEscape(sessionID),
	)
	requestBody := map[string]any{"messages": messages}

	var created []Message
	err := c.withRetry(ctx, "add messages", func() error {
		body, err := c.doRequest(ctx, http.MethodPost, path, requestBody)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &created)
	})
	if err != nil {
		return nil, fmt.Errorf("honcho: add messages to session %q failed: %w", sessionID, err)
	}
	return created, nil
}

// SessionContext fetches the service's derived context for a session.
func (c *Client) SessionContext(ctx context.Context, sessionID string, options ContextOptions) (SessionContext, error) {
	if sessionID == "" {
		return SessionContext{}, fmt.Errorf("honcho: session ID is required")
	}

	path := fmt.Sprintf("/workspaces/%s/sessions/%s/context",
		url.PathEscape(c.workspace),
		url.PathEscape(sessionID),
	)
	query := url.Values{}
	if options.Tokens > 0 {
		query.Set("tokens", strconv.Itoa(options.Tokens))
	}
	if options.Summary {
		query.Set("summary", "true")
	}

	var sessionContext SessionContext
	err := c.withRetry(ctx, "session context", func() error {
		body, err := c.doRequest(ctx, http.MethodGet, path, nil, query)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &sessionContext)
	})
	if err != nil {
		return SessionContext{}, fmt.Errorf("honcho: context for session %q failed: %w", sessionID, err)
	}
	return sessionContext, nil
}

// Sessions lists the workspace's sessions, one page at a time. Page
// numbering starts at 1.
func (c *Client) Sessions(ctx context.Context, page, size int) (SessionPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 50
	}

	path := fmt.Sprintf("/workspaces/%s/sessions/list", url.PathEscape(c.workspace))
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var sessionPage SessionPage
	err := c.withRetry(ctx, "list sessions", func() error {
		body, err := c.doRequest(ctx, http.MethodPost, path, map[string]any{}, query)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &sessionPage)
	})
	if err != nil {
		return SessionPage{}, fmt.Errorf("honcho: list sessions failed: %w", err)
	}
	return sessionPage, nil
}
