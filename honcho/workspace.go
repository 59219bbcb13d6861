// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package honcho

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// EnsureWorkspace creates the client's workspace if it does not exist
// and returns it either way. The service treats workspace creation as
// get-or-create, so the call is idempotent.
func (c *Client) EnsureWorkspace(ctx context.Context) (Workspace, error) {
	var workspace Workspace
	err := c.withRetry(ctx, "ensure workspace", func() error {
		body, err := c.doRequest(ctx, http.MethodPost, "/workspaces", map[string]string{"id": c.workspace})
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &workspace)
	})
	if err != nil {
		return Workspace{}, fmt.Errorf("honcho: ensure workspace %q failed: %w", c.workspace, err)
	}
	return workspace, nil
}

// EnsurePeer creates a peer in the workspace if it does not exist and
// returns it either way. Idempotent.
func (c *Client) EnsurePeer(ctx context.Context, peerID string) (Peer, error) {
	if peerID == "" {
		return Peer{}, fmt.Errorf("honcho: peer ID is required")
	}

	path := fmt.Sprintf("/workspaces/%s/peers", url.PathEscape(c.workspace))
	var peer Peer
	err := c.withRetry(ctx, "ensure peer", func() error {
		body, err := c.doRequest(ctx, http.MethodPost, path, map[string]string{"id": peerID})
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &peer)
	})
	if err != nil {
		return Peer{}, fmt.Errorf("honcho: ensure peer %q failed: %w", peerID, err)
	}
	return peer, nil
}
