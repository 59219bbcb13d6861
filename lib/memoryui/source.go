// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package memoryui

import (
	"context"

	"github.com/agentzero-community/honcho-bridge/honcho"
)

// Source supplies the data the browser displays. The model calls it
// from bubbletea commands on background goroutines; implementations
// may block on the network but must honor the context deadline.
type Source interface {
	// Sessions returns the workspace's sessions in display order.
	Sessions(ctx context.Context) ([]honcho.Session, error)

	// Context returns the remembered context for one session. An
	// empty string means the service knows nothing about it yet.
	Context(ctx context.Context, sessionID string) (string, error)
}
