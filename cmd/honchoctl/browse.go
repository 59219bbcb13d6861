// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/agentzero-community/honcho-bridge/honcho"
	"github.com/agentzero-community/honcho-bridge/lib/memoryui"
)

// browsePageSize is the listing page size used while walking the
// workspace; browseSessionCap stops the walk on pathologically large
// workspaces.
const (
	browsePageSize   = 100
	browseSessionCap = 2000
)

func browseCommand() *Command {
	return &Command{
		Name:    "browse",
		Summary: "Browse sessions and remembered context interactively",
		Description: `browse opens a full-screen two-pane browser: sessions on the left,
the selected session's remembered context rendered on the right.
Type / to fuzzy-filter sessions, enter to load context, r to refresh,
q to quit.`,
		Flags: func() *pflag.FlagSet {
			flags := commonFlags("browse")
			flags.Int("tokens", 0, "summarization budget (default: context.tokens from config)")
			return flags
		},
		Examples: []Example{
			{Description: "Open the browser", Command: "honchoctl browse"},
		},
		Run: runBrowse,
	}
}

func runBrowse(flags *pflag.FlagSet, args []string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := commandLogger(flags)
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	if !client.Configured() {
		return fmt.Errorf("no credential configured: set $HONCHO_API_KEY or run 'honchoctl seal'")
	}

	tokens, _ := flags.GetInt("tokens")
	if tokens <= 0 {
		tokens = cfg.Context.Tokens
	}

	source := &serviceSource{client: client, tokens: tokens}
	model := memoryui.NewModel(source, cfg.Workspace)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}

// serviceSource adapts the workspace client to the browser's Source
// interface.
type serviceSource struct {
	client *honcho.Client
	tokens int
}

func (s *serviceSource) Sessions(ctx context.Context) ([]honcho.Session, error) {
	var all []honcho.Session
	for page := 1; ; page++ {
		result, err := s.client.Sessions(ctx, page, browsePageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)
		if page >= result.Pages || len(result.Items) == 0 || len(all) >= browseSessionCap {
			break
		}
	}
	return all, nil
}

func (s *serviceSource) Context(ctx context.Context, sessionID string) (string, error) {
	sessionContext, err := s.client.SessionContext(ctx, sessionID, honcho.ContextOptions{
		Tokens:  s.tokens,
		Summary: true,
	})
	if err != nil {
		return "", err
	}
	return sessionContext.Text(), nil
}
