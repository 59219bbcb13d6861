// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/agentzero-community/honcho-bridge/lib/memoryui"
)

func contextCommand() *Command {
	return &Command{
		Name:    "context",
		Summary: "Show the remembered context for a chat",
		Description: `context fetches what the service would hand the agent for a chat:
the derived summary when one exists, the peer representation
otherwise. The fetch goes through the same bridge path the system
prompt hook uses, session setup included.

Markdown is rendered when stdout is a terminal; pipes get the raw
text. Nothing is printed when the chat has no context yet, and the
exit code is 3 so scripts can tell "empty" from "failed".`,
		Flags: func() *pflag.FlagSet {
			flags := commonFlags("context")
			flags.String("chat", "", "chat context to inspect (required)")
			flags.Int("tokens", 0, "summarization budget (default: context.tokens from config)")
			flags.Bool("raw", false, "print raw markdown even on a terminal")
			return flags
		},
		Examples: []Example{
			{Description: "Show what the agent would be told", Command: "honchoctl context --chat demo"},
			{Description: "Fetch with a larger budget", Command: "honchoctl context --chat demo --tokens 1500"},
		},
		Run: runContext,
	}
}

func runContext(flags *pflag.FlagSet, args []string) error {
	chatID, _ := flags.GetString("chat")
	if chatID == "" {
		return fmt.Errorf("--chat is required")
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := commandLogger(flags)
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	b, err := newBridge(cfg, client, logger)
	if err != nil {
		return err
	}
	if !b.Configured() {
		return fmt.Errorf("no credential configured: set $HONCHO_API_KEY or run 'honchoctl seal'")
	}

	tokens, _ := flags.GetInt("tokens")

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	text, err := b.UserContext(ctx, chatID, tokens)
	if err != nil {
		return err
	}

	if text == "" {
		fmt.Fprintf(os.Stderr, "chat %s has no remembered context yet\n", chatID)
		return &ExitError{Code: 3}
	}

	raw, _ := flags.GetBool("raw")
	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || width <= 0 {
			width = 80
		}
		fmt.Println(memoryui.Render(text, memoryui.DefaultTheme, width))
		return nil
	}

	fmt.Println(text)
	return nil
}
