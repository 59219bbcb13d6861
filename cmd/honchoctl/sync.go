// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

func syncCommand() *Command {
	return &Command{
		Name:    "sync",
		Summary: "Record one message into a chat's memory",
		Usage:   "honchoctl sync --chat ID --role user|assistant [flags] [MESSAGE]",
		Description: `sync pushes a single message through the same pipeline the embedded
extensions use: validation, truncation, deduplication, and lazy
session setup all apply. Chat ID C maps to remote session chat-C,
exactly as it does for the agent.

The message is the positional argument, or stdin when none is given,
so transcripts can be replayed line by line.`,
		Flags: func() *pflag.FlagSet {
			flags := commonFlags("sync")
			flags.String("chat", "", "chat context to record into (required)")
			flags.String("role", "user", "author of the message: user or assistant")
			return flags
		},
		Examples: []Example{
			{Description: "Record a user message", Command: `honchoctl sync --chat demo --role user "I prefer dark mode"`},
			{Description: "Record an assistant reply from a file", Command: "honchoctl sync --chat demo --role assistant < reply.txt"},
		},
		Run: runSync,
	}
}

func runSync(flags *pflag.FlagSet, args []string) error {
	chatID, _ := flags.GetString("chat")
	if chatID == "" {
		return fmt.Errorf("--chat is required")
	}
	role, _ := flags.GetString("role")

	content, err := messageContent(args)
	if err != nil {
		return err
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

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if err := b.SyncMessage(ctx, chatID, role, content); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "recorded %s message in chat %s\n", role, chatID)
	return nil
}

// messageContent takes the message from the positional argument, or
// from stdin when none is given.
func messageContent(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading message from stdin: %w", err)
	}
	content := strings.TrimRight(string(raw), "\n")
	if content == "" {
		return "", fmt.Errorf("empty message: pass it as an argument or on stdin")
	}
	return content, nil
}
