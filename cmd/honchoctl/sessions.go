// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/agentzero-community/honcho-bridge/honcho"
)

func sessionsCommand() *Command {
	return &Command{
		Name:    "sessions",
		Summary: "List the workspace's sessions",
		Description: `sessions lists the sessions the service holds for the configured
workspace, newest page first as the service orders them. Use --json
for machine-readable output.`,
		Flags: func() *pflag.FlagSet {
			flags := commonFlags("sessions")
			flags.Int("page", 1, "page to fetch (1-based)")
			flags.Int("size", 50, "sessions per page")
			flags.Bool("json", false, "emit JSON instead of a table")
			return flags
		},
		Examples: []Example{
			{Description: "List the first page", Command: "honchoctl sessions"},
			{Description: "Feed session IDs to a script", Command: "honchoctl sessions --json | jq -r '.items[].id'"},
		},
		Run: runSessions,
	}
}

func runSessions(flags *pflag.FlagSet, args []string) error {
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

	page, _ := flags.GetInt("page")
	size, _ := flags.GetInt("size")

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	sessionPage, err := client.Sessions(ctx, page, size)
	if err != nil {
		return err
	}

	if asJSON, _ := flags.GetBool("json"); asJSON {
		if sessionPage.Items == nil {
			sessionPage.Items = []honcho.Session{}
		}
		return writeJSON(os.Stdout, sessionPage)
	}

	if len(sessionPage.Items) == 0 {
		fmt.Println("no sessions")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tACTIVE\tCREATED")
	for _, session := range sessionPage.Items {
		active := ""
		if session.IsActive {
			active = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", session.ID, active, session.CreatedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()

	if sessionPage.Pages > 1 {
		fmt.Fprintf(os.Stderr, "page %d of %d (%d sessions total)\n",
			sessionPage.Page, sessionPage.Pages, sessionPage.Total)
	}
	return nil
}
