// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/agentzero-community/honcho-bridge/lib/secrets"
)

func statusCommand() *Command {
	return &Command{
		Name:    "status",
		Summary: "Show the effective configuration and credential state",
		Description: `status resolves the configuration the bridge would run with and
reports where the API key comes from, without printing any part of it.
With --probe it also performs one authenticated call to verify the
workspace is reachable.`,
		Flags: func() *pflag.FlagSet {
			flags := commonFlags("status")
			flags.Bool("probe", false, "verify connectivity with one authenticated call")
			return flags
		},
		Examples: []Example{
			{Description: "Inspect the resolved configuration", Command: "honchoctl status"},
			{Description: "Also verify the credential against the service", Command: "honchoctl status --probe"},
		},
		Run: runStatus,
	}
}

func runStatus(flags *pflag.FlagSet, args []string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "base URL:\t%s\n", cfg.BaseURL)
	fmt.Fprintf(tw, "workspace:\t%s\n", cfg.Workspace)
	fmt.Fprintf(tw, "user peer:\t%s\n", cfg.User)
	fmt.Fprintf(tw, "agent peer:\t%s\n", cfg.AgentPeer)
	fmt.Fprintf(tw, "cache TTL:\t%s\n", cfg.Cache.TTL.Std())
	fmt.Fprintf(tw, "retry:\t%d attempts, %s base delay\n", cfg.Retry.Attempts, cfg.Retry.BaseDelay.Std())
	fmt.Fprintf(tw, "message cap:\t%d runes\n", cfg.Message.MaxLength)
	fmt.Fprintf(tw, "credential:\t%s\n", credentialState(cfg.Secrets.SealedPath, cfg.Secrets.IdentityPath))
	tw.Flush()

	probe, _ := flags.GetBool("probe")
	if !probe {
		return nil
	}

	logger := commandLogger(flags)
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	if !client.Configured() {
		fmt.Fprintln(os.Stdout, "probe: skipped, no credential configured")
		return &ExitError{Code: 2}
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if _, err := client.EnsureWorkspace(ctx); err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	fmt.Fprintln(os.Stdout, "probe: ok")
	return nil
}

// credentialState names where the API key would come from. The key
// itself is never read into the report.
func credentialState(sealedPath, identityPath string) string {
	if os.Getenv(secrets.EnvAPIKey) != "" {
		return "environment ($" + secrets.EnvAPIKey + ")"
	}
	if sealedPath == "" {
		return "not configured"
	}

	source := secrets.DefaultChain(sealedPath, identityPath)
	if key, ok := source.APIKey(); ok {
		key.Close()
		return fmt.Sprintf("sealed file (%s)", sealedPath)
	}
	return fmt.Sprintf("sealed file (%s, unreadable)", sealedPath)
}
