// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

// Command honchoctl operates the Honcho memory bridge from the shell:
// sealing credentials, checking connectivity, inspecting sessions and
// remembered context, and feeding messages through the same pipeline
// the embedded extensions use.
package main

import (
	"fmt"
	"os"
	"runtime/debug"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// --version short-circuits before command dispatch so it works
	// regardless of position or subcommand.
	for _, arg := range args {
		if arg == "--version" {
			fmt.Println("honchoctl", version())
			return nil
		}
	}

	return rootCommand().Execute(args)
}

func rootCommand() *Command {
	return &Command{
		Name:    "honchoctl",
		Summary: "Operate the Honcho conversational-memory bridge",
		Description: `honchoctl manages the bridge between an Agent Zero deployment and
the Honcho memory service. It shares its configuration and credential
sources with the embedded extensions, so what it reports is what the
agent sees.`,
		Subcommands: []*Command{
			statusCommand(),
			sealCommand(),
			sessionsCommand(),
			syncCommand(),
			contextCommand(),
			browseCommand(),
		},
	}
}

// version reports the module version stamped by the Go toolchain, or
// "devel" for a plain working-tree build.
func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "devel"
	}
	return info.Main.Version
}
