// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node of the honchoctl command tree. Leaf commands
// set Run; group commands set Subcommands and leave Run nil, in which
// case a bare invocation prints help.
type Command struct {
	// Name is the bare command word, e.g. "sessions".
	Name string

	// Summary is the one-line description shown in command listings
	// and at the top of help output.
	Summary string

	// Description is the long help body. Optional.
	Description string

	// Usage overrides the derived usage line. Optional.
	Usage string

	// Examples are printed at the end of help output.
	Examples []Example

	// Flags builds the command's flag set. Called once per execution
	// so repeated Execute calls never share parse state. Optional.
	Flags func() *pflag.FlagSet

	// Subcommands are dispatched by Name before flag parsing.
	Subcommands []*Command

	// Run executes the command. flags is the parsed flag set (empty
	// when Flags is nil), args the remaining positional arguments.
	Run func(flags *pflag.FlagSet, args []string) error

	parent *Command
}

// Example is a worked invocation shown in help output.
type Example struct {
	Description string
	Command     string
}

// Execute dispatches to a subcommand or parses flags and runs this
// command. Unknown commands and misspelled flags produce a suggestion
// when something plausible is within edit distance.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpArg(args[0]) {
		c.PrintHelp(os.Stdout)
		return nil
	}

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		if sub := c.subcommand(args[0]); sub != nil {
			sub.parent = c
			return sub.Execute(args[1:])
		}
		if c.Run == nil {
			if suggestion := suggestCommand(args[0], c.Subcommands); suggestion != "" {
				return fmt.Errorf("unknown command %q for %q\n\nDid you mean %q?", args[0], c.path(), suggestion)
			}
			return fmt.Errorf("unknown command %q for %q\nRun '%s --help' for usage", args[0], c.path(), c.path())
		}
	}

	if c.Run == nil {
		c.PrintHelp(os.Stdout)
		return nil
	}

	flagSet := c.flagSet()
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			c.PrintHelp(os.Stdout)
			return nil
		}
		if suggestion := suggestFlag(args, flagSet); suggestion != "" {
			return fmt.Errorf("%w\n\nDid you mean %q?", err, suggestion)
		}
		return err
	}

	return c.Run(flagSet, flagSet.Args())
}

func (c *Command) subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

// flagSet returns the command's flag set, or an empty one so Execute
// never branches on a nil set.
func (c *Command) flagSet() *pflag.FlagSet {
	if c.Flags != nil {
		return c.Flags()
	}
	return pflag.NewFlagSet(c.Name, pflag.ContinueOnError)
}

// path is the full command path from the root, e.g. "honchoctl sync".
func (c *Command) path() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.path() + " " + c.Name
}

func (c *Command) usageLine() string {
	if c.Usage != "" {
		return c.Usage
	}
	line := c.path()
	if len(c.Subcommands) > 0 {
		line += " <command>"
	}
	if c.Flags != nil {
		line += " [flags]"
	}
	return line
}

// PrintHelp writes the full help text for the command.
func (c *Command) PrintHelp(w io.Writer) {
	if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", c.usageLine())

	if c.Description != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(c.Description))
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	if c.Flags != nil {
		fmt.Fprintf(w, "\nFlags:\n%s", c.Flags().FlagUsages())
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for details on a command.\n", c.path())
	}
}

func isHelpArg(arg string) bool {
	return arg == "help" || arg == "--help" || arg == "-h"
}
