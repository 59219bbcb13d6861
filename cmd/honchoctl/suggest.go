// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"

	"github.com/spf13/pflag"
)

// suggestDistance is the largest edit distance still offered as a
// suggestion. Anything farther is more likely noise than a typo.
const suggestDistance = 3

// suggestCommand returns the subcommand name closest to input, or ""
// when nothing is close enough to be a plausible typo.
func suggestCommand(input string, commands []*Command) string {
	best := ""
	bestDistance := suggestDistance + 1
	for _, command := range commands {
		if distance := levenshtein(input, command.Name); distance < bestDistance {
			best = command.Name
			bestDistance = distance
		}
	}
	return best
}

// suggestFlag finds the first long flag in args that the flag set does
// not define and returns the closest defined flag, "--" prefix
// included.
func suggestFlag(args []string, flags *pflag.FlagSet) string {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") || arg == "--" {
			continue
		}
		name := strings.TrimPrefix(arg, "--")
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		if name == "" || flags.Lookup(name) != nil {
			continue
		}

		best := ""
		bestDistance := suggestDistance + 1
		flags.VisitAll(func(flag *pflag.Flag) {
			if distance := levenshtein(name, flag.Name); distance < bestDistance {
				best = flag.Name
				bestDistance = distance
			}
		})
		if best != "" {
			return "--" + best
		}
	}
	return ""
}

// levenshtein is the edit distance between two strings, computed over
// runes with a rolling single-row table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		previous := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			current := row[j]

			replace := previous + cost
			insert := row[j-1] + 1
			remove := row[j] + 1

			smallest := replace
			if insert < smallest {
				smallest = insert
			}
			if remove < smallest {
				smallest = remove
			}
			row[j] = smallest
			previous = current
		}
	}
	return row[len(rb)]
}
