// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package memoryui

import (
	"sort"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// MatchResult is the outcome of fuzzy-matching a pattern against one
// session. Score is zero when the pattern did not match; Positions
// are the matched rune indices, ascending, for highlighting.
type MatchResult struct {
	Score     int
	Positions []int
}

// NewSlab allocates the scratch memory fzf's matcher reuses between
// calls. One slab per match loop; never share across goroutines.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}

// fuzzyMatch scores pattern against text with fzf's V2 algorithm.
// Matching is case-insensitive: the matcher folds the text and the
// pattern is lowercased here, so callers can pass user input as
// typed. A nil slab is allowed but allocates per call.
func fuzzyMatch(text string, pattern []rune, slab *util.Slab) MatchResult {
	if len(pattern) == 0 {
		return MatchResult{}
	}

	lowered := make([]rune, len(pattern))
	for i, r := range pattern {
		lowered[i] = unicode.ToLower(r)
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return MatchResult{}
	}

	match := MatchResult{Score: result.Score}
	if positions != nil {
		match.Positions = *positions
		sort.Ints(match.Positions)
	}
	return match
}
