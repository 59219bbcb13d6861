// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package memoryui

import (
	"sort"
	"testing"
)

func TestFuzzyMatchSubstring(t *testing.T) {
	slab := NewSlab()

	result := fuzzyMatch("session-planning-2026", []rune("plan"), slab)
	if result.Score <= 0 {
		t.Fatalf("expected positive score for substring match, got %d", result.Score)
	}
	if len(result.Positions) != 4 {
		t.Fatalf("expected 4 matched positions, got %v", result.Positions)
	}
	if !sort.IntsAreSorted(result.Positions) {
		t.Errorf("positions not sorted: %v", result.Positions)
	}
}

func TestFuzzyMatchNonContiguous(t *testing.T) {
	slab := NewSlab()

	// p, l, k appear in order but not adjacent.
	result := fuzzyMatch("peer-linking", []rune("plk"), slab)
	if result.Score <= 0 {
		t.Fatalf("expected non-contiguous match, got score %d", result.Score)
	}
	if len(result.Positions) != 3 {
		t.Fatalf("expected 3 matched positions, got %v", result.Positions)
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	slab := NewSlab()

	lower := fuzzyMatch("DAILY-STANDUP", []rune("daily"), slab)
	if lower.Score <= 0 {
		t.Errorf("lowercase pattern should match uppercase text, got score %d", lower.Score)
	}

	upper := fuzzyMatch("daily-standup", []rune("DAILY"), slab)
	if upper.Score <= 0 {
		t.Errorf("uppercase pattern should match lowercase text, got score %d", upper.Score)
	}
}

func TestFuzzyMatchNoMatch(t *testing.T) {
	slab := NewSlab()

	result := fuzzyMatch("session-alpha", []rune("zzz"), slab)
	if result.Score != 0 {
		t.Errorf("expected zero score, got %d", result.Score)
	}
	if len(result.Positions) != 0 {
		t.Errorf("expected no positions, got %v", result.Positions)
	}
}

func TestFuzzyMatchEmptyPattern(t *testing.T) {
	slab := NewSlab()

	result := fuzzyMatch("anything", nil, slab)
	if result.Score != 0 || len(result.Positions) != 0 {
		t.Errorf("empty pattern should not match: %+v", result)
	}
}

func TestFuzzyMatchOrderRequired(t *testing.T) {
	slab := NewSlab()

	// Characters present but in the wrong order must not match.
	result := fuzzyMatch("abc", []rune("cba"), slab)
	if result.Score != 0 {
		t.Errorf("out-of-order pattern should not match, got score %d", result.Score)
	}
}
