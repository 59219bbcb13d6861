// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package memoryui

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/agentzero-community/honcho-bridge/honcho"
)

func testStyler() *lipgloss.Renderer {
	styler := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styler.SetColorProfile(termenv.ANSI256)
	return styler
}

func TestTrimPositionsDropsBeyondLimit(t *testing.T) {
	got := trimPositions([]int{0, 3, 7, 12}, 8)
	want := []int{0, 3, 7}
	if len(got) != len(want) {
		t.Fatalf("trimPositions returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trimPositions returned %v, want %v", got, want)
		}
	}
}

func TestTrimPositionsEmpty(t *testing.T) {
	if got := trimPositions(nil, 10); got != nil {
		t.Fatalf("trimPositions(nil) = %v, want nil", got)
	}
}

func TestTrimPositionsDoesNotMutateInput(t *testing.T) {
	positions := []int{1, 2, 9}
	trimPositions(positions, 3)
	if positions[2] != 9 {
		t.Fatalf("input slice mutated: %v", positions)
	}
}

func TestHighlightRunesPreservesText(t *testing.T) {
	styler := testStyler()
	base := styler.NewStyle()
	highlight := styler.NewStyle().Background(lipgloss.Color("22"))

	rendered := highlightRunes("chat-alpha", []int{0, 1, 5, 6}, base, highlight)
	if got := ansi.Strip(rendered); got != "chat-alpha" {
		t.Fatalf("highlighted text = %q, want %q", got, "chat-alpha")
	}
}

func TestHighlightRunesStylesMatchedRunes(t *testing.T) {
	styler := testStyler()
	base := styler.NewStyle()
	highlight := styler.NewStyle().Background(lipgloss.Color("22"))

	plain := highlightRunes("chat-alpha", nil, base, highlight)
	marked := highlightRunes("chat-alpha", []int{2, 3}, base, highlight)
	if plain == marked {
		t.Fatal("expected highlighted rendering to differ from unhighlighted")
	}
}

func TestHighlightRunesHandlesMultibyte(t *testing.T) {
	styler := testStyler()
	base := styler.NewStyle()
	highlight := styler.NewStyle().Background(lipgloss.Color("22"))

	// Position 1 lands on the two-byte é. Splitting must happen on
	// rune boundaries, not bytes.
	rendered := highlightRunes("héllo", []int{1}, base, highlight)
	if got := ansi.Strip(rendered); got != "héllo" {
		t.Fatalf("highlighted text = %q, want %q", got, "héllo")
	}
}

func testRow(id string, active bool) Row {
	return Row{Session: honcho.Session{
		ID:        id,
		IsActive:  active,
		CreatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}}
}

func TestRenderRowPadsToWidth(t *testing.T) {
	styler := testStyler()
	for _, width := range []int{24, 40, 64} {
		line := renderRow(testRow("chat-alpha", false), false, width, DefaultTheme, styler)
		if got := ansi.StringWidth(line); got != width {
			t.Fatalf("row width = %d, want %d", got, width)
		}
	}
}

func TestRenderRowShowsActivityMarker(t *testing.T) {
	styler := testStyler()
	theme := DefaultTheme

	active := ansi.Strip(renderRow(testRow("chat-alpha", true), false, 40, theme, styler))
	if !strings.Contains(active, "●") {
		t.Fatalf("active row missing marker: %q", active)
	}
	idle := ansi.Strip(renderRow(testRow("chat-alpha", false), false, 40, theme, styler))
	if !strings.Contains(idle, "○") {
		t.Fatalf("idle row missing marker: %q", idle)
	}
}

func TestRenderRowShowsCreationDate(t *testing.T) {
	styler := testStyler()
	line := ansi.Strip(renderRow(testRow("chat-alpha", false), false, 40, DefaultTheme, styler))
	if !strings.Contains(line, "2026-03-14") {
		t.Fatalf("row missing creation date: %q", line)
	}
}

func TestRenderRowTruncatesLongID(t *testing.T) {
	styler := testStyler()
	long := "chat-" + strings.Repeat("x", 60)
	line := ansi.Strip(renderRow(testRow(long, false), false, 30, DefaultTheme, styler))
	if !strings.Contains(line, "…") {
		t.Fatalf("long ID not truncated: %q", line)
	}
	if strings.Contains(line, long) {
		t.Fatalf("row contains untruncated ID: %q", line)
	}
	if got := ansi.StringWidth(line); got != 30 {
		t.Fatalf("truncated row width = %d, want 30", got)
	}
}

func TestRenderRowSelectionChangesStyle(t *testing.T) {
	styler := testStyler()
	theme := DefaultTheme

	plain := renderRow(testRow("chat-alpha", false), false, 40, theme, styler)
	selected := renderRow(testRow("chat-alpha", false), true, 40, theme, styler)
	if plain == selected {
		t.Fatal("expected selected row to render differently")
	}
	if ansi.Strip(plain) != ansi.Strip(selected) {
		t.Fatalf("selection changed content: %q vs %q", ansi.Strip(plain), ansi.Strip(selected))
	}
}

func TestRenderRowMatchPositionsBeyondTruncation(t *testing.T) {
	styler := testStyler()
	row := testRow("chat-"+strings.Repeat("x", 60), false)
	row.Positions = []int{0, 1, 50, 58}

	// Positions past the ellipsis are dropped rather than panicking.
	line := renderRow(row, false, 30, DefaultTheme, styler)
	if got := ansi.StringWidth(line); got != 30 {
		t.Fatalf("row width = %d, want 30", got)
	}
}
