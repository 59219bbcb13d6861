// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package memoryui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// createdAtLayout is the date column format in the session list.
const createdAtLayout = "2006-01-02"

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// renderRow renders one session list row: activity marker, session ID
// with fuzzy-match highlighting, and a right-aligned creation date.
// The row is padded to exactly width cells so the selection
// background covers the full line.
func renderRow(row Row, selected bool, width int, theme Theme, styler *lipgloss.Renderer) string {
	base := styler.NewStyle().Foreground(theme.NormalText)
	if selected {
		base = base.Foreground(theme.SelectedForeground).Background(theme.SelectedBackground)
	}

	marker := "○"
	markerColor := theme.IdleSession
	if row.Session.IsActive {
		marker = "●"
		markerColor = theme.ActiveSession
	}
	markerStyle := base.Foreground(markerColor)

	date := ""
	if !row.Session.CreatedAt.IsZero() {
		date = row.Session.CreatedAt.Format(createdAtLayout)
	}

	// Layout: " M ID....padding DATE ". The ID column absorbs whatever
	// the fixed columns leave over.
	idWidth := width - 3 - len(createdAtLayout) - 2
	if idWidth < 4 {
		idWidth = 4
	}

	id := ansi.Truncate(row.Session.ID, idWidth, "…")
	idRunes := len([]rune(id))
	rendered := highlightRunes(id, trimPositions(row.Positions, idRunes), base, base.Background(theme.MatchBackground))

	pad := idWidth - lipgloss.Width(id)
	line := base.Render(" ") + markerStyle.Render(marker) + base.Render(" ") +
		rendered + base.Render(spaces(pad)+" ") +
		base.Foreground(theme.FaintText).Render(date) + base.Render(" ")
	return line
}

// trimPositions drops match positions that fall beyond the truncated
// ID (the ellipsis replaced them).
func trimPositions(positions []int, limit int) []int {
	if len(positions) == 0 {
		return nil
	}
	kept := positions[:0:0]
	for _, p := range positions {
		if p < limit {
			kept = append(kept, p)
		}
	}
	return kept
}

// highlightRunes renders text with the matched rune positions drawn
// in the highlight style and everything else in the base style.
// Positions must be ascending.
func highlightRunes(text string, positions []int, base, highlight lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}

	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}

	var out strings.Builder
	var run []rune
	runMatched := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runMatched {
			out.WriteString(highlight.Render(string(run)))
		} else {
			out.WriteString(base.Render(string(run)))
		}
		run = run[:0]
	}

	for i, r := range []rune(text) {
		if matched[i] != runMatched {
			flush()
			runMatched = matched[i]
		}
		run = append(run, r)
	}
	flush()
	return out.String()
}
