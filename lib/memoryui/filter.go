// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package memoryui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/agentzero-community/honcho-bridge/honcho"
)

// FilterModel holds the state of the session filter input. The model
// routes keystrokes here while the filter has focus.
type FilterModel struct {
	// Input is the current query text.
	Input string

	// Active is true while the filter input has keyboard focus.
	Active bool
}

// HandleRune appends a typed character to the query.
func (filter *FilterModel) HandleRune(r rune) {
	filter.Input += string(r)
}

// HandleBackspace removes the last character. Returns false when the
// query was already empty.
func (filter *FilterModel) HandleBackspace() bool {
	if filter.Input == "" {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear empties the query without leaving filter mode.
func (filter *FilterModel) Clear() {
	filter.Input = ""
}

// Row is one entry of the filtered session list: the session plus its
// match score and the matched rune positions within the session ID.
type Row struct {
	Session   honcho.Session
	Score     int
	Positions []int
}

// Apply narrows sessions to those matching the current query, best
// score first. An empty query keeps every session in source order
// with zero scores. Ties keep source order.
func (filter *FilterModel) Apply(sessions []honcho.Session, slab *util.Slab) []Row {
	if filter.Input == "" {
		rows := make([]Row, len(sessions))
		for i, session := range sessions {
			rows[i] = Row{Session: session}
		}
		return rows
	}

	pattern := []rune(filter.Input)
	var rows []Row
	for _, session := range sessions {
		match := fuzzyMatch(session.ID, pattern, slab)
		if match.Score <= 0 {
			continue
		}
		rows = append(rows, Row{
			Session:   session,
			Score:     match.Score,
			Positions: match.Positions,
		})
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Score > rows[b].Score
	})
	return rows
}

// View renders the filter bar, or "" when the filter is inactive and
// empty (the model shows the regular header instead).
func (filter *FilterModel) View(theme Theme, width int, styler *lipgloss.Renderer) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	prompt := styler.NewStyle().Foreground(theme.HeaderForeground).Bold(true).Render("/")
	query := styler.NewStyle().Foreground(theme.NormalText).Render(filter.Input)

	cursor := ""
	if filter.Active {
		cursor = styler.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground).
			Render(" ")
	}

	bar := " " + prompt + query + cursor
	hint := ""
	if filter.Active {
		hint = styler.NewStyle().Foreground(theme.HelpText).Render("enter keep, esc clear")
	}

	gap := width - lipgloss.Width(bar) - lipgloss.Width(hint) - 1
	if gap < 1 {
		return bar
	}
	return bar + spaces(gap) + hint + " "
}
