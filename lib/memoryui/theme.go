// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package memoryui

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette for the session browser. All colors are
// lipgloss ANSI 256 codes so the UI degrades sensibly over SSH and
// inside tmux.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected list row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Session activity markers.
	ActiveSession lipgloss.Color
	IdleSession   lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Fuzzy match highlighting in the session list.
	MatchBackground lipgloss.Color

	// Status bar errors.
	ErrorText lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal palette.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	ActiveSession: lipgloss.Color("114"), // green
	IdleSession:   lipgloss.Color("240"), // dim gray

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	MatchBackground: lipgloss.Color("58"), // dark amber

	ErrorText: lipgloss.Color("203"), // soft red
}
