// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package memoryui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/junegunn/fzf/src/util"
	"github.com/muesli/termenv"

	"github.com/agentzero-community/honcho-bridge/honcho"
)

// FocusRegion identifies which pane receives navigation keys.
type FocusRegion int

const (
	// FocusList means navigation moves the session cursor.
	FocusList FocusRegion = iota
	// FocusFilter means keystrokes edit the filter query.
	FocusFilter
	// FocusContext means navigation scrolls the context viewport.
	FocusContext
)

// sourceTimeout bounds every Source call made from a command.
const sourceTimeout = 15 * time.Second

// sessionsMsg delivers the session list (or the failure to get it).
type sessionsMsg struct {
	sessions []honcho.Session
	err      error
}

// contextMsg delivers one session's remembered context.
type contextMsg struct {
	sessionID string
	text      string
	err       error
}

// Model is the top-level bubbletea model for the session browser.
type Model struct {
	source    Source
	workspace string
	theme     Theme
	keys      KeyMap
	styler    *lipgloss.Renderer
	slab      *util.Slab

	width  int
	height int
	ready  bool

	// Session list state. rows is the filtered view over sessions.
	sessions []honcho.Session
	rows     []Row
	cursor   int
	scroll   int

	filter FilterModel
	focus  FocusRegion

	// Context pane state. contexts caches loaded context text by
	// session ID so revisiting a session is instant; Refresh drops
	// the cache.
	viewport   viewport.Model
	contexts   map[string]string
	renderedID string // session the viewport currently displays
	loadingID  string // session with a context fetch in flight

	loadingSessions bool
	statusError     string
}

// NewModel creates the browser model. The workspace name only labels
// the header; source is the single data dependency.
func NewModel(source Source, workspace string) Model {
	styler := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styler.SetColorProfile(termenv.ANSI256)

	return Model{
		source:          source,
		workspace:       workspace,
		theme:           DefaultTheme,
		keys:            DefaultKeyMap,
		styler:          styler,
		slab:            NewSlab(),
		contexts:        make(map[string]string),
		loadingSessions: true,
	}
}

// Init implements tea.Model: kick off the initial session load.
func (model Model) Init() tea.Cmd {
	return loadSessions(model.source)
}

func loadSessions(source Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sourceTimeout)
		defer cancel()
		sessions, err := source.Sessions(ctx)
		return sessionsMsg{sessions: sessions, err: err}
	}
}

func loadContext(source Source, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sourceTimeout)
		defer cancel()
		text, err := source.Context(ctx, sessionID)
		return contextMsg{sessionID: sessionID, text: text, err: err}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.resize()
		return model, nil

	case sessionsMsg:
		model.loadingSessions = false
		if message.err != nil {
			model.statusError = fmt.Sprintf("loading sessions: %v", message.err)
			return model, nil
		}
		model.statusError = ""
		model.sessions = message.sessions
		model.applyFilter()
		return model, model.ensureSelectedContext()

	case contextMsg:
		if model.loadingID == message.sessionID {
			model.loadingID = ""
		}
		if message.err != nil {
			model.statusError = fmt.Sprintf("loading context: %v", message.err)
			return model, nil
		}
		model.statusError = ""
		model.contexts[message.sessionID] = message.text
		if row, ok := model.selectedRow(); ok && row.Session.ID == message.sessionID {
			model.showContext(message.sessionID)
		}
		return model, nil

	case tea.KeyMsg:
		if model.focus == FocusFilter {
			return model.handleFilterKeys(message)
		}
		return model.handleKeys(message)
	}

	return model, nil
}

// handleKeys processes keystrokes while a pane (not the filter) has
// focus.
func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusToggle):
		if model.focus == FocusList {
			model.focus = FocusContext
		} else {
			model.focus = FocusList
		}

	case key.Matches(message, model.keys.FilterActivate):
		model.filter.Active = true
		model.focus = FocusFilter

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Clear()
			model.applyFilter()
		}

	case key.Matches(message, model.keys.Refresh):
		model.contexts = make(map[string]string)
		model.renderedID = ""
		model.loadingID = ""
		model.loadingSessions = true
		model.showPlaceholder("Loading...")
		return model, loadSessions(model.source)

	case key.Matches(message, model.keys.Select):
		return model, model.ensureSelectedContext()

	case key.Matches(message, model.keys.Up):
		if model.focus == FocusContext {
			model.viewport.LineUp(1)
		} else {
			model.moveCursor(-1)
		}

	case key.Matches(message, model.keys.Down):
		if model.focus == FocusContext {
			model.viewport.LineDown(1)
		} else {
			model.moveCursor(1)
		}

	case key.Matches(message, model.keys.PageUp):
		if model.focus == FocusContext {
			model.viewport.HalfViewUp()
		} else {
			model.moveCursor(-model.visibleRows())
		}

	case key.Matches(message, model.keys.PageDown):
		if model.focus == FocusContext {
			model.viewport.HalfViewDown()
		} else {
			model.moveCursor(model.visibleRows())
		}

	case key.Matches(message, model.keys.Home):
		if model.focus == FocusContext {
			model.viewport.GotoTop()
		} else {
			model.moveCursor(-len(model.rows))
		}

	case key.Matches(message, model.keys.End):
		if model.focus == FocusContext {
			model.viewport.GotoBottom()
		} else {
			model.moveCursor(len(model.rows))
		}
	}

	return model, nil
}

// handleFilterKeys processes keystrokes while the filter input has
// focus. Printable characters, q included, edit the query; ctrl+c
// still quits.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Clear()
			model.applyFilter()
		} else {
			model.filter.Active = false
			model.focus = FocusList
		}

	case message.Type == tea.KeyEnter:
		model.filter.Active = false
		model.focus = FocusList
		return model, model.ensureSelectedContext()

	case message.Type == tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.applyFilter()
		}

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		for _, r := range message.Runes {
			model.filter.HandleRune(r)
		}
		model.applyFilter()
	}

	return model, nil
}

// applyFilter rebuilds the visible rows and keeps the selection on
// the same session when it survives the filter.
func (model *Model) applyFilter() {
	var selected string
	if row, ok := model.selectedRow(); ok {
		selected = row.Session.ID
	}

	model.rows = model.filter.Apply(model.sessions, model.slab)

	model.cursor = 0
	for i, row := range model.rows {
		if row.Session.ID == selected {
			model.cursor = i
			break
		}
	}
	model.clampScroll()
	model.syncContextPane()
}

func (model *Model) selectedRow() (Row, bool) {
	if model.cursor < 0 || model.cursor >= len(model.rows) {
		return Row{}, false
	}
	return model.rows[model.cursor], true
}

func (model *Model) moveCursor(delta int) {
	if len(model.rows) == 0 {
		return
	}
	model.cursor += delta
	if model.cursor < 0 {
		model.cursor = 0
	}
	if model.cursor >= len(model.rows) {
		model.cursor = len(model.rows) - 1
	}
	model.clampScroll()
	model.syncContextPane()
}

func (model *Model) clampScroll() {
	visible := model.visibleRows()
	if model.cursor < model.scroll {
		model.scroll = model.cursor
	}
	if model.cursor >= model.scroll+visible {
		model.scroll = model.cursor - visible + 1
	}
	if model.scroll < 0 {
		model.scroll = 0
	}
}

// ensureSelectedContext shows the selected session's context if it is
// already loaded, or returns a command to fetch it.
func (model *Model) ensureSelectedContext() tea.Cmd {
	row, ok := model.selectedRow()
	if !ok {
		return nil
	}
	id := row.Session.ID
	if _, loaded := model.contexts[id]; loaded {
		model.showContext(id)
		return nil
	}
	if model.loadingID == id {
		return nil
	}
	model.loadingID = id
	model.showPlaceholder("Loading context for " + id + "...")
	return loadContext(model.source, id)
}

// syncContextPane aligns the right pane with the current selection:
// cached contexts render immediately, anything else shows a hint.
func (model *Model) syncContextPane() {
	row, ok := model.selectedRow()
	if !ok {
		model.showPlaceholder("No session selected.")
		return
	}
	id := row.Session.ID
	if _, loaded := model.contexts[id]; loaded {
		if model.renderedID != id {
			model.showContext(id)
		}
		return
	}
	if model.loadingID == id {
		model.showPlaceholder("Loading context for " + id + "...")
		return
	}
	model.showPlaceholder("Press Enter to load remembered context.")
	model.renderedID = ""
}

func (model *Model) showContext(sessionID string) {
	text := model.contexts[sessionID]
	if strings.TrimSpace(text) == "" {
		model.showPlaceholder("No remembered context for " + sessionID + " yet.")
		model.renderedID = sessionID
		return
	}
	rendered := Render(text, model.theme, model.contextTextWidth())
	model.viewport.SetContent(rendered)
	model.viewport.GotoTop()
	model.renderedID = sessionID
}

func (model *Model) showPlaceholder(message string) {
	hint := model.styler.NewStyle().Foreground(model.theme.FaintText).Italic(true)
	model.viewport.SetContent(hint.Render(message))
	model.viewport.GotoTop()
}

// --- Layout ---

func (model *Model) listWidth() int {
	width := model.width * 2 / 5
	if width < 24 {
		width = 24
	}
	if width > 48 {
		width = 48
	}
	if width > model.width-10 {
		width = model.width / 2
	}
	return width
}

func (model *Model) contextWidth() int {
	width := model.width - model.listWidth() - 3
	if width < 10 {
		width = 10
	}
	return width
}

// contextTextWidth leaves a right margin inside the viewport.
func (model *Model) contextTextWidth() int {
	return model.contextWidth() - 1
}

// visibleRows is the height of the list pane in rows.
func (model *Model) visibleRows() int {
	rows := model.height - 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (model *Model) resize() {
	model.viewport.Width = model.contextWidth()
	model.viewport.Height = model.visibleRows()
	model.clampScroll()
	if model.renderedID != "" {
		model.showContext(model.renderedID)
	} else {
		model.syncContextPane()
	}
}

// --- View ---

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	var sections []string

	// Filter bar replaces the header while filtering so the layout
	// never shifts.
	if bar := model.filter.View(model.theme, model.width, model.styler); bar != "" {
		sections = append(sections, bar)
	} else {
		sections = append(sections, model.renderHeader())
	}

	list := model.renderList()
	divider := model.renderDivider()
	contextView := model.viewport.View()
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, list, divider, contextView))

	separator := model.styler.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
	sections = append(sections, separator)

	sections = append(sections, model.renderStatus())

	return strings.Join(sections, "\n")
}

func (model Model) renderHeader() string {
	title := model.styler.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true).
		Render("Honcho sessions")
	workspace := model.styler.NewStyle().
		Foreground(model.theme.FaintText).
		Render("workspace " + model.workspace)

	count := fmt.Sprintf("%d sessions", len(model.rows))
	if model.loadingSessions {
		count = "loading..."
	} else if model.filter.Input != "" {
		count = fmt.Sprintf("%d/%d sessions", len(model.rows), len(model.sessions))
	}
	right := model.styler.NewStyle().Foreground(model.theme.HelpText).Render(count)

	left := " " + title + "  " + workspace
	gap := model.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		return left
	}
	return left + spaces(gap) + right + " "
}

func (model Model) renderList() string {
	width := model.listWidth()
	visible := model.visibleRows()

	var lines []string
	if len(model.rows) == 0 {
		empty := "no sessions yet"
		if model.filter.Input != "" {
			empty = "no matches"
		} else if model.loadingSessions {
			empty = "loading..."
		}
		hint := model.styler.NewStyle().Foreground(model.theme.FaintText).Italic(true)
		lines = append(lines, " "+hint.Render(empty))
	}

	for i := model.scroll; i < len(model.rows) && len(lines) < visible; i++ {
		selected := i == model.cursor
		lines = append(lines, renderRow(model.rows[i], selected, width, model.theme, model.styler))
	}
	for len(lines) < visible {
		lines = append(lines, spaces(width))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderDivider() string {
	bar := " │ "
	if model.focus == FocusContext {
		bar = " ┃ "
	}
	line := model.styler.NewStyle().Foreground(model.theme.BorderColor).Render(bar)
	lines := make([]string, model.visibleRows())
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderStatus() string {
	if model.statusError != "" {
		message := model.styler.NewStyle().Foreground(model.theme.ErrorText).Render(model.statusError)
		return " " + ansi.Truncate(message, model.width-2, "…")
	}

	parts := []string{
		"j/k move", "enter open", "/ filter", "r refresh", "tab pane", "q quit",
	}
	help := model.styler.NewStyle().Foreground(model.theme.HelpText).Render(strings.Join(parts, " · "))
	return " " + help
}
