// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package memoryui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// The parser is shared: its configuration never changes and goldmark
// parsers are safe for concurrent use. Context summaries rarely use
// tables or footnotes, so only autolinking and strikethrough are
// enabled on top of CommonMark.
var (
	contextParser     goldmark.Markdown
	contextParserOnce sync.Once
)

func parser() goldmark.Markdown {
	contextParserOnce.Do(func() {
		contextParser = goldmark.New(
			goldmark.WithExtensions(
				extension.Linkify,
				extension.Strikethrough,
			),
		)
	})
	return contextParser
}

// Render parses markdown and produces styled terminal text wrapped to
// width. Single newlines inside paragraphs reflow as spaces, so text
// the service hard-wrapped renders cleanly at any terminal width.
//
// The color profile is forced to ANSI256: output always targets a
// terminal (the browse viewport or a TTY running honchoctl context),
// and auto-detection would strip color under tests and pipes that
// still want it.
func Render(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	source := []byte(input)
	document := parser().Parser().Parse(text.NewReader(source))

	styler := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styler.SetColorProfile(termenv.ANSI256)

	writer := &mdWriter{
		source: source,
		theme:  theme,
		width:  width,
		styler: styler,
		// The document start counts as a blank line so the first
		// block never emits leading newlines.
		trailing: 2,
	}
	ast.Walk(document, writer.walk)

	return strings.TrimRight(writer.out.String(), "\n")
}

// mdWriter turns a goldmark AST into wrapped, prefixed, styled lines.
// Inline content accumulates in a buffer and is wrapped as a unit
// when its block closes; block containers (quotes, list items) stack
// line prefixes that apply to every line they contain.
type mdWriter struct {
	source []byte
	theme  Theme
	width  int
	styler *lipgloss.Renderer

	out      strings.Builder
	trailing int // newlines currently ending out

	inline strings.Builder

	// Style depth counters; nested emphasis stacks correctly because
	// these count rather than toggle.
	bold   int
	italic int
	strike int

	prefixes []linePrefix
	bullet   string // one-shot replacement prefix for a list item's first line
	lists    []listFrame
}

type linePrefix struct {
	text  string // may carry ANSI styling
	width int    // visible cells
}

type listFrame struct {
	ordered bool
	index   int
	tight   bool
}

func (w *mdWriter) style() lipgloss.Style {
	return w.styler.NewStyle()
}

func (w *mdWriter) write(s string) {
	if s == "" {
		return
	}
	w.out.WriteString(s)

	i := len(s)
	for i > 0 && s[i-1] == '\n' {
		i--
	}
	if i == 0 {
		w.trailing += len(s)
	} else {
		w.trailing = len(s) - i
	}
}

func (w *mdWriter) newline() {
	if w.trailing < 1 {
		w.write("\n")
	}
}

func (w *mdWriter) blankLine() {
	for w.trailing < 2 {
		w.write("\n")
	}
}

func (w *mdWriter) prefix() (string, int) {
	var text strings.Builder
	width := 0
	for _, p := range w.prefixes {
		text.WriteString(p.text)
		width += p.width
	}
	return text.String(), width
}

func (w *mdWriter) pushPrefix(text string, width int) {
	w.prefixes = append(w.prefixes, linePrefix{text: text, width: width})
}

func (w *mdWriter) popPrefix() {
	if len(w.prefixes) > 0 {
		w.prefixes = w.prefixes[:len(w.prefixes)-1]
	}
}

// contentWidth is the wrap width left after prefixes, floored so
// pathological nesting still produces readable lines.
func (w *mdWriter) contentWidth() int {
	_, used := w.prefix()
	width := w.width - used
	if width < 10 {
		width = 10
	}
	return width
}

// applyPrefix prepends the line prefix to every line. The first line
// takes the pending list bullet instead when one is armed.
func (w *mdWriter) applyPrefix(content string) string {
	text, _ := w.prefix()
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if i == 0 && w.bullet != "" {
			lines[i] = w.bullet + line
			w.bullet = ""
			continue
		}
		lines[i] = text + line
	}
	return strings.Join(lines, "\n")
}

// flushInline wraps the accumulated inline text and prefixes it.
// Resets the buffer.
func (w *mdWriter) flushInline() string {
	content := w.inline.String()
	w.inline.Reset()
	if content == "" {
		return ""
	}
	return w.applyPrefix(ansi.Wrap(content, w.contentWidth(), " ,.;-"))
}

// styledText renders body text under the current emphasis state.
func (w *mdWriter) styledText(content string) string {
	style := w.style().Foreground(w.theme.NormalText)
	if w.bold > 0 {
		style = style.Bold(true)
	}
	if w.italic > 0 {
		style = style.Italic(true)
	}
	if w.strike > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// collectInline renders a node's children into a string, preserving
// the caller's inline buffer and emphasis counters.
func (w *mdWriter) collectInline(node ast.Node) string {
	savedInline := w.inline.String()
	savedBold, savedItalic, savedStrike := w.bold, w.italic, w.strike

	w.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, w.walk)
	}
	collected := w.inline.String()

	w.inline.Reset()
	w.inline.WriteString(savedInline)
	w.bold, w.italic, w.strike = savedBold, savedItalic, savedStrike
	return collected
}

func (w *mdWriter) inTightList() bool {
	if len(w.lists) == 0 {
		return false
	}
	return w.lists[len(w.lists)-1].tight
}

func (w *mdWriter) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindDocument:

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			w.inline.Reset()
		} else if flushed := w.flushInline(); flushed != "" {
			w.write(flushed)
			w.newline()
			if !w.inTightList() {
				w.blankLine()
			}
		}

	case ast.KindHeading:
		if entering {
			w.inline.Reset()
		} else {
			w.leaveHeading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			block := node.(*ast.FencedCodeBlock)
			w.writeCodeLines(blockText(block, w.source), string(block.Language(w.source)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			w.writeCodeLines(blockText(node, w.source), "")
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			bar := w.style().Foreground(w.theme.BorderColor).Render("│ ")
			w.pushPrefix(bar, 2)
		} else {
			w.popPrefix()
			w.blankLine()
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			start := 0
			if list.IsOrdered() {
				start = list.Start
			}
			w.lists = append(w.lists, listFrame{
				ordered: list.IsOrdered(),
				index:   start,
				tight:   list.IsTight,
			})
		} else {
			if len(w.lists) > 0 {
				w.lists = w.lists[:len(w.lists)-1]
			}
			if !w.inTightList() {
				w.blankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			w.enterListItem()
		} else {
			w.popPrefix()
			if w.inTightList() {
				w.newline()
			} else {
				w.blankLine()
			}
		}

	case ast.KindThematicBreak:
		if entering {
			rule := w.style().Foreground(w.theme.BorderColor).
				Render(strings.Repeat("─", w.contentWidth()))
			w.blankLine()
			w.write(w.applyPrefix(rule))
			w.newline()
			w.blankLine()
		}

	case ast.KindHTMLBlock:
		if entering {
			stripped := strings.TrimSpace(stripTags(blockText(node, w.source)))
			if stripped != "" {
				faint := w.style().Foreground(w.theme.FaintText).Render(stripped)
				w.write(w.applyPrefix(faint))
				w.newline()
				w.blankLine()
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			w.inline.WriteString(w.styledText(string(textNode.Segment.Value(w.source))))
			if textNode.SoftLineBreak() {
				// Hard-wrapped source reflows: the break becomes a space.
				w.inline.WriteString(" ")
			}
			if textNode.HardLineBreak() {
				w.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			w.inline.WriteString(w.styledText(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			w.bold += delta
		} else {
			w.italic += delta
		}

	case ast.KindCodeSpan:
		if entering {
			w.inline.WriteString(w.style().Foreground(w.theme.FaintText).Render(spanText(node, w.source)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			link := node.(*ast.Link)
			w.inline.WriteString(w.collectInline(link))
			if url := string(link.Destination); url != "" {
				w.inline.WriteString(" " + w.style().Foreground(w.theme.FaintText).Render("("+url+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(w.source))
			w.inline.WriteString(w.style().Foreground(w.theme.FaintText).Render(url))
		}

	case ast.KindImage:
		if entering {
			image := node.(*ast.Image)
			faint := w.style().Foreground(w.theme.FaintText)
			w.inline.WriteString(faint.Render("[" + w.collectInline(image) + "]"))
			if url := string(image.Destination); url != "" {
				w.inline.WriteString(" " + faint.Render("("+url+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindRawHTML:
		if entering {
			raw := node.(*ast.RawHTML)
			var html strings.Builder
			for i := 0; i < raw.Segments.Len(); i++ {
				segment := raw.Segments.At(i)
				html.Write(segment.Value(w.source))
			}
			if stripped := stripTags(html.String()); stripped != "" {
				w.inline.WriteString(w.style().Foreground(w.theme.FaintText).Render(stripped))
			}
		}

	case extast.KindStrikethrough:
		if entering {
			w.strike++
		} else {
			w.strike--
		}
	}

	return ast.WalkContinue, nil
}

func (w *mdWriter) leaveHeading(heading *ast.Heading) {
	// Headings restyle their whole line, so drop the per-rune styling
	// the text handler already applied.
	content := ansi.Strip(w.inline.String())
	w.inline.Reset()
	if content == "" {
		return
	}

	style := w.style().Bold(true).Foreground(w.theme.NormalText)
	if heading.Level <= 2 {
		style = style.Foreground(w.theme.HeaderForeground)
	}

	wrapped := ansi.Wrap(style.Render(content), w.contentWidth(), " ,.;-")
	w.blankLine()
	w.write(w.applyPrefix(wrapped))
	w.newline()
	w.blankLine()
}

// writeCodeLines emits a code block line by line under the current
// prefix. Known languages get Chroma highlighting; everything else
// renders faint.
func (w *mdWriter) writeCodeLines(code, language string) {
	code = strings.TrimRight(code, "\n")
	rendered := ""
	if language != "" {
		var highlighted strings.Builder
		if err := quick.Highlight(&highlighted, code, language, "terminal256", "monokai"); err == nil {
			rendered = highlighted.String()
		}
	}
	if rendered == "" {
		rendered = w.style().Foreground(w.theme.FaintText).Render(code)
	}

	text, _ := w.prefix()
	w.blankLine()
	for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
		if w.bullet != "" {
			w.write(w.bullet + line)
			w.bullet = ""
		} else {
			w.write(text + line)
		}
		w.newline()
	}
	w.blankLine()
}

func (w *mdWriter) enterListItem() {
	if len(w.lists) == 0 {
		return
	}
	frame := &w.lists[len(w.lists)-1]

	bullet := "- "
	if frame.ordered {
		bullet = fmt.Sprintf("%d. ", frame.index)
		frame.index++
	}

	// Arm the bullet for the item's first line; following lines align
	// under it.
	text, _ := w.prefix()
	w.bullet = text + bullet
	w.pushPrefix(spaces(len(bullet)), len(bullet))
}

// blockText joins the source lines a block node spans.
func blockText(node ast.Node, source []byte) string {
	var out strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		out.Write(segment.Value(source))
	}
	return out.String()
}

// spanText collects the text of a code span's children.
func spanText(node ast.Node, source []byte) string {
	var out strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			out.Write(typed.Segment.Value(source))
		case *ast.String:
			out.Write(typed.Value)
		}
	}
	return out.String()
}

// stripTags drops anything between < and >, keeping the visible text.
func stripTags(html string) string {
	var out strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			out.WriteRune(r)
		}
	}
	return out.String()
}
