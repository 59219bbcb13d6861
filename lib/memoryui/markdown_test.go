// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package memoryui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// plain renders markdown and strips styling, leaving layout only.
func plain(t *testing.T, input string, width int) string {
	t.Helper()
	return ansi.Strip(Render(input, DefaultTheme, width))
}

func TestRenderEmpty(t *testing.T) {
	if out := Render("", DefaultTheme, 80); out != "" {
		t.Errorf("empty input rendered %q", out)
	}
	if out := Render("  \n\t\n", DefaultTheme, 80); out != "" {
		t.Errorf("blank input rendered %q", out)
	}
}

func TestRenderParagraphReflow(t *testing.T) {
	// Soft line breaks inside a paragraph reflow as spaces.
	out := plain(t, "first line\nsecond line", 80)
	if out != "first line second line" {
		t.Errorf("reflow produced %q", out)
	}
}

func TestRenderWrapsToWidth(t *testing.T) {
	input := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
	out := plain(t, input, 20)

	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapping at width 20, got %q", out)
	}
	for _, line := range lines {
		if ansi.StringWidth(line) > 20 {
			t.Errorf("line wider than 20 cells: %q", line)
		}
	}
}

func TestRenderHeading(t *testing.T) {
	raw := Render("# Session summary", DefaultTheme, 80)
	stripped := ansi.Strip(raw)

	if !strings.Contains(stripped, "Session summary") {
		t.Fatalf("heading text missing: %q", stripped)
	}
	if raw == stripped {
		t.Error("heading carries no styling")
	}
}

func TestRenderHeadingSeparatesFromBody(t *testing.T) {
	out := plain(t, "# Title\n\nbody text", 80)
	want := "Title\n\nbody text"
	if out != want {
		t.Errorf("rendered %q, want %q", out, want)
	}
}

func TestRenderBulletList(t *testing.T) {
	out := plain(t, "- alpha\n- beta\n- gamma", 80)
	want := "- alpha\n- beta\n- gamma"
	if out != want {
		t.Errorf("rendered %q, want %q", out, want)
	}
}

func TestRenderOrderedList(t *testing.T) {
	out := plain(t, "1. first\n2. second", 80)
	want := "1. first\n2. second"
	if out != want {
		t.Errorf("rendered %q, want %q", out, want)
	}
}

func TestRenderListItemWrapIndents(t *testing.T) {
	out := plain(t, "- alpha beta gamma delta epsilon zeta", 20)
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped list item, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "- ") {
		t.Errorf("first line missing bullet: %q", lines[0])
	}
	// Continuation lines align under the item text, not the bullet.
	if !strings.HasPrefix(lines[1], "  ") {
		t.Errorf("continuation line not indented: %q", lines[1])
	}
}

func TestRenderNestedList(t *testing.T) {
	out := plain(t, "- outer\n  - inner", 80)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if lines[0] != "- outer" {
		t.Errorf("outer item rendered %q", lines[0])
	}
	if lines[1] != "  - inner" {
		t.Errorf("inner item rendered %q", lines[1])
	}
}

func TestRenderBlockquote(t *testing.T) {
	out := plain(t, "> quoted advice", 80)
	if !strings.HasPrefix(out, "│ ") {
		t.Fatalf("blockquote missing bar prefix: %q", out)
	}
	if !strings.Contains(out, "quoted advice") {
		t.Errorf("blockquote text missing: %q", out)
	}
}

func TestRenderFencedCode(t *testing.T) {
	input := "```go\nfmt.Println(\"hi\")\n```"
	out := plain(t, input, 80)
	if !strings.Contains(out, `fmt.Println("hi")`) {
		t.Errorf("code content missing: %q", out)
	}
	if strings.Contains(out, "```") {
		t.Errorf("fence markers leaked into output: %q", out)
	}
}

func TestRenderCodeWithoutLanguage(t *testing.T) {
	input := "```\nplain code\n```"
	out := plain(t, input, 80)
	if !strings.Contains(out, "plain code") {
		t.Errorf("unhighlighted code missing: %q", out)
	}
}

func TestRenderLink(t *testing.T) {
	out := plain(t, "[docs](https://example.com/docs)", 80)
	if !strings.Contains(out, "docs") {
		t.Errorf("link text missing: %q", out)
	}
	if !strings.Contains(out, "https://example.com/docs") {
		t.Errorf("link target missing: %q", out)
	}
}

func TestRenderCodeSpan(t *testing.T) {
	out := plain(t, "call `SyncMessage` next", 80)
	if out != "call SyncMessage next" {
		t.Errorf("rendered %q", out)
	}
}

func TestRenderStrikethrough(t *testing.T) {
	out := plain(t, "keep ~~drop~~ rest", 80)
	if !strings.Contains(out, "drop") {
		t.Errorf("struck text missing: %q", out)
	}
}

func TestRenderThematicBreak(t *testing.T) {
	out := plain(t, "above\n\n---\n\nbelow", 40)
	if !strings.Contains(out, strings.Repeat("─", 10)) {
		t.Errorf("rule missing: %q", out)
	}
}

func TestRenderEmphasisKeepsText(t *testing.T) {
	out := plain(t, "an *italic* and **bold** word", 80)
	if out != "an italic and bold word" {
		t.Errorf("rendered %q", out)
	}
}

func TestRenderTinyWidthStillRenders(t *testing.T) {
	// Width floors internally; pathological sizes must not panic or
	// produce empty output.
	out := plain(t, "some ordinary paragraph text", 3)
	if out == "" {
		t.Error("tiny width produced no output")
	}
}
