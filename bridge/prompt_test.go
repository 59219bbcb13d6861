// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"strings"
	"testing"
)

func TestRenderPromptFragment(t *testing.T) {
	fragment := renderPromptFragment("enjoys hiking and systems programming")

	if !strings.HasPrefix(fragment, "\n\n# Honcho User Context\n") {
		t.Errorf("fragment must open with a blank line and the heading, got %q", fragment)
	}
	if !strings.Contains(fragment, "<honcho_context>\nenjoys hiking and systems programming\n</honcho_context>") {
		t.Errorf("context text not framed by tags: %q", fragment)
	}
	if !strings.HasSuffix(fragment, "</honcho_context>\n") {
		t.Errorf("fragment must end with the closing tag and newline, got %q", fragment)
	}
}

func TestRenderPromptFragmentTrims(t *testing.T) {
	fragment := renderPromptFragment("\n  remembered fact  \n")
	if !strings.Contains(fragment, "<honcho_context>\nremembered fact\n</honcho_context>") {
		t.Errorf("context text should be trimmed before framing: %q", fragment)
	}
}

func TestRenderPromptFragmentEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		if got := renderPromptFragment(text); got != "" {
			t.Errorf("renderPromptFragment(%q) = %q, want empty", text, got)
		}
	}
}

func TestRenderPromptFragmentLiteralPercent(t *testing.T) {
	// Context text is data, not a format string.
	fragment := renderPromptFragment("uses %s and %d in examples")
	if !strings.Contains(fragment, "uses %s and %d in examples") {
		t.Errorf("percent signs in context must survive: %q", fragment)
	}
}
