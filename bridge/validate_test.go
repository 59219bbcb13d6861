// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeRole(t *testing.T) {
	valid := []struct {
		raw  string
		want Role
	}{
		{"user", RoleUser},
		{"assistant", RoleAssistant},
		{" User ", RoleUser},
		{"ASSISTANT", RoleAssistant},
		{"\tuser\n", RoleUser},
	}
	for _, test := range valid {
		role, err := normalizeRole(test.raw)
		if err != nil {
			t.Errorf("normalizeRole(%q) failed: %v", test.raw, err)
			continue
		}
		if role != test.want {
			t.Errorf("normalizeRole(%q) = %q, want %q", test.raw, role, test.want)
		}
	}

	invalid := []string{"", "system", "tool", "users", "assistant2", "admin"}
	for _, raw := range invalid {
		if _, err := normalizeRole(raw); err == nil {
			t.Errorf("normalizeRole(%q) should fail", raw)
		}
	}
}

func TestNormalizeContent(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		content, err := normalizeContent("  hello world \n", 100)
		if err != nil {
			t.Fatalf("normalizeContent failed: %v", err)
		}
		if content != "hello world" {
			t.Errorf("unexpected content: %q", content)
		}
	})

	t.Run("rejects empty", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "\n\t\r "} {
			if _, err := normalizeContent(raw, 100); err == nil {
				t.Errorf("normalizeContent(%q) should fail", raw)
			}
		}
	})

	t.Run("truncates to exactly the limit", func(t *testing.T) {
		content, err := normalizeContent(strings.Repeat("a", 250), 100)
		if err != nil {
			t.Fatalf("normalizeContent failed: %v", err)
		}
		if got := utf8.RuneCountInString(content); got != 100 {
			t.Errorf("expected exactly 100 runes, got %d", got)
		}
	})

	t.Run("content at the limit passes through", func(t *testing.T) {
		raw := strings.Repeat("b", 100)
		content, err := normalizeContent(raw, 100)
		if err != nil {
			t.Fatalf("normalizeContent failed: %v", err)
		}
		if content != raw {
			t.Errorf("content at the limit should be untouched")
		}
	})
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		input string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "hé"},
		{"日本語のテキスト", 3, "日本語"},
		{"", 5, ""},
		{"anything", 0, "anything"},
	}
	for _, test := range tests {
		if got := truncateRunes(test.input, test.limit); got != test.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", test.input, test.limit, got, test.want)
		}
	}
}

func TestTruncateRunesKeepsValidUTF8(t *testing.T) {
	// Every rune here is multi-byte; any byte-oriented cut would
	// produce invalid UTF-8.
	input := strings.Repeat("é", 50)
	got := truncateRunes(input, 20)
	if !utf8.ValidString(got) {
		t.Fatal("truncation produced invalid UTF-8")
	}
	if utf8.RuneCountInString(got) != 20 {
		t.Errorf("expected 20 runes, got %d", utf8.RuneCountInString(got))
	}
}

func TestPreview(t *testing.T) {
	t.Run("short content unchanged", func(t *testing.T) {
		if got := preview("short message"); got != "short message" {
			t.Errorf("unexpected preview: %q", got)
		}
	})

	t.Run("at the limit unchanged", func(t *testing.T) {
		raw := strings.Repeat("x", 80)
		if got := preview(raw); got != raw {
			t.Errorf("80-rune content should not be marked truncated")
		}
	})

	t.Run("long content cut and marked", func(t *testing.T) {
		got := preview(strings.Repeat("x", 200))
		want := strings.Repeat("x", 80) + "…[truncated]"
		if got != want {
			t.Errorf("unexpected preview: %q", got)
		}
	})
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "role", Reason: "not recognized"}
	if err.Error() != "bridge: invalid role: not recognized" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
