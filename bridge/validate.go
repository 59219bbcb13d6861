// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"fmt"
	"strings"
)

// Role is a message author category. The remote service accepts
// arbitrary peer names, but the bridge only ever forwards two kinds of
// message, so anything else is rejected before it reaches the network.
type Role string

const (
	// RoleUser marks a message written by the human user.
	RoleUser Role = "user"
	// RoleAssistant marks a message written by the agent.
	RoleAssistant Role = "assistant"
)

// ValidationError describes input rejected before any network call.
// Validation failures are never retried: the same input would fail
// the same way.
type ValidationError struct {
	// Field names the rejected input ("role", "content", "chat ID").
	Field string
	// Reason is a human-readable description. It never contains the
	// rejected content itself, only its shape.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bridge: invalid %s: %s", e.Field, e.Reason)
}

// normalizeRole trims and lowercases a raw role string and restricts
// it to the two accepted values.
func normalizeRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch role {
	case RoleUser, RoleAssistant:
		return role, nil
	}
	return "", &ValidationError{
		Field:  "role",
		Reason: fmt.Sprintf("%q is not %q or %q", raw, RoleUser, RoleAssistant),
	}
}

// normalizeContent trims surrounding whitespace and rejects content
// that is empty afterwards. Content longer than maxLength runes is
// truncated to exactly maxLength runes; truncation happens here so
// nothing oversized ever leaves the validator.
func normalizeContent(raw string, maxLength int) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", &ValidationError{Field: "content", Reason: "empty after trimming"}
	}
	return truncateRunes(content, maxLength), nil
}

// truncateRunes cuts s to at most limit runes. Cutting at a rune
// boundary keeps the result valid UTF-8; a byte slice could split a
// multi-byte sequence.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

// previewLimit is the most message content that ever reaches a log
// line, in runes.
const previewLimit = 80

// preview returns a log-safe excerpt of message content: at most
// previewLimit runes, with a marker when anything was cut.
func preview(content string) string {
	truncated := truncateRunes(content, previewLimit)
	if truncated == content {
		return content
	}
	return truncated + "…[truncated]"
}
