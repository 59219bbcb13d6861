// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"fmt"
	"strings"
)

// contextTemplate frames remembered user context for injection into a
// system prompt. The host appends the fragment verbatim, so it starts
// with a blank line to separate it from whatever the host already
// assembled.
const contextTemplate = `

# Honcho User Context
- Persistent memory about the user from previous conversations.
- Use this information to personalise responses.

<honcho_context>
%s
</honcho_context>
`

// renderPromptFragment wraps non-empty context text in the prompt
// template. Empty or whitespace-only context yields an empty fragment:
// the host's prompt is untouched when there is nothing to say.
func renderPromptFragment(contextText string) string {
	trimmed := strings.TrimSpace(contextText)
	if trimmed == "" {
		return ""
	}
	return fmt.Sprintf(contextTemplate, trimmed)
}
