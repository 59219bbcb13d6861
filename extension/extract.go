// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package extension

import (
	"encoding/json"
	"fmt"
)

// maxExtractDepth bounds how many wrapper layers extractText unwraps.
// Host payloads nest two or three levels in practice; the bound stops
// a self-referential payload from looping.
const maxExtractDepth = 10

// extractText pulls a plain-text string out of the arbitrarily shaped
// content a history event carries. The host wraps message text in
// layers of metadata maps; the text lives under "content", "text", or
// "message" at some level. A map with none of those keys stringifies
// whole, so unexpected payload shapes degrade to something loggable
// rather than vanishing.
func extractText(contentData any) string {
	raw := contentData
	for depth := 0; depth < maxExtractDepth; depth++ {
		record, isMap := raw.(map[string]any)
		if !isMap {
			break
		}
		inner := innerValue(record)
		if inner == nil {
			if len(record) == 0 {
				return ""
			}
			return stringify(record)
		}
		raw = inner
	}

	if text, isString := raw.(string); isString {
		return text
	}
	if isTruthy(raw) {
		return stringify(raw)
	}
	return ""
}

// innerValue returns the first non-empty candidate among the known
// wrapper keys, or the raw "message" value when every candidate is
// empty. A present-but-empty "message" is distinct from a missing
// one: the former ends extraction with empty text, the latter means
// the map has no recognized shape at all.
func innerValue(record map[string]any) any {
	if value, ok := record["content"]; ok && isTruthy(value) {
		return value
	}
	if value, ok := record["text"]; ok && isTruthy(value) {
		return value
	}
	return record["message"]
}

// isTruthy reports whether a JSON-shaped value carries content: empty
// strings, zero numbers, false, empty containers, and nil do not.
func isTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// stringify renders a non-string payload for forwarding. Host content
// is JSON-shaped, so JSON is the faithful flat form; anything that
// resists encoding falls back to fmt.
func stringify(value any) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(encoded)
}
