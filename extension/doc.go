// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

// Package extension adapts the bridge to Agent Zero's lifecycle hook
// surface.
//
// [Extensions] carries the three hooks a host wires into its turn
// loop:
//
//   - [Extensions.AgentInit] fires when a chat context starts and
//     reports whether the integration is live. No network calls.
//   - [Extensions.HistoryAdd] fires before a message is persisted to
//     chat history. It extracts plain text from the host's nested
//     content payload and forwards it to the remote session.
//   - [Extensions.SystemPrompt] fires during prompt assembly and
//     returns the remembered-context fragment to append, or "".
//
// Hooks never return errors and never panic. Anything that fails
// below them — validation, initialization, network, the service
// itself — is logged at debug level and swallowed, so the host turn
// proceeds as if the integration were absent. With no API key
// configured, all three hooks are inert and make no network calls.
//
// [FromConfig] assembles the whole stack (credential chain, client,
// bridge, hooks) from a [config.Config] for embedding hosts.
package extension
