// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridge is the helper layer between Agent Zero lifecycle
// hooks and the Honcho memory service.
//
// [Bridge] is the single entry point. It wraps a [honcho.Client] with
// the behavior the hooks need but the client does not provide:
//
//   - Lazy session initialization. The first operation for a chat
//     creates the remote session and joins the user and agent peers;
//     later operations skip straight to their call. A failed
//     initialization is retried by the next operation, so adding an
//     API key mid-run activates the integration without a restart.
//   - Validation. Roles are normalized to "user"/"assistant", content
//     is trimmed and capped at a fixed rune length, and rejected input
//     never reaches the network.
//   - Deduplication. The digest of the last message pushed per session
//     is kept (never the content), so a hook that fires twice for one
//     turn appends once.
//   - Context caching. Derived context is cached per session with a
//     TTL; refresh failures fall back to the previous value within a
//     bounded staleness window.
//
// Failures degrade, never escalate: every operation returns an
// ordinary error the hook layer absorbs, and a missing API key turns
// the whole package into a no-op ([honcho.ErrNoCredential]).
//
// Logging never includes more than an 80-rune preview of any message
// and never includes the credential.
package bridge
