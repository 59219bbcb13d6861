// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

// Package honcho wraps the Honcho v2 REST API for the bridge's
// conversational-memory needs.
//
// The package provides one core type. [Client] holds the service base
// URL, HTTP transport, and workspace name, and exposes the handful of
// operations the bridge uses: workspace, peer, and session get-or-create
// ([Client.EnsureWorkspace], [Client.EnsurePeer], [Client.EnsureSession]),
// session membership ([Client.AddSessionPeers]), message appends
// ([Client.AddMessages]), derived context retrieval
// ([Client.SessionContext]), and session listing ([Client.Sessions]).
//
// The API key is never held by the Client. Each request reads it from a
// [secrets.Source] into protected memory, sets the Authorization header,
// and releases it before the response is read. When the source has no
// key, requests fail fast with [ErrNoCredential] and no connection is
// attempted; [Client.Configured] reports this state without performing
// I/O beyond the source read.
//
// Every operation retries transparently on transient failure: network
// errors, timeouts, HTTP 429, and 5xx responses. Retries use exponential
// backoff starting from the configured base delay and respect context
// cancellation during the wait. Other 4xx responses are permanent and
// surface immediately as [*APIError] with the HTTP status and the
// service's detail string. [IsTransient] is the single classification
// point.
//
// Responses are read through an [io.LimitReader] bound so a misbehaving
// endpoint cannot exhaust memory, and the transport decompresses gzip
// bodies transparently.
package honcho
