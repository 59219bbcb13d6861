// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

// Package memoryui implements the interactive session browser behind
// "honchoctl browse": a two-pane terminal UI with the workspace's
// sessions on the left and the remembered context for the selected
// session on the right.
//
// The session list filters with fzf-style fuzzy matching (press /).
// The context pane renders the service's summary as styled markdown
// inside a scrollable viewport. All remote traffic goes through the
// [Source] interface from bubbletea commands, so the model itself
// never blocks on the network and tests can drive it with a fake.
package memoryui
