// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the bridge.
//
// Configuration is loaded from a single file specified by either the
// HONCHO_BRIDGE_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no ~/.config discovery and no
// automatic file search; with no file at all, [Load] returns the
// defaults, because the only required value — the API key — comes from
// the secrets source, not from configuration.
//
// Variable expansion is performed on string fields after loading:
// ${VAR} and ${VAR:-default} patterns resolve from the environment,
// which is how HONCHO_WORKSPACE_ID and HONCHO_USER_ID override the
// workspace and user fields without a file edit.
//
// Key exports:
//
//   - [Config] -- base URL, workspace/user/agent peers, cache, retry,
//     message, context, and secrets sections
//   - [Default] -- a Config that works with zero operator input
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other bridge packages.
package config
