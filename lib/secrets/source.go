// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

// Package secrets supplies the Honcho API key to the rest of the
// bridge without ever parking it in ordinary process memory.
//
// A Source is consulted once per outbound request — the credential is
// re-read each time rather than cached, so rotating or revoking it
// takes effect on the next call. The key travels in a Buffer: mmap
// memory outside the Go heap, locked against swap, excluded from core
// dumps, zeroed on close.
//
// An absent credential is not an error. It means the integration is
// unconfigured and every hook becomes a no-op.
//
// Key exports:
//   - Source: per-request credential lookup interface
//   - Env: reads HONCHO_API_KEY from the environment
//   - Static: fixed in-memory source for tests and embedding hosts
//   - SealedFile: age-encrypted credentials file (honchoctl seal)
//   - Buffer: locked, dump-excluded, zero-on-close byte container
package secrets

import (
	"os"
	"strings"
)

// EnvAPIKey is the environment variable holding the Honcho API key.
const EnvAPIKey = "HONCHO_API_KEY"

// Source yields the service credential on demand. APIKey is called
// once per outbound request; implementations must not hold key
// material between calls.
type Source interface {
	// APIKey returns the credential in a protected buffer, or
	// ok=false when the source has no usable credential (unset,
	// empty, or unreadable). The caller must Close the buffer when
	// the request completes.
	APIKey() (key *Buffer, ok bool)
}

// Env reads the API key from the HONCHO_API_KEY environment variable
// on every call. Surrounding whitespace is trimmed; an empty result
// means unconfigured.
type Env struct{}

var _ Source = Env{}

func (Env) APIKey() (*Buffer, bool) {
	value := strings.TrimSpace(os.Getenv(EnvAPIKey))
	if value == "" {
		return nil, false
	}
	buffer, err := NewBufferFromString(value)
	if err != nil {
		return nil, false
	}
	return buffer, true
}

// Static serves a fixed key. Hosts that manage credentials themselves
// hand one to the bridge; tests use it to flip configured state.
type Static struct {
	// Key is the credential. Empty means unconfigured.
	Key string
}

var _ Source = Static{}

func (s Static) APIKey() (*Buffer, bool) {
	value := strings.TrimSpace(s.Key)
	if value == "" {
		return nil, false
	}
	buffer, err := NewBufferFromString(value)
	if err != nil {
		return nil, false
	}
	return buffer, true
}

// Chain consults sources in order and serves the first credential
// found. A typical arrangement is Chain{Env{}, sealedFile} so an
// operator can override the sealed file for one run.
type Chain []Source

var _ Source = Chain(nil)

func (c Chain) APIKey() (*Buffer, bool) {
	for _, source := range c {
		if key, ok := source.APIKey(); ok {
			return key, true
		}
	}
	return nil, false
}

// DefaultChain returns the standard credential lookup order: the
// environment first, then the sealed file when a path is configured.
// An empty sealedPath yields an environment-only chain.
func DefaultChain(sealedPath, identityPath string) Chain {
	chain := Chain{Env{}}
	if sealedPath != "" {
		chain = append(chain, &SealedFile{Path: sealedPath, IdentityPath: identityPath})
	}
	return chain
}
