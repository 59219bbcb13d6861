// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"log/slog"
	"sync"
	"time"

	"github.com/agentzero-community/honcho-bridge/lib/clock"
)

// contextCache holds the most recent derived-context text per session
// reference. Entries younger than the TTL are served without a network
// call. When a refresh fails, the previous value is served as long as
// it is younger than the staleness bound; beyond that it is discarded
// and the failure surfaces.
//
// The cache stores derived summaries only, never raw messages, and an
// empty successful fetch is cached like any other result so a session
// with no context yet does not hammer the service.
type contextCache struct {
	clock    clock.Clock
	logger   *slog.Logger
	ttl      time.Duration
	maxStale time.Duration

	mu      sync.Mutex
	entries map[string]contextEntry
}

type contextEntry struct {
	text      string
	fetchedAt time.Time
}

func newContextCache(clk clock.Clock, logger *slog.Logger, ttl time.Duration, maxStaleFactor int) *contextCache {
	return &contextCache{
		clock:    clk,
		logger:   logger,
		ttl:      ttl,
		maxStale: ttl * time.Duration(maxStaleFactor),
		entries:  make(map[string]contextEntry),
	}
}

// getOrFetch returns the cached text for sessionRef when it is younger
// than the TTL, otherwise calls fetch and caches the result. A failed
// fetch falls back to the previous value when one exists within the
// staleness bound; otherwise the error is returned.
//
// The lock is not held across fetch. Two concurrent misses for the
// same session both fetch and the later store wins; the request volume
// here makes single-flight machinery not worth its weight.
func (c *contextCache) getOrFetch(sessionRef string, fetch func() (string, error)) (string, error) {
	now := c.clock.Now()

	c.mu.Lock()
	entry, exists := c.entries[sessionRef]
	c.mu.Unlock()

	if exists && now.Sub(entry.fetchedAt) < c.ttl {
		return entry.text, nil
	}

	text, err := fetch()
	if err != nil {
		if exists && now.Sub(entry.fetchedAt) < c.maxStale {
			c.logger.Warn("context refresh failed, serving stale entry",
				"session", sessionRef,
				"age", now.Sub(entry.fetchedAt),
				"error", err,
			)
			return entry.text, nil
		}
		if exists {
			// Too old to trust. Drop it so the next failure reports
			// absence instead of resurrecting it.
			c.mu.Lock()
			delete(c.entries, sessionRef)
			c.mu.Unlock()
		}
		return "", err
	}

	c.mu.Lock()
	c.entries[sessionRef] = contextEntry{text: text, fetchedAt: c.clock.Now()}
	c.mu.Unlock()
	return text, nil
}

// invalidate removes the cached entry for one session reference.
func (c *contextCache) invalidate(sessionRef string) {
	c.mu.Lock()
	delete(c.entries, sessionRef)
	c.mu.Unlock()
}

// invalidateAll empties the cache.
func (c *contextCache) invalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]contextEntry)
	c.mu.Unlock()
}

// len reports the number of cached entries.
func (c *contextCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
