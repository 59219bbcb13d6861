// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/agentzero-community/honcho-bridge/lib/clock"
)

func newTestCache(fakeClock *clock.FakeClock) *contextCache {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newContextCache(fakeClock, logger, 120*time.Second, 10)
}

// countingFetch returns a fetch function that serves the given results
// in order and counts invocations.
func countingFetch(results ...func() (string, error)) (func() (string, error), *int) {
	calls := 0
	fetch := func() (string, error) {
		index := calls
		calls++
		if index >= len(results) {
			index = len(results) - 1
		}
		return results[index]()
	}
	return fetch, &calls
}

func ok(text string) func() (string, error) {
	return func() (string, error) { return text, nil }
}

func fail(message string) func() (string, error) {
	return func() (string, error) { return "", errors.New(message) }
}

func TestCacheHitWithinTTL(t *testing.T) {
	fakeClock := clock.Fake(testEpoch)
	cache := newTestCache(fakeClock)
	fetch, calls := countingFetch(ok("first"))

	for i := 0; i < 3; i++ {
		text, err := cache.getOrFetch("chat-1", fetch)
		if err != nil {
			t.Fatalf("getOrFetch %d failed: %v", i, err)
		}
		if text != "first" {
			t.Errorf("unexpected text: %q", text)
		}
		fakeClock.Advance(30 * time.Second)
	}
	if *calls != 1 {
		t.Errorf("expected 1 fetch within TTL, got %d", *calls)
	}
}

func TestCacheExpiryTriggersRefetch(t *testing.T) {
	fakeClock := clock.Fake(testEpoch)
	cache := newTestCache(fakeClock)
	fetch, calls := countingFetch(ok("first"), ok("second"))

	if text, _ := cache.getOrFetch("chat-1", fetch); text != "first" {
		t.Fatalf("unexpected initial text: %q", text)
	}

	fakeClock.Advance(120 * time.Second)
	text, err := cache.getOrFetch("chat-1", fetch)
	if err != nil {
		t.Fatalf("getOrFetch after expiry failed: %v", err)
	}
	if text != "second" {
		t.Errorf("expected refreshed text, got %q", text)
	}
	if *calls != 2 {
		t.Errorf("expected 2 fetches, got %d", *calls)
	}
}

func TestCacheEmptyResultIsCached(t *testing.T) {
	fakeClock := clock.Fake(testEpoch)
	cache := newTestCache(fakeClock)
	fetch, calls := countingFetch(ok(""))

	for i := 0; i < 2; i++ {
		text, err := cache.getOrFetch("chat-1", fetch)
		if err != nil {
			t.Fatalf("getOrFetch failed: %v", err)
		}
		if text != "" {
			t.Errorf("expected empty text, got %q", text)
		}
	}
	// A session with nothing to say yet must not refetch every call.
	if *calls != 1 {
		t.Errorf("expected the empty result to be cached, got %d fetches", *calls)
	}
}

func TestCacheStaleServedOnFailure(t *testing.T) {
	fakeClock := clock.Fake(testEpoch)
	cache := newTestCache(fakeClock)
	fetch, _ := countingFetch(ok("good value"), fail("service down"))

	if _, err := cache.getOrFetch("chat-1", fetch); err != nil {
		t.Fatalf("initial fetch failed: %v", err)
	}

	fakeClock.Advance(121 * time.Second)
	text, err := cache.getOrFetch("chat-1", fetch)
	if err != nil {
		t.Fatalf("expected stale value on failure, got error: %v", err)
	}
	if text != "good value" {
		t.Errorf("expected the prior cached value, got %q", text)
	}
}

func TestCacheStaleBoundDiscards(t *testing.T) {
	fakeClock := clock.Fake(testEpoch)
	cache := newTestCache(fakeClock)
	fetch, _ := countingFetch(ok("good value"), fail("service down"))

	if _, err := cache.getOrFetch("chat-1", fetch); err != nil {
		t.Fatalf("initial fetch failed: %v", err)
	}

	// 10x the 120s TTL is 1200s. Beyond that the entry is too old to
	// serve and is dropped.
	fakeClock.Advance(1201 * time.Second)
	if _, err := cache.getOrFetch("chat-1", fetch); err == nil {
		t.Fatal("expected error beyond the staleness bound")
	}
	if cache.len() != 0 {
		t.Errorf("expected the over-age entry to be discarded, cache has %d entries", cache.len())
	}
}

func TestCacheFailureWithoutEntry(t *testing.T) {
	fakeClock := clock.Fake(testEpoch)
	cache := newTestCache(fakeClock)

	_, err := cache.getOrFetch("chat-1", fail("service down"))
	if err == nil {
		t.Fatal("expected error when fetch fails with no cached value")
	}
}

func TestCacheEntriesAreIndependent(t *testing.T) {
	fakeClock := clock.Fake(testEpoch)
	cache := newTestCache(fakeClock)

	if _, err := cache.getOrFetch("chat-1", ok("alpha")); err != nil {
		t.Fatalf("fetch for chat-1 failed: %v", err)
	}
	if _, err := cache.getOrFetch("chat-2", ok("beta")); err != nil {
		t.Fatalf("fetch for chat-2 failed: %v", err)
	}

	text, err := cache.getOrFetch("chat-1", fail("must not be called"))
	if err != nil || text != "alpha" {
		t.Errorf("chat-1 entry disturbed: %q, %v", text, err)
	}
}

func TestCacheInvalidate(t *testing.T) {
	fakeClock := clock.Fake(testEpoch)
	cache := newTestCache(fakeClock)
	fetch, calls := countingFetch(ok("value"))

	cache.getOrFetch("chat-1", fetch)
	cache.getOrFetch("chat-2", fetch)

	cache.invalidate("chat-1")
	if cache.len() != 1 {
		t.Errorf("expected 1 entry after invalidate, got %d", cache.len())
	}

	cache.getOrFetch("chat-1", fetch)
	if *calls != 3 {
		t.Errorf("expected a refetch after invalidation, got %d fetches", *calls)
	}

	cache.invalidateAll()
	if cache.len() != 0 {
		t.Errorf("expected empty cache after invalidateAll, got %d entries", cache.len())
	}
}
