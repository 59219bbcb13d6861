// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction so retry
// backoff and cache expiry stay testable under simulated time.
//
// Production code accepts a Clock parameter instead of calling
// time.Now, time.After, or time.Sleep directly. Real() provides the
// standard library behavior; Fake() provides a deterministic clock
// that advances only when Advance is called.
//
// # Wiring Pattern
//
// Add a Clock field to structs that use time:
//
//	type Client struct {
//	    clock clock.Clock
//	    // ...
//	}
//
// In production:
//
//	c := &Client{clock: clock.Real()}
//
// In tests:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	c := &Client{clock: fake}
//	// ... start the operation in a goroutine ...
//	fake.WaitForTimers(1)                  // backoff registered
//	fake.Advance(500 * time.Millisecond)   // fire it deterministically
//
// WaitForTimers blocks until the expected number of waiters are
// registered, eliminating the registration/advance race that plagues
// tests synchronized with time.Sleep.
package clock
