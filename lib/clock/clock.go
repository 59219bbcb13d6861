// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the time operations the bridge depends on: cache
// expiry reads Now, retry backoff waits on After. Production code
// injects Real(); tests inject Fake() and advance time explicitly.
//
// Any function that would otherwise call time.Now, time.After, or
// time.Sleep takes a Clock (or is a method on a struct carrying one)
// so its timing behavior is observable under simulated time.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once
	// duration d elapses. Equivalent to time.After. If d <= 0, the
	// channel receives immediately.
	After(d time.Duration) <-chan time.Time

	// Sleep pauses the calling goroutine for at least duration d.
	// Equivalent to time.Sleep.
	Sleep(d time.Duration)
}
