// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package honcho

import (
	"errors"
	"fmt"
)

// ErrNoCredential is returned when the secrets source has no API key.
// It marks the integration as unconfigured rather than broken: callers
// treat it as "skip this feature", never as a retryable failure.
var ErrNoCredential = errors.New("honcho: no API key configured")

// APIError is a structured error response from the service. Callers
// use errors.As to extract it:
//
//	var apiErr *honcho.APIError
//	if errors.As(err, &apiErr) {
//	    if apiErr.StatusCode == http.StatusUnauthorized { ... }
//	}
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"-"`
	// Detail is the error description from the service.
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("honcho: %d: %s", e.StatusCode, e.Detail)
}

// IsTransient reports whether err is worth retrying: connection
// failures, timeouts, rate limiting (429), and server errors (5xx).
// Client errors (4xx except 429) indicate a permanent problem — bad
// credentials, malformed input — and retrying cannot fix them. A
// missing credential is never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoCredential) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		// 429 Too Many Requests — rate limit, transient.
		if apiErr.StatusCode == 429 {
			return true
		}
		// 5xx — server error, transient.
		if apiErr.StatusCode >= 500 {
			return true
		}
		// 4xx (except 429) — client error, permanent.
		if apiErr.StatusCode >= 400 {
			return false
		}
	}

	// Everything else (connection refused, timeout, EOF) is transient.
	return true
}
