// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package honcho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/agentzero-community/honcho-bridge/lib/clock"
	"github.com/agentzero-community/honcho-bridge/lib/secrets"
)

// apiPrefix pins the service API generation. Path shapes and response
// fields in this package track the v2 API; pointing the client at an
// incompatible server surfaces as 404s, not silent misbehavior.
const apiPrefix = "/v2"

// userAgent identifies the bridge to the service.
const userAgent = "honcho-bridge/1"

// maxResponseSize bounds response body reads: 32 MB. Context and
// session payloads are orders of magnitude smaller; the bound exists
// so a misbehaving server cannot exhaust memory.
const maxResponseSize int64 = 32 << 20

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the service endpoint (e.g. "https://api.honcho.dev").
	BaseURL string
	// Workspace scopes every call made through the client.
	Workspace string
	// Secrets supplies the API key, re-read on every request.
	Secrets secrets.Source
	// HTTPClient is used for all requests. If nil, a client with a
	// transparent-gzip transport is used.
	HTTPClient *http.Client
	// Clock drives retry backoff. If nil, clock.Real() is used.
	Clock clock.Clock
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
	// RetryAttempts is the total number of tries per operation, first
	// call included. If zero, 3 is used.
	RetryAttempts int
	// RetryBaseDelay is the wait before the first retry, doubling on
	// each subsequent one. If zero, 500ms is used.
	RetryBaseDelay time.Duration
}

// Client is a workspace-scoped client for the service's HTTP API.
// Every operation reads the credential from the secrets source for
// just that request, retries transient failures with exponential
// backoff, and returns permanent failures immediately.
type Client struct {
	baseURL        string
	workspace      string
	secrets        secrets.Source
	httpClient     *http.Client
	clock          clock.Clock
	logger         *slog.Logger
	retryAttempts  int
	retryBaseDelay time.Duration
}

// NewClient creates a client for one workspace.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("honcho: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("honcho: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if config.Workspace == "" {
		return nil, fmt.Errorf("honcho: Workspace is required")
	}
	if config.Secrets == nil {
		return nil, fmt.Errorf("honcho: Secrets source is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		// Transparent gzip: the transport adds Accept-Encoding and
		// decompresses, so context payloads travel compressed.
		httpClient = &http.Client{Transport: gzhttp.Transport(http.DefaultTransport)}
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	retryAttempts := config.RetryAttempts
	if retryAttempts == 0 {
		retryAttempts = 3
	}
	retryBaseDelay := config.RetryBaseDelay
	if retryBaseDelay == 0 {
		retryBaseDelay = 500 * time.Millisecond
	}

	return &Client{
		baseURL:        strings.TrimRight(config.BaseURL, "/"),
		workspace:      config.Workspace,
		secrets:        config.Secrets,
		httpClient:     httpClient,
		clock:          clk,
		logger:         logger,
		retryAttempts:  retryAttempts,
		retryBaseDelay: retryBaseDelay,
	}, nil
}

// Workspace returns the workspace identifier the client is scoped to.
func (c *Client) Workspace() string { return c.workspace }

// Configured reports whether the secrets source currently yields an
// API key. False means every operation would return ErrNoCredential.
func (c *Client) Configured() bool {
	key, ok := c.secrets.APIKey()
	if !ok {
		return false
	}
	key.Close()
	return true
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's pool. Call after a network disruption to force fresh TCP
// connections instead of reusing a poisoned pooled connection.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// doRequest performs one HTTP request and returns the response body.
// On 2xx, returns the body. On any other status, returns a *APIError.
// The API key is read from the secrets source for the duration of this
// call only and never logged.
func (c *Client) doRequest(ctx context.Context, method, path string, requestBody any, query ...url.Values) ([]byte, error) {
	requestURL := c.baseURL + apiPrefix + path
	if len(query) > 0 && query[0] != nil {
		requestURL += "?" + query[0].Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("honcho: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("honcho: failed to create request: %w", err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("User-Agent", userAgent)

	key, ok := c.secrets.APIKey()
	if !ok {
		return nil, ErrNoCredential
	}
	// String() makes a brief heap copy at the header boundary; the
	// locked buffer is zeroed as soon as the request is built.
	request.Header.Set("Authorization", "Bearer "+key.String())
	key.Close()

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("honcho: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("honcho: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	// Error bodies are {"detail": "..."}. Anything else (a proxy's
	// HTML 502 page, say) still classifies by status code; the raw
	// body rides along for diagnostics.
	apiErr := &APIError{StatusCode: response.StatusCode}
	if jsonErr := json.Unmarshal(responseBody, apiErr); jsonErr != nil || apiErr.Detail == "" {
		apiErr.Detail = truncateDetail(string(responseBody))
	}
	return responseBody, apiErr
}

// truncateDetail bounds a raw error body for inclusion in an error
// message.
func truncateDetail(body string) string {
	const limit = 200
	body = strings.TrimSpace(body)
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}

// withRetry runs call with bounded retry on transient errors.
// Transient errors are connection failures, HTTP 429, and HTTP 5xx.
// Permanent errors (other 4xx, missing credential) are returned
// immediately. The context bounds total retry time: cancellation
// during a backoff wait aborts the operation.
func (c *Client) withRetry(ctx context.Context, operation string, call func() error) error {
	var lastError error
	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * c.retryBaseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.clock.After(backoff):
			}
		}

		err := call()
		if err == nil {
			return nil
		}
		lastError = err

		if !IsTransient(err) {
			return err
		}

		c.logger.Warn("transient remote failure, retrying",
			"operation", operation,
			"workspace", c.workspace,
			"attempt", attempt+1,
			"error", err,
		)
	}
	return lastError
}
