// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

package reach

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPResult is the outcome of a single availability request.
type HTTPResult struct {
	URL        string
	StatusCode int
	Header     http.Header
	Err        error
}

// Available reports whether a response arrived with a status below 400.
func (r HTTPResult) Available() bool {
	return r.Err == nil && r.StatusCode > 0 && r.StatusCode < http.StatusBadRequest
}

// HTTPChecker issues one GET per check, without retries.
type HTTPChecker struct {
	httpClient *http.Client
}

// NewHTTPChecker creates a checker whose requests give up after timeout.
func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetTransport replaces the round tripper used for requests.
func (c *HTTPChecker) SetTransport(rt http.RoundTripper) {
	c.httpClient.Transport = rt
}

// Check requests target, prefixing https:// when no scheme is present.
// Failures are reported in the result, never returned.
func (c *HTTPChecker) Check(ctx context.Context, target string) HTTPResult {
	res := HTTPResult{URL: NormalizeURL(target)}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.URL, nil)
	if err != nil {
		res.Err = fmt.Errorf("create request: %w", err)
		return res
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		res.Err = fmt.Errorf("request %s: %w", res.URL, err)
		return res
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused; the body itself is not reported.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	res.StatusCode = resp.StatusCode
	res.Header = resp.Header.Clone()
	return res
}
