// Package transport fetches suggestion payloads over HTTP.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is the toolbar-format suggestion service.
	DefaultEndpoint = "http://suggestqueries.google.com/complete/search?ds=yt&output=toolbar&hl={locale}&q={query}"

	LocalePlaceholder = "{locale}"
	QueryPlaceholder  = "{query}"

	maxPayloadBytes = 1 << 20
	userAgent       = "suggestbox/1.0"
)

// ErrStatus is wrapped into errors for non-2xx responses.
var ErrStatus = errors.New("unexpected response status")

// Client issues GET requests, optionally spacing them by a minimum interval.
type Client struct {
	http     *http.Client
	throttle *throttle
}

// NewClient returns a client. A minInterval <= 0 disables throttling.
func NewClient(minInterval time.Duration) *Client {
	return &Client{
		http:     &http.Client{},
		throttle: newThrottle(minInterval),
	}
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.http = hc
	}
	return c
}

// Get fetches rawURL and returns the response body.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.throttle.wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for request slot: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting suggestions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

// BuildURL substitutes the escaped locale and query into template.
func BuildURL(template, locale, query string) string {
	r := strings.NewReplacer(
		LocalePlaceholder, url.QueryEscape(locale),
		QueryPlaceholder, url.QueryEscape(query),
	)
	return r.Replace(template)
}
