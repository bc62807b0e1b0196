// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/trialscout/pkg/types"
)

// ErrNotFound is returned when an upstream answers HTTP 404. Registries use
// 404 to mean "no results", so callers treat it as an empty answer.
var ErrNotFound = errors.New("not found")

// StatusError reports an upstream response with an unexpected status code.
type StatusError struct {
	Host       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Host, e.StatusCode)
}

const defaultTimeout = 20 * time.Second

// Client issues paced GET requests against one upstream and decodes JSON
// responses. Each upstream gets its own Client so a slow registry cannot
// use up another's request budget.
type Client struct {
	HTTP       *http.Client
	UserAgent  string
	MaxRetries int

	// Header is sent with every request, e.g. an API key header.
	Header http.Header

	// Limiter paces requests. Nil disables pacing.
	Limiter *rate.Limiter
}

// NewClient builds a Client from the shared HTTP settings. A positive rps
// installs a limiter allowing rps requests per second with a burst of one.
func NewClient(cfg types.HTTPConfig, rps float64) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		HTTP:       &http.Client{Timeout: timeout},
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
	}
	if rps > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return c
}

// Get performs a paced GET and returns the response for any status other
// than 404. The caller must close the body.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", req.URL.Host, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, ErrNotFound
	}
	return resp, nil
}

// GetJSON performs a paced GET and decodes a 200 response into v.
// HTTP 404 yields ErrNotFound; any other non-200 status yields *StatusError.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	resp, err := c.Get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Host: resp.Request.URL.Host, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing %s response: %w", resp.Request.URL.Host, err)
	}
	return nil
}
