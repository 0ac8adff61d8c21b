// Package jira talks to the Jira REST API.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ClientConfig configures the HTTP client behavior.
type ClientConfig struct {
	// Auth signs every request. Nil sends anonymous requests.
	Auth Authenticator

	// Transport allows injecting a custom HTTP transport (for tests).
	Transport http.RoundTripper

	// BaseURL is the server root, e.g. https://jira.example.com.
	BaseURL string

	// UserAgent string (default: "jira-reports/1.0").
	UserAgent string

	// Timeout for individual requests (default: 30s).
	Timeout time.Duration

	// RetryBackoff is the first retry delay; it doubles on each attempt (default: 100ms).
	RetryBackoff time.Duration

	// RateLimit requests per second (default: 10).
	RateLimit float64

	// RateBurst maximum burst size (default: 5).
	RateBurst int

	// MaxRetries for 429 and 5xx responses (default: 3).
	MaxRetries int
}

// Client is a rate-limited HTTP client that retries throttled and failed requests.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      ClientConfig
}

// NewClient creates a new HTTP client, filling unset values with defaults.
func NewClient(config ClientConfig) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RateLimit <= 0 {
		config.RateLimit = 10
	}
	if config.RateBurst <= 0 {
		config.RateBurst = 5
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = 100 * time.Millisecond
	}
	if config.UserAgent == "" {
		config.UserAgent = "jira-reports/1.0"
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
	}
}

// request is a single API call.
type request struct {
	Query  url.Values
	Method string
	Path   string
	Body   []byte
}

// Get performs a GET request and returns the response body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body and returns the response body.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	return c.do(ctx, request{Method: http.MethodPost, Path: path, Body: data})
}

// do executes a request with rate limiting and retry.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		body, err := c.doOnce(ctx, req)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == c.config.MaxRetries {
			break
		}

		backoff := c.config.RetryBackoff << uint(attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	if isRetryable(lastErr) && c.config.MaxRetries > 0 {
		return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return nil, lastErr
}

// doOnce executes a single request attempt.
func (c *Client) doOnce(ctx context.Context, req request) ([]byte, error) {
	fullURL := strings.TrimSuffix(c.config.BaseURL, "/") + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.config.Auth != nil {
		c.config.Auth.Apply(httpReq)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

// HTTPError represents an HTTP error response.
type HTTPError struct {
	Message    string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsRateLimited returns true if this is a rate limit error.
func (e *HTTPError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError returns true if this is a server error.
func (e *HTTPError) IsServerError() bool {
	return e.StatusCode >= 500
}

// IsNotFound returns true if the resource does not exist.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func isRetryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.IsRateLimited() || httpErr.IsServerError()
	}
	return false
}
