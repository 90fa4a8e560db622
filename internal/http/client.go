package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "AlbumGrid"

	// DefaultTimeout bounds a single request including the body read.
	DefaultTimeout = 30 * time.Second

	// MaxBodySize caps how much of a response body is read into memory.
	MaxBodySize = 32 << 20
)

// ErrBodyTooLarge is returned when a response exceeds MaxBodySize.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError reports a response with a status other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// Client wraps HTTP GET requests with a fixed User-Agent and timeout.
//
// Example usage:
//
//	client := NewClient()
//
//	// Fetch HTML content
//	html, err := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
//
//	// Fetch cover bytes
//	data, err := client.Get(ctx, "https://f4.bcbits.com/img/a0123456789_0.jpg")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying client, keeping its transport and
// timeout. Useful for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new HTTP client.
//
// The client is configured with:
//   - 30 second timeout
//   - "AlbumGrid" User-Agent header
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserAgent returns the User-Agent header sent with every request.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header. No retries are made.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK (a *StatusError)
//   - The body exceeds MaxBodySize
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxBodySize {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching text content like HTML.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
