package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Client provides access to the Binance REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	maxAttempts       int
	backoffBase       time.Duration
	backoffMultiplier float64
	requestPause      time.Duration

	// sleep is swapped out in tests to observe backoff durations.
	sleep func(ctx context.Context, d time.Duration) error
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		logger:            slog.Default(),
		maxAttempts:       5,
		backoffBase:       3 * time.Second,
		backoffMultiplier: 1.7,
		requestPause:      150 * time.Millisecond,
		sleep:             sleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetry sets the retry configuration: the total attempt budget,
// the first backoff delay, and the geometric multiplier.
func WithRetry(maxAttempts int, base time.Duration, multiplier float64) ClientOption {
	return func(c *Client) {
		c.maxAttempts = maxAttempts
		c.backoffBase = base
		c.backoffMultiplier = multiplier
	}
}

// WithRequestPause sets the fixed delay after each successful request.
func WithRequestPause(d time.Duration) ClientOption {
	return func(c *Client) {
		c.requestPause = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// sleepContext blocks for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
