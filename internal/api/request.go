package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/cenkalti/backoff/v4"
)

// APIError represents an error response from the Binance API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance api error %d: %s", e.StatusCode, e.Message)
}

// IsRateLimited reports whether the error is a throttling signal.
// Binance uses 429, and 418 for clients that kept sending after a 429.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode == http.StatusTeapot
}

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.IsRateLimited()
}

// nextAction is the decision of one retry-loop step.
type nextAction int

const (
	actionSucceed nextAction = iota
	actionRetryRateLimited
	actionRetryTransient
	actionFail
)

// classify maps a request result onto the retry state machine.
// Rate-limit and transient retries share one attempt budget; the
// distinction only affects logging.
func classify(err error) nextAction {
	if err == nil {
		return actionSucceed
	}
	if errors.Is(err, context.Canceled) {
		return actionFail
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsRateLimited():
			return actionRetryRateLimited
		case apiErr.IsRetryable():
			return actionRetryTransient
		default:
			return actionFail
		}
	}

	// Transport-level errors (timeouts, resets, DNS) are transient.
	return actionRetryTransient
}

// newBackOff builds the geometric delay schedule: base, base*m, base*m².
// RandomizationFactor is zero so delays are deterministic (no jitter).
func (c *Client) newBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.backoffBase
	bo.Multiplier = c.backoffMultiplier
	bo.RandomizationFactor = 0
	bo.MaxInterval = backoff.DefaultMaxInterval * 60
	bo.MaxElapsedTime = 0
	return bo
}

// doRequest performs a single HTTP GET against the given path.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}

// doWithRetry performs a request with up to maxAttempts attempts.
// Every retry, rate-limited or transient, consumes one attempt from the
// same budget; this bounds a request's total wall-clock time even under
// sustained throttling. After a success the client pauses briefly to
// stay under the steady-state rate limit.
func (c *Client) doWithRetry(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var lastErr error
	bo := c.newBackOff()

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, err := c.doRequest(ctx, path, query)

		switch classify(err) {
		case actionSucceed:
			if c.requestPause > 0 {
				c.sleep(ctx, c.requestPause)
			}
			return body, nil

		case actionFail:
			return nil, err

		case actionRetryRateLimited:
			c.logger.Warn("rate limited, backing off",
				"attempt", attempt,
				"path", path,
			)

		case actionRetryTransient:
			c.logger.Debug("transient request failure, backing off",
				"attempt", attempt,
				"path", path,
				"err", err,
			)
		}

		lastErr = err
		if attempt == c.maxAttempts {
			break
		}
		if err := c.sleep(ctx, bo.NextBackOff()); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("attempts exhausted after %d tries: %w", c.maxAttempts, lastErr)
}

// get performs a GET request with retries and unmarshals the response.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.doWithRetry(ctx, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
