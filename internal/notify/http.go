package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/manav03panchal/crewboard/internal/config"
	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/logging"
)

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 512

// HTTPClient handles HTTP requests with retry logic.
type HTTPClient struct {
	client *http.Client
	cfg    config.HTTPConfig
}

// NewHTTPClient creates an HTTP client from the HTTP section of the config.
func NewHTTPClient(cfg config.HTTPConfig) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
}

// SendResult contains the result of a send operation.
type SendResult struct {
	StatusCode int
	Duration   time.Duration
	Attempts   int
	Error      error
}

// Send POSTs body to url. Network failures, 429 and 5xx answers are retried
// up to MaxRetries attempts, waiting RetryDelay(attempt) before each one.
// Other 4xx answers fail immediately.
func (c *HTTPClient) Send(ctx context.Context, url, contentType string, body []byte) *SendResult {
	result := &SendResult{}
	start := time.Now()
	attempts := c.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		result.Attempts = attempt + 1

		if delay := c.cfg.RetryDelay(attempt); delay > 0 {
			select {
			case <-ctx.Done():
				result.Error = ctx.Err()
				result.Duration = time.Since(start)
				return result
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			result.Error = errors.NewUserErrorFrom(errors.ErrInvalidURL, "url", logging.MaskURL(url))
			result.Duration = time.Since(start)
			return result
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("User-Agent", "Crewboard/1.0")

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				result.Error = ctx.Err()
				result.Duration = time.Since(start)
				return result
			}
			result.Error = retryable("request failed", fmt.Errorf("%w: %v", errors.ErrNetworkUnavailable, err), attempt, attempts)
			logging.DebugLog("webhook attempt failed", logging.KeyAttempt, attempt+1, logging.KeyError, err)
			continue
		}

		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		result.StatusCode = resp.StatusCode

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			result.Error = nil
			result.Duration = time.Since(start)
			return result

		case resp.StatusCode == http.StatusTooManyRequests:
			result.Error = retryable("rate limited (HTTP 429)", nil, attempt, attempts)

		case resp.StatusCode >= 500:
			result.Error = retryable(
				fmt.Sprintf("server error (HTTP %d): %s", resp.StatusCode, bytes.TrimSpace(bodyBytes)), nil, attempt, attempts)

		default:
			result.Error = fmt.Errorf("client error (HTTP %d): %s", resp.StatusCode, bytes.TrimSpace(bodyBytes))
			result.Duration = time.Since(start)
			return result
		}
		logging.DebugLog("webhook attempt failed", logging.KeyAttempt, attempt+1, logging.KeyStatus, resp.StatusCode)
	}

	result.Duration = time.Since(start)
	if result.Error == nil {
		result.Error = fmt.Errorf("max retries exceeded")
	}
	return result
}

func retryable(message string, cause error, attempt, attempts int) *errors.RecoverableError {
	err := errors.NewRecoverableError(message, cause, attempts)
	for i := 0; i <= attempt; i++ {
		err.IncrementRetry()
	}
	return err
}
