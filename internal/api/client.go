package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"quizzical-service/internal/domain"
)

const (
	// DefaultTimeout bounds each individual attempt, not the whole call.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 2

	backoffBase = time.Second
)

// Client issues GET requests with a per-attempt timeout and retries transient
// failures with exponential backoff. Failures are classified into the
// domain error taxonomy; only retryable ones consume the retry budget.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int

	// sleep is swapped out in tests so backoff never blocks the suite.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient builds a client. A nil httpClient falls back to http.DefaultClient;
// non-positive timeout and negative maxRetries fall back to the defaults.
func NewClient(httpClient *http.Client, timeout time.Duration, maxRetries int) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Client{
		httpClient: httpClient,
		timeout:    timeout,
		maxRetries: maxRetries,
		sleep:      sleepContext,
	}
}

// GetJSON fetches url and decodes the JSON body into out. The Accept header
// is set to application/json before any caller headers are applied, so
// callers may override it. Transient failures (transport faults and 5xx
// responses) are retried up to maxRetries times with 2^attempt seconds of
// backoff; everything else propagates immediately.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.fetchOnce(ctx, url, headers, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt < c.maxRetries && domain.IsRetryable(err) {
			delay := backoffBase << attempt
			log.Printf("retrying request (attempt %d/%d) after %s: %v", attempt+1, c.maxRetries, delay, err)
			if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
				return lastErr
			}
			continue
		}
		return err
	}
	return lastErr
}

func (c *Client) fetchOnce(ctx context.Context, url string, headers map[string]string, out any) error {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return domain.NewTransportError(err.Error())
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() == context.DeadlineExceeded {
			return domain.NewTransportError("Requested timeout")
		}
		return domain.NewTransportError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.NewResponseError(resp.StatusCode,
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewTransportError(err.Error())
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
