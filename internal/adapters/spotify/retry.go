package spotify

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
)

const defaultRetryAfter = time.Second

// doWithRateLimitRetry performs the request, and on a 429 waits for the
// server-specified delay and retries exactly once. Any other outcome,
// including a second 429, is returned to the caller as-is.
func (c *Client) doWithRateLimitRetry(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		return resp, nil
	}

	delay := parseRetryAfter(resp)
	if delay <= 0 {
		delay = defaultRetryAfter
	}
	_ = resp.Body.Close()
	log.Printf("WARN spotify adapter: rate limited, retrying after %s", delay)

	if err := sleepWithContext(req.Context(), delay); err != nil {
		return nil, err
	}

	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("spotify adapter: reset request body: %w", err)
		}
		req.Body = body
	}

	return c.httpClient.Do(req)
}

func parseRetryAfter(resp *http.Response) time.Duration {
	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	if when, err := http.ParseTime(retryAfter); err == nil {
		if until := time.Until(when); until > 0 {
			return until
		}
	}

	return 0
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("spotify adapter: request canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
