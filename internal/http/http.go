// Package http provides a retrying HTTP client for fetching remote
// resources such as catalog fixtures.
package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	DefaultRetryMax = 3
	DefaultTimeout  = 30 * time.Second
	MaxBodyBytes    = 32 << 20
)

type HTTPDoer interface {
	Do(*retryablehttp.Request) (*http.Response, error)
}

var _ HTTPDoer = (*retryablehttp.Client)(nil)

// New returns a retrying client that logs retries through logger.
func New(logger *slog.Logger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = DefaultRetryMax
	client.HTTPClient.Timeout = DefaultTimeout
	if logger != nil {
		client.Logger = logger
	} else {
		client.Logger = nil
	}
	return client
}

// Fetch downloads url and returns the body. Non-2xx responses are errors.
func Fetch(ctx context.Context, doer HTTPDoer, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", url, err)
	}
	if err := ExpectStatus2xx(resp); err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if len(body) > MaxBodyBytes {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, MaxBodyBytes)
	}
	return body, nil
}

func ExpectStatus2xx(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		_ = resp.Body.Close()
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
