// Package transport provides the HTTP client shared by provider
// adapters. Every request carries a timeout, and transient gateway
// timeouts from upstream providers are retried a bounded number of
// times before surfacing as a typed API error.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/greenfolio/bankmap/pkg/errors"
	"github.com/greenfolio/bankmap/pkg/logging"
)

// Defaults for the shared client.
const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultRetryMax    = 3
	DefaultRetryWait   = 5 * time.Second
)

// retryable reports whether a status code is a transient gateway timeout
// worth retrying. 524 is the Cloudflare origin-timeout status several
// providers sit behind.
func retryable(status int) bool {
	return status == http.StatusGatewayTimeout || status == 524
}

// Client is an HTTP client with per-request timeouts and bounded retry
// on gateway timeouts. The zero value is not usable; use New.
type Client struct {
	http      *http.Client
	retryMax  int
	retryWait time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithRetry overrides the retry cap and the fixed wait between attempts.
func WithRetry(max int, wait time.Duration) Option {
	return func(c *Client) {
		c.retryMax = max
		c.retryWait = wait
	}
}

// New creates a transport client.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		retryMax:  DefaultRetryMax,
		retryWait: DefaultRetryWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request against the provider's endpoint, retrying
// gateway timeouts up to the configured cap. The caller owns the
// response body on success; on a non-2xx final response the body has
// been consumed into the returned APIError.
func (c *Client) Get(ctx context.Context, provider, url string) (*http.Response, error) {
	var lastStatus int
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, errors.WrapResource("create", "request", "GET "+url, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, errors.WrapAPI(provider, 0, err)
		}

		if !retryable(resp.StatusCode) {
			return resp, nil
		}

		lastStatus = resp.StatusCode
		drain(resp)

		if attempt >= c.retryMax {
			break
		}
		logging.Default().Warn().
			Str("provider", provider).
			Str("url", url).
			Int("status", lastStatus).
			Int("attempt", attempt+1).
			Msg("Gateway timeout, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryWait):
		}
	}

	return nil, &errors.APIError{
		Provider:   provider,
		StatusCode: lastStatus,
		Endpoint:   url,
		Message:    "gateway timeout after retries",
	}
}

// GetJSON performs a GET request and decodes the JSON response body into
// target. Non-2xx responses become APIErrors carrying the body text.
func (c *Client) GetJSON(ctx context.Context, provider, url string, target any) error {
	resp, err := c.Get(ctx, provider, url)
	if err != nil {
		return err
	}
	defer drain(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &errors.APIError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Endpoint:   url,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", url, err)
	}
	return nil
}

// drain discards and closes a response body so the connection can be
// reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
