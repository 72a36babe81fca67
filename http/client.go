// Package http provides the HTTP client used to reach the YouTube Data API:
// API key injection, per-host rate limiting and opt-in retries.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"ytreport/internal/retry"
)

// Config holds HTTP client configuration.
type Config struct {
	// APIKey is appended as the "key" query parameter of every request.
	APIKey string

	// Timeout for individual HTTP requests (0 = no timeout).
	Timeout time.Duration

	// Retry configuration. MaxRetries 0 sends each request exactly once.
	Retry retry.Config

	// RateLimiter configuration. DefaultRPS 0 disables limiting.
	RateLimiter RateLimiterConfig

	// UserAgent for HTTP requests.
	UserAgent string

	// Transport configures the connection pool used when Base is nil.
	Transport TransportConfig

	// Base is the underlying transport (default: a pooled *http.Transport
	// built from Transport).
	Base http.RoundTripper
}

// DefaultConfig returns a client configuration that sends every request once,
// without a timeout or rate limit.
func DefaultConfig() *Config {
	return &Config{
		Retry:     retry.DefaultConfig(),
		UserAgent: "ytreport/1.0",
		Transport: DefaultTransportConfig(),
	}
}

// NewClient creates an *http.Client whose transport applies cfg.
func NewClient(cfg *Config) *http.Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	base := cfg.Base
	if base == nil {
		base = newBaseTransport(cfg.Transport)
	}
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &Transport{
			Base:      base,
			APIKey:    cfg.APIKey,
			UserAgent: cfg.UserAgent,
			Limiter:   NewRateLimiter(cfg.RateLimiter),
			Retry:     cfg.Retry,
		},
	}
}

// Transport is an http.RoundTripper that authenticates requests with an API
// key, waits on the rate limiter and retries transient failures.
type Transport struct {
	Base      http.RoundTripper
	APIKey    string
	UserAgent string
	Limiter   *RateLimiter
	Retry     retry.Config
}

// RoundTrip implements http.RoundTripper. When the retry budget runs out on a
// retryable status, the last response is returned as-is so callers can decode
// the upstream error body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	cfg := t.Retry
	if !idempotent(req) {
		cfg.MaxRetries = 0
	}
	if cfg.OnRetry == nil {
		cfg.OnRetry = func(attempt int, err error, wait time.Duration) {
			zerolog.Ctx(ctx).Warn().
				Err(err).
				Str("path", req.URL.Path).
				Int("attempt", attempt).
				Dur("wait", wait).
				Msg("retrying request")
		}
	}

	var last *http.Response
	err := retry.Do(ctx, cfg, retry.IsRetryable, func(ctx context.Context) error {
		if last != nil {
			discard(last)
			last = nil
		}

		attempt, err := t.prepare(req)
		if err != nil {
			return retry.Permanent(err)
		}
		if err := t.Limiter.Wait(ctx, attempt.URL); err != nil {
			return err
		}

		resp, err := base.RoundTrip(attempt)
		if err != nil {
			return err
		}
		last = resp
		if ShouldRetry(resp.StatusCode) || IsRateLimited(resp) {
			return &StatusError{
				StatusCode: resp.StatusCode,
				RetryAfter: parseRetryAfter(resp.Header),
			}
		}
		return nil
	})

	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && last != nil {
			return last, nil
		}
		if last != nil {
			discard(last)
		}
		return nil, err
	}
	return last, nil
}

// prepare clones req for one attempt and applies the key and user agent.
func (t *Transport) prepare(req *http.Request) (*http.Request, error) {
	r := req.Clone(req.Context())
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		r.Body = body
	}

	if t.APIKey != "" {
		q := r.URL.Query()
		if q.Get("key") == "" {
			q.Set("key", t.APIKey)
			r.URL.RawQuery = q.Encode()
		}
	}
	if t.UserAgent != "" && r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", t.UserAgent)
	}
	return r, nil
}

func idempotent(req *http.Request) bool {
	switch req.Method {
	case "", http.MethodGet, http.MethodHead:
		return true
	}
	return false
}

func discard(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// parseRetryAfter extracts the Retry-After header value.
// Returns 0 if the header is absent or unparseable.
func parseRetryAfter(header http.Header) time.Duration {
	retryAfter := header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}

	return 0
}
