package http

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter manages per-host request rate limiting using a token bucket.
// A zero rate disables limiting for that host.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	config   RateLimiterConfig
}

// RateLimiterConfig defines rate limiting behavior.
type RateLimiterConfig struct {
	// DefaultRPS applies to every host (0 = unlimited).
	DefaultRPS float64
	// Burst is the token bucket size (default 1).
	Burst int
}

// NewRateLimiter creates a new rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   cfg,
	}
}

// Wait blocks until the limiter for the URL's host allows a request.
// It returns the context error if ctx ends first.
func (rl *RateLimiter) Wait(ctx context.Context, u *url.URL) error {
	if rl == nil {
		return nil
	}
	limiter := rl.getLimiter(u.Hostname())
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}

// getLimiter returns the limiter for host, creating it on first use.
func (rl *RateLimiter) getLimiter(host string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.config.DefaultRPS <= 0 {
		return nil
	}
	if limiter, ok := rl.limiters[host]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rate.Limit(rl.config.DefaultRPS), rl.config.Burst)
	rl.limiters[host] = limiter
	return limiter
}
