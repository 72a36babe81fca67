package http

import (
	"net"
	"net/http"
	"time"
)

// TransportConfig configures the HTTP transport (connection pooling).
type TransportConfig struct {
	// MaxIdleConns is the maximum number of idle connections across all hosts.
	// Default: 20
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host. All API
	// calls go to one host, so this bounds reuse across enrichment workers.
	// Default: 10
	MaxIdleConnsPerHost int

	// MaxConnsPerHost is the maximum concurrent connections per host (0 = no limit).
	// Default: 20
	MaxConnsPerHost int

	// IdleConnTimeout is how long an idle connection stays in the pool.
	// Default: 90s
	IdleConnTimeout time.Duration

	// ForceAttemptHTTP2 enables HTTP/2 on the custom transport.
	// Default: true
	ForceAttemptHTTP2 bool
}

// DefaultTransportConfig returns the pool settings used by DefaultConfig.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
}

// ForWorkers returns a copy of c whose per-host limits admit n concurrent
// requests without queueing on the pool.
func (c TransportConfig) ForWorkers(n int) TransportConfig {
	if c.MaxIdleConnsPerHost < n {
		c.MaxIdleConnsPerHost = n
	}
	if c.MaxConnsPerHost != 0 && c.MaxConnsPerHost < n {
		c.MaxConnsPerHost = n
	}
	if c.MaxIdleConns < c.MaxIdleConnsPerHost {
		c.MaxIdleConns = c.MaxIdleConnsPerHost
	}
	return c
}

func newBaseTransport(cfg TransportConfig) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   cfg.ForceAttemptHTTP2,
	}
}
