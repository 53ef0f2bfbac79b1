package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/propmarket/server/internal/infra/config"
)

// Option customizes a client built by New.
type Option func(*http.Client)

// WithTimeout bounds every request made through the client.
func WithTimeout(d time.Duration) Option {
	return func(c *http.Client) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// New creates a pooled HTTP client for outbound calls.
func New(cfg config.HTTPClientConfig, opts ...Option) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: cfg.KeepAlive,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		ForceAttemptHTTP2:   true,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.ResponseTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}
