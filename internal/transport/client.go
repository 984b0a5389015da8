package transport

import (
	"net"
	"net/http"
	"time"
)

//go:generate mockgen -destination=transportmock/doer.go -package=transportmock . Doer

// Doer abstracts HTTP execution so tests can swap in a fake.
// *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config tunes the pooled *http.Client built by NewHTTPClient.
type Config struct {
	// Total timeout for the whole exchange, including reading the body.
	// A shorter context deadline still wins.
	Timeout time.Duration

	DialTimeout     time.Duration
	KeepAlive       time.Duration
	TLSHandshake    time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConns        int
	MaxIdleConnsPerHost int
}

// DefaultConfig is the pool used for ShipEngine calls when the caller brings
// no client: a 30s bound on each exchange, with dial and TLS limits short
// enough that an unreachable API fails well inside that bound.
func DefaultConfig() Config {
	return Config{
		Timeout:             30 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshake:        5 * time.Second,
		ResponseHeader:      20 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
	}
}

// WithTimeout returns c with its overall bound set to timeout. The wait for
// response headers is raised to match when timeout exceeds it, so a slow
// rate quote is not cut off before the overall bound.
func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	if timeout > c.ResponseHeader {
		c.ResponseHeader = timeout
	}
	return c
}

// NewHTTPClient builds a pooled *http.Client from cfg. Proxy settings come
// from the environment. Wrap the returned Transport to add tracing.
func NewHTTPClient(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}
