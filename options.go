package shodan

// This file defines functional options that configure the Client during
// construction.

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Option configures a Client during construction in New.
//
// Options run in order, before the resty clients are built, so later options
// see the effects of earlier ones.
type Option func(*Client) error

// WithHTTPTimeout sets the timeout of the REST http.Client.
//
// It never applies to streaming requests. The value must be greater than zero;
// per-request context deadlines remain available for finer control.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the http.Client used for REST requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.http = hc
		return nil
	}
}

// WithStreamHTTPClient replaces the http.Client used for streaming requests.
// Its Timeout must be zero; New rejects anything else.
func WithStreamHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("stream http client cannot be nil")
		}
		c.stream = hc
		return nil
	}
}

// WithBaseURL points REST requests at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) error {
		base, err := checkBaseURL(u)
		if err != nil {
			return err
		}
		c.baseURL = base
		return nil
	}
}

// WithStreamURL points streaming requests at another host.
func WithStreamURL(u string) Option {
	return func(c *Client) error {
		base, err := checkBaseURL(u)
		if err != nil {
			return err
		}
		c.streamURL = base
		return nil
	}
}

// WithDebugLogging wraps both transports so each request and response is
// logged at debug level when enabled is true. The API key is redacted from
// logged URLs but response bodies are logged verbatim.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			wrapDebug(c.http, false)
			wrapDebug(c.stream, true)
		}
		return nil
	}
}

// WithBatchConfig overrides the worker pool settings used by Batch.
func WithBatchConfig(cfg BatchConfig) Option {
	return func(c *Client) error {
		c.batchCfg = cfg
		return nil
	}
}

func wrapDebug(hc *http.Client, stream bool) {
	if _, ok := hc.Transport.(*debugTransport); ok {
		return
	}
	hc.Transport = &debugTransport{base: hc.Transport, stream: stream}
}

func checkBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", fmt.Errorf("invalid base url %q: need http(s)://host", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("invalid base url %q: query and fragment not allowed", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}
