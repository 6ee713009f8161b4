package httpclient

import (
	"net/http"
	"time"
)

// Options holds configuration for the instrumented HTTP client.
type Options struct {
	client         *http.Client
	providerName   string
	requestTimeout *time.Duration
	headers        map[string]string
	baseURL        string
}

// Option configures the client.
type Option func(*Options)

func newOptions(opts ...Option) *Options {
	options := &Options{}
	for _, o := range opts {
		o(options)
	}
	return options
}

// WithHTTPClient sets a custom underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) {
		o.client = c
	}
}

// WithProviderName sets the provider name for metrics and traces.
func WithProviderName(name string) Option {
	return func(o *Options) {
		o.providerName = name
	}
}

// WithRequestTimeout sets the request timeout.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.requestTimeout = &timeout
	}
}

// WithHeaders sets default headers for all requests.
func WithHeaders(headers map[string]string) Option {
	return func(o *Options) {
		o.headers = headers
	}
}

// WithBaseURL sets the base URL for all requests.
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.baseURL = url
	}
}
