// Package httpclient provides an instrumented HTTP client with OTEL
// tracing and metrics, used by the ledger RPC adapter.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultDialKeepAlive    = 10 * time.Second
	defaultRequestTimeout   = 10 * time.Second
	defaultMaxConnsPerHost  = 5
	defaultIdleConnTimeout  = 2 * time.Minute
	metricRequestCounter    = "http_client_requests_total"
)

// Client executes JSON HTTP requests against a single base URL.
type Client struct {
	client         *http.Client
	baseURL        string
	providerName   string
	defaultHeaders map[string]string
	requestCounter metric.Int64Counter
}

// New creates an instrumented HTTP client.
func New(opts ...Option) (*Client, error) {
	options := newOptions(opts...)

	httpClient := options.client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	if options.requestTimeout != nil {
		httpClient.Timeout = *options.requestTimeout
	}
	if httpClient.Transport == nil {
		httpClient.Transport = &http.Transport{
			DialContext: (&net.Dialer{
				KeepAlive: defaultDialKeepAlive,
			}).DialContext,
			MaxConnsPerHost: defaultMaxConnsPerHost,
			IdleConnTimeout: defaultIdleConnTimeout,
		}
	}

	// Wrap the transport with OTEL span + client trace propagation.
	httpClient.Transport = otelhttp.NewTransport(
		httpClient.Transport,
		otelhttp.WithClientTrace(func(ctx context.Context) *httptrace.ClientTrace {
			return otelhttptrace.NewClientTrace(ctx)
		}),
	)

	meter := otel.Meter("httpclient")
	counter, err := meter.Int64Counter(
		metricRequestCounter,
		metric.WithDescription("Total HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("httpclient: init metrics: %w", err)
	}

	return &Client{
		client:         httpClient,
		baseURL:        options.baseURL,
		providerName:   options.providerName,
		defaultHeaders: options.headers,
		requestCounter: counter,
	}, nil
}

// PostJSON sends body as JSON to path and unmarshals the response into
// result (which may be nil to discard the body).
func (c *Client) PostJSON(ctx context.Context, path string, body, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("httpclient: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("httpclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.defaultHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("httpclient: %s returned %d: %s", c.providerName, resp.StatusCode, truncate(raw, 256))
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("httpclient: unmarshal response: %w", err)
	}
	return nil
}

// Do executes a prepared request with instrumentation.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.do(ctx, req)
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)

	status := "error"
	if err == nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}
	c.requestCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", c.providerName),
		attribute.String("method", req.Method),
		attribute.String("status", status),
	))

	return resp, err
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
