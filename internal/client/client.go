// Package client talks to the Metrics Service REST API.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/newthinker/evaldash/internal/core"
	"github.com/newthinker/evaldash/internal/metrics"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Endpoint names, used in error messages and metric labels.
const (
	EndpointHealth      = "health"
	EndpointSummary     = "summary"
	EndpointPredictions = "predictions"
)

var endpointPaths = map[string]string{
	EndpointHealth:      "/health",
	EndpointSummary:     "/model/metrics/summary",
	EndpointPredictions: "/model/predictions",
}

// Health is what the service reported about itself. The body shape is not
// fixed, so only well-known fields are picked out.
type Health struct {
	Status  string
	Message string
	Raw     []byte
}

// Client is a read-only Metrics Service client.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics *metrics.Registry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics records every request on reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(c *Client) { c.metrics = reg }
}

// New creates a client for the service rooted at baseURL.
// No request timeout is set; callers bound requests through their context.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks the service is up. Any failure is a backend error.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	body, err := c.get(ctx, EndpointHealth)
	if err != nil {
		return nil, core.NewBackendError(err)
	}
	if !gjson.ValidBytes(body) {
		return nil, core.NewParseError(EndpointHealth, fmt.Errorf("body is not valid JSON"))
	}

	fields := gjson.GetManyBytes(body, "status", "message")
	return &Health{
		Status:  fields[0].String(),
		Message: fields[1].String(),
		Raw:     body,
	}, nil
}

// Summary returns the raw body of the summary endpoint.
func (c *Client) Summary(ctx context.Context) ([]byte, error) {
	body, err := c.get(ctx, EndpointSummary)
	if err != nil {
		return nil, core.NewEndpointError(EndpointSummary, err)
	}
	return body, nil
}

// Predictions returns the raw body of the predictions endpoint.
func (c *Client) Predictions(ctx context.Context) ([]byte, error) {
	body, err := c.get(ctx, EndpointPredictions)
	if err != nil {
		return nil, core.NewEndpointError(EndpointPredictions, err)
	}
	return body, nil
}

// get issues a plain GET. A non-2xx response yields a *core.StatusError
// carrying the body text.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	url := c.baseURL + endpointPaths[endpoint]
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordFetch(endpoint, 0, time.Since(start).Seconds())
		c.logger.Debug("request failed", zap.String("endpoint", endpoint), zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.metrics.RecordFetch(endpoint, resp.StatusCode, time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("reading %s body: %w", endpoint, err)
	}

	c.logger.Debug("response received",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &core.StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return body, nil
}
