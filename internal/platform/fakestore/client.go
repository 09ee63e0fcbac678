package fakestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tiendalab/tienda-bff/internal/config"
	"github.com/tiendalab/tienda-bff/internal/platform/logger"
	"github.com/tiendalab/tienda-bff/internal/platform/metrics"
	"github.com/tiendalab/tienda-bff/internal/platform/traceid"
	"github.com/tiendalab/tienda-bff/internal/redact"
)

// maxBodyBytes caps how much of an upstream response is read into memory.
const maxBodyBytes = 10 << 20

// Response is an upstream reply reduced to what the gateway needs.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// Successful reports whether the upstream answered with a 2xx status.
func (r *Response) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Empty reports whether the body is absent or the JSON literal null.
// The store API answers 200 with an empty body for unknown IDs.
func (r *Response) Empty() bool {
	trimmed := bytes.TrimSpace(r.Body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// JSON returns the body as a JSON value for embedding in an envelope.
// An empty body becomes null; anything that is not valid JSON is rejected.
func (r *Response) JSON() (json.RawMessage, error) {
	if r.Empty() {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(r.Body) {
		return nil, fmt.Errorf("%w: status %d", ErrInvalidResponse, r.StatusCode)
	}
	return r.Body, nil
}

// Count returns the number of elements when the body is a JSON array.
func (r *Response) Count() (int, bool) {
	if r.Empty() {
		return 0, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(r.Body, &items); err != nil {
		return 0, false
	}
	return len(items), true
}

// Client issues requests against the upstream store API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics records every upstream call in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Client from the upstream configuration.
func NewClient(cfg config.UpstreamConfig, log *slog.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q", ErrInvalidConfig, cfg.BaseURL)
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:     log.With("component", "fakestore_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get issues GET path with the given query string.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues POST path with body.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

// Put issues PUT path with body.
func (c *Client) Put(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body)
}

// Delete issues DELETE path.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do sends exactly one request to the upstream API. A non-2xx status is not
// an error; callers decide how to present it. Transport failures are wrapped
// with ErrUpstreamUnavailable.
func (c *Client) Do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body []byte,
) (*Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if traceID := traceid.FromContext(ctx); traceID != "" {
		req.Header.Set(traceid.UpstreamHeader, traceID)
	}

	log := logger.FromContextOrDefault(ctx, c.logger)
	resource := resourceOf(path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(method, resource, 0, time.Since(start))
		log.Error("upstream request failed",
			"method", method,
			"path", path,
			"error", redact.Error(err))
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUpstreamUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)
	c.metrics.ObserveUpstream(method, resource, resp.StatusCode, elapsed)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s %s: %v", ErrUpstreamUnavailable, method, path, err)
	}

	log.Debug("upstream request completed",
		"method", method,
		"path", path,
		"status_code", resp.StatusCode,
		"duration_ms", elapsed.Milliseconds())

	return &Response{StatusCode: resp.StatusCode, Body: raw}, nil
}

// resourceOf returns the first path segment, used as a low-cardinality
// metric label ("/products/7" -> "products").
func resourceOf(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}
