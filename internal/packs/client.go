package packs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// HTTPClient resolves pack breakdowns with GET <base-url>/packs/{quantity}.
type HTTPClient struct {
	baseURL *url.URL
	doer    *http.Client
	limiter rateLimiter
	logger  *zap.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(doer *http.Client) Option {
	return func(c *HTTPClient) {
		if doer != nil {
			c.doer = doer
		}
	}
}

// WithTimeout sets a per-request transport timeout. Zero means none.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		clone := *c.doer
		clone.Timeout = timeout
		c.doer = &clone
	}
}

// WithRateLimit throttles outbound lookups with a token bucket. A zero rate
// disables throttling. Throttled lookups wait rather than fail.
func WithRateLimit(ratePerSecond float64, burst int) Option {
	return func(c *HTTPClient) {
		c.limiter = newTokenBucketLimiter(ratePerSecond, burst)
	}
}

// WithLogger attaches a logger for per-request debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *HTTPClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewHTTPClient validates baseURL and builds a client for it.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL must use http or https, got %q", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base URL must include a host, got %q", baseURL)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	parsed.RawQuery = ""
	parsed.Fragment = ""

	c := &HTTPClient{
		baseURL: parsed,
		doer:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

// Endpoint returns the lookup URL for quantity.
func (c *HTTPClient) Endpoint(quantity int) string {
	return c.baseURL.JoinPath("packs", strconv.Itoa(quantity)).String()
}

// Packs fetches the breakdown for quantity. Every failure wraps ErrFetchFailed.
func (c *HTTPClient) Packs(ctx context.Context, quantity int) (ResultSet, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit wait: %v", ErrFetchFailed, err)
		}
	}

	endpoint := c.Endpoint(quantity)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFetchFailed, err)
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.Debug("packs request failed", zap.String("url", endpoint), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug("packs request completed",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	}

	var result ResultSet
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrFetchFailed, err)
	}
	return result, nil
}
