package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/limejump/corona-analytics/pkg/config"
	"github.com/limejump/corona-analytics/pkg/logger"
)

// Observer receives one call per completed request; status is 0 on transport errors
type Observer interface {
	ObserveRequest(endpoint string, status int, d time.Duration)
}

// StatusError is returned by GetJSON for non-2xx responses
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Client is an HTTP client wrapper with throttling, default headers and logging
// All outbound requests to Corona go through this client.
type Client struct {
	httpClient *http.Client
	logger     *logger.Logger
	limiter    *rate.Limiter
	headers    http.Header
	observer   Observer
}

// New creates a new HTTP client from config
func New(cfg *config.Config, log *logger.Logger) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Corona.Timeout,
		},
		logger:  log,
		headers: make(http.Header),
	}
	if c.httpClient.Timeout == 0 {
		c.httpClient.Timeout = 30 * time.Second
	}
	if cfg.Corona.RateLimit > 0 {
		c.WithRateLimit(cfg.Corona.RateLimit, cfg.Corona.RateBurst)
	}
	return c
}

// NewWithTimeout creates a client with custom timeout
func NewWithTimeout(cfg *config.Config, log *logger.Logger, timeout time.Duration) *Client {
	client := New(cfg, log)
	client.httpClient.Timeout = timeout
	return client
}

// WithRateLimit throttles requests to rps per second with the given burst
func (c *Client) WithRateLimit(rps float64, burst int) *Client {
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return c
}

// WithHeader adds a header sent on every request
func (c *Client) WithHeader(key, value string) *Client {
	c.headers.Set(key, value)
	return c
}

// WithObserver reports every request to o
func (c *Client) WithObserver(o Observer) *Client {
	c.observer = o
	return c
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	return c.do(req, req.URL.Path)
}

// GetJSON performs a GET with query parameters and decodes a 2xx JSON body into dest.
// endpoint is a low-cardinality name used for logs and metrics.
func (c *Client) GetJSON(ctx context.Context, endpoint, rawURL string, query url.Values, dest interface{}) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create GET request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{URL: u.String(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// do executes the request with throttling and logging
func (c *Client) do(req *http.Request, endpoint string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}
	}

	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	startTime := time.Now()
	target := req.URL.String()

	c.logger.WithFields(map[string]interface{}{
		"method":   req.Method,
		"endpoint": endpoint,
		"url":      target,
	}).Debug("HTTP request started")

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	if err != nil {
		c.observe(endpoint, 0, duration)
		c.logger.WithFields(map[string]interface{}{
			"method":   req.Method,
			"endpoint": endpoint,
			"url":      target,
			"duration": duration,
			"error":    err.Error(),
		}).Error("HTTP request failed")
		return nil, fmt.Errorf("%s %s: %w", req.Method, endpoint, err)
	}

	c.observe(endpoint, resp.StatusCode, duration)
	c.logger.WithFields(map[string]interface{}{
		"method":      req.Method,
		"endpoint":    endpoint,
		"url":         target,
		"status_code": resp.StatusCode,
		"duration":    duration,
	}).Debug("HTTP request completed")

	return resp, nil
}

func (c *Client) observe(endpoint string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(endpoint, status, d)
	}
}
