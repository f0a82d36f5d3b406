package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"
)

const (
	// DefaultTimeout bounds a single upstream call.
	DefaultTimeout = 30 * time.Second

	// maxResponseSize caps how much of an upstream body is read (10MB).
	maxResponseSize = 10 * 1024 * 1024

	// maxRequestSize caps outbound JSON payloads (5MB).
	maxRequestSize = 5 * 1024 * 1024
)

// Client is a thin wrapper around net/http with size limits and request
// logging, used for calls to the strategy generation backend.
type Client struct {
	client *http.Client
	logger ectologger.Logger
}

// Config tunes the underlying transport.
type Config struct {
	Timeout            time.Duration
	MaxIdleConns       int
	IdleConnTimeout    time.Duration
	DisableCompression bool
	DisableKeepAlives  bool
}

// DefaultConfig returns settings suitable for a long-lived upstream client.
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		MaxIdleConns:    100,
		IdleConnTimeout: 90 * time.Second,
	}
}

func NewClient(cfg Config, logger ectologger.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:       cfg.MaxIdleConns,
				IdleConnTimeout:    cfg.IdleConnTimeout,
				DisableCompression: cfg.DisableCompression,
				DisableKeepAlives:  cfg.DisableKeepAlives,
			},
		},
		logger: logger,
	}
}

// Response carries the parts of an upstream response callers inspect.
type Response struct {
	StatusCode  int
	Body        []byte
	ContentType string
	Duration    time.Duration
}

// PostJSON sends payload as a JSON body and reads the full response.
func (c *Client) PostJSON(ctx context.Context, url string, payload any, headers map[string]string) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	if len(body) > maxRequestSize {
		return nil, fmt.Errorf("request body too large: %d bytes (max %d)", len(body), maxRequestSize)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.do(ctx, req)
}

func (c *Client) do(ctx context.Context, req *http.Request) (*Response, error) {
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Errorf("HTTP request failed: %s %s", req.Method, req.URL.String())
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxResponseSize {
		return nil, fmt.Errorf("response body too large: %d bytes (max %d)", len(body), maxResponseSize)
	}

	duration := time.Since(start)
	c.logger.WithContext(ctx).Debugf("HTTP %s %s -> %d (%s)", req.Method, req.URL.String(), resp.StatusCode, duration)

	return &Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		Duration:    duration,
	}, nil
}
