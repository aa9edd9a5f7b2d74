package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tims-dev/tims-admin-bff/pkg/config"
)

// CallObserver receives timing for every backend round trip.
type CallObserver interface {
	ObserveBackendCall(method, path string, status int, duration time.Duration)
}

// Client is the single configured HTTP client every entity API shares. It
// owns the base URL, default headers and bearer-token injection for write
// operations.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *TokenStore
	logger  *zap.Logger
	obs     CallObserver
}

// NewClient builds a backend client from configuration.
func NewClient(cfg config.BackendConfig, tokens *TokenStore, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// WithObserver attaches a call observer, typically the metrics service.
func (c *Client) WithObserver(obs CallObserver) *Client {
	c.obs = obs
	return c
}

// BaseURL exposes the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks backend reachability for readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.Do(ctx, http.MethodGet, "health", nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("backend health returned %d", resp.StatusCode)
	}
	return nil
}

// Do performs a request against the backend. Write methods carry the bearer
// token from the persistent token store when one is present and unexpired.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build backend request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if isWrite(method) && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if c.obs != nil {
		c.obs.ObserveBackendCall(method, path, status, duration)
	}
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", duration),
	)
	return resp, nil
}

// JSON performs a request with an optional JSON payload and returns the raw
// response body alongside the status code.
func (c *Client) JSON(ctx context.Context, method, path string, payload interface{}) (int, []byte, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode backend payload: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	resp, err := c.Do(ctx, method, path, body, contentType)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read backend response: %w", err)
	}
	return resp.StatusCode, raw, nil
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
