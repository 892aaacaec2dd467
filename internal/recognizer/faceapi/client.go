package faceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pasiware/faceclock/internal/domain"
)

// Config holds the configuration for the face service client.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	HealthTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "http://localhost:5001",
		Timeout:       10 * time.Second,
		HealthTimeout: 2 * time.Second,
	}
}

// Client is the HTTP client for the face recognition service. Calls are not
// retried: a failed call is one fallback attempt, keeping check-in latency
// bounded for the person standing at the kiosk.
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a new face service client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if config.HealthTimeout == 0 {
		config.HealthTimeout = DefaultConfig().HealthTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// Health calls GET /health and reports whether the service answered "ok".
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.HealthTimeout)
	defer cancel()

	var resp HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}

	if resp.Status != "ok" {
		return fmt.Errorf("%w: health status %q", domain.ErrRecognizerUnavailable, resp.Status)
	}

	return nil
}

// Register calls POST /register to store a face encoding for the employee.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Verify calls POST /verify to match a captured photo against the stored
// encoding for the employee.
func (c *Client) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	var resp VerifyResponse
	if err := c.doRequest(ctx, http.MethodPost, "/verify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// doRequest executes a single HTTP request. Every failure mode collapses to
// ErrRecognizerUnavailable: the caller only needs to know whether to fall
// back, not why the provider failed.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	url := c.config.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRecognizerUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrRecognizerUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: face service returned status %d: %s", domain.ErrRecognizerUnavailable, resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: decode response: %v", domain.ErrRecognizerUnavailable, err)
		}
	}

	return nil
}
