package mxbai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL      = "https://api.mixedbread.com"
	DefaultTimeout      = 30 * time.Second
	DefaultPollInterval = time.Second
	DefaultPollTimeout  = 5 * time.Minute
)

// maxErrorBody caps how much of an error response is kept in APIError.
const maxErrorBody = 4 << 10

// Config holds configuration for the Mixedbread client.
type Config struct {
	// APIKey is the Mixedbread API key (required).
	APIKey string

	// BaseURL is the API root (default: https://api.mixedbread.com).
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// PollInterval is the wait between indexing status checks (default: 1s).
	PollInterval time.Duration

	// PollTimeout bounds the total wait for one file (default: 5m).
	PollTimeout time.Duration
}

// Client talks to the Mixedbread REST API.
type Client struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewClient creates a Mixedbread client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mxbai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefaultPollTimeout
	}

	return &Client{
		client:       &http.Client{Timeout: cfg.Timeout},
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
	}, nil
}

// newRequest builds an authenticated request for path relative to the base URL.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// doJSON sends in as JSON (when non-nil) and decodes the response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// do sends req, maps non-2xx responses to APIError and decodes into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     req.Method,
			Path:       req.URL.Path,
			Message:    errorMessage(raw),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts a readable message from an error body.
func errorMessage(raw []byte) string {
	var body struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.Detail != nil:
			return fmt.Sprint(body.Detail)
		case body.Error != nil:
			return fmt.Sprint(body.Error)
		}
	}
	return strings.TrimSpace(string(raw))
}
