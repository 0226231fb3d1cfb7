// Package contactclient submits the public contact form to the HumusGarden API
// and tracks the form's sending/success/error state the way the website does.
package contactclient

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

// Config holds the configuration for the contact client.
type Config struct {
	// BaseURL is the root URL of the API, e.g. "https://api.humusgarden.cl".
	// Ignored when Endpoint is an absolute URL.
	BaseURL string

	// Endpoint is the contact path or a full URL.
	// Default: "/api/contact"
	Endpoint string

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with 30s timeout is used.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.Endpoint == "" {
		c.Endpoint = "/api/contact"
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Submission is the JSON payload of the contact form. Phone may be empty.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// Client talks to the contact API.
type Client struct {
	cfg Config
}

// NewClient creates a new contact client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.cfg.BaseURL + path
}

// Submit posts one submission. Transport failures wrap ErrUnreachable;
// non-2xx responses are returned as *APIError.
func (c *Client) Submit(ctx context.Context, s Submission) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("contactclient: encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(c.cfg.Endpoint), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("contactclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

// Health calls GET /health on BaseURL.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/health"), nil)
	if err != nil {
		return fmt.Errorf("contactclient: create request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, body)
	}
	return nil
}
