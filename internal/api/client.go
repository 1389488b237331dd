package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/context/ctxhttp"
)

const (
	// DefaultBaseURL is where the catalog backend listens in development
	DefaultBaseURL = "http://127.0.0.1:5000/api"
	defaultTimeout = 30 * time.Second
	userAgent      = "catbase/1.0"
	maxErrorBody   = 512 // bytes of an error response kept for the message
)

// Client talks to the catalog backend
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *log.Logger // nil = silent (the TUI owns the terminal)
}

// NewClient creates a catalog API client. A zero timeout uses 30 seconds.
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// BaseURL returns the backend root the client was configured with
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// endpoint joins path segments onto the base URL and attaches the query
func (c *Client) endpoint(query url.Values, segments ...string) string {
	u := c.baseURL.JoinPath(segments...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// getJSON issues a GET and decodes a 2xx JSON body into out.
// Every failure comes back as a *RequestError.
func (c *Client) getJSON(ctx context.Context, op, rawURL string, out any) error {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return &RequestError{Op: op, URL: rawURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Info("GET", "endpoint", rawURL)
	}

	resp, err := ctxhttp.Do(ctx, c.httpClient, req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Request failed", "url", rawURL, "error", err)
		}
		return &RequestError{Op: op, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.Debug("Response", "status", resp.StatusCode, "url", rawURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if c.logger != nil {
			c.logger.Error("API error", "status", resp.StatusCode, "response", string(body))
		}
		return &RequestError{Op: op, URL: rawURL, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, URL: rawURL, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// Health pings GET /health
func (c *Client) Health(ctx context.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "health", c.endpoint(nil, "health"), &body); err != nil {
		return err
	}
	if body.Status != "ok" {
		return fmt.Errorf("backend unhealthy: status %q", body.Status)
	}
	return nil
}
