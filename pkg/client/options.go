package client

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is where the prediction backend listens unless configured
	// otherwise.
	DefaultBaseURL = "http://127.0.0.1:8000"
	// DefaultPath is the prediction endpoint relative to the base URL.
	DefaultPath = "/predict"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the backend base URL.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(raw), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithPath overrides the prediction endpoint path.
func WithPath(path string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, "/") {
			trimmed = "/" + trimmed
		}
		c.path = trimmed
	}
}

// WithHTTPClient injects the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout caps each request. Zero keeps the transport default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
