package omdb

import (
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public OMDb endpoint
const DefaultBaseURL = "https://www.omdbapi.com/"

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
// The client is copied first, never modified in place.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout < 0 {
			return
		}
		// copy so a client passed through WithHTTPClient is left untouched
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}
