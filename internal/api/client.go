// Package api is the HTTP JSON client for the repository-analysis backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/spiffcs/ghlens/internal/constants"
	"github.com/spiffcs/ghlens/internal/log"
)

// Client talks to the backend. It never sends request bodies or credentials.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	transport *loggingTransport
	timeout   *time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is still
// wrapped for request logging.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.http = &cp
	}
}

// WithTimeout bounds each request. Zero means no timeout. It applies
// regardless of where WithHTTPClient appears among the options.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

// NewClient creates a client for the backend at baseURL. An empty baseURL
// selects constants.DefaultAPIURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = constants.DefaultAPIURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &Client{baseURL: u, http: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		c.http.Timeout = *c.timeout
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.transport = &loggingTransport{base: base}
	c.http.Transport = c.transport

	return c, nil
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Requests returns the number of HTTP requests issued so far.
func (c *Client) Requests() int64 {
	return c.transport.requests.Load()
}

// endpointURL joins escaped path segments onto the base URL and attaches
// the encoded query options, if any.
func (c *Client) endpointURL(opts any, segments ...string) (string, error) {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}

	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.Join(segments, "/")
	u.RawPath = c.baseURL.EscapedPath() + "/" + strings.Join(escaped, "/")

	if opts != nil {
		v, err := query.Values(opts)
		if err != nil {
			return "", fmt.Errorf("failed to encode query: %w", err)
		}
		u.RawQuery = v.Encode()
	}
	return u.String(), nil
}

// get issues a GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	log.Trace("decoded response", "endpoint", endpoint)
	return nil
}
