// Package apiclient is the request pipeline used for every call to the
// remote API. It attaches the bearer token and reacts to 401 responses.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// BasePath is prefixed to every request path.
const BasePath = "/api"

// DefaultLoginPath is where a 401 redirects to.
const DefaultLoginPath = "/login"

// TokenSource yields the current access token, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Navigator performs client-side redirects.
type Navigator interface {
	Navigate(path string)
}

// Client sends JSON requests to <baseURL>/api.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
	loginPath  string

	mu             sync.RWMutex
	onUnauthorized func(reason string)
	navigator      Navigator
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithLoginPath sets the redirect target used on 401.
func WithLoginPath(path string) Option {
	return func(c *Client) { c.loginPath = path }
}

// New creates a Client for the host at baseURL.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/") + BasePath,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens:    tokens,
		logger:    slog.Default(),
		loginPath: DefaultLoginPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthorizedHandler registers the session invalidation run on 401.
func (c *Client) SetUnauthorizedHandler(fn func(reason string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// SetNavigator registers the navigator used to redirect to login on 401.
func (c *Client) SetNavigator(n Navigator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navigator = n
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Get decodes the response of a GET into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Do performs one request. Errors are either ErrTransport-wrapped or *Error.
// A nil out discards the response body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.prepare(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s %s: %w", ErrTransport, method, path, err)
	}

	c.logger.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", req.Header.Get("X-Request-ID"),
	)

	if resp.StatusCode >= 400 {
		apiErr := &Error{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    extractMessage(data),
			Body:       data,
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized(apiErr)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}

// prepare is the request interceptor.
func (c *Client) prepare(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.tokens == nil {
		return
	}
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// handleUnauthorized is the 401 response interceptor: invalidate the
// session, then redirect to login. The caller still receives the error.
func (c *Client) handleUnauthorized(apiErr *Error) {
	c.mu.RLock()
	invalidate, navigator := c.onUnauthorized, c.navigator
	c.mu.RUnlock()

	if invalidate != nil {
		invalidate(fmt.Sprintf("%s %s returned 401", apiErr.Method, apiErr.Path))
	}
	if navigator != nil {
		navigator.Navigate(c.loginPath)
	}
}
