package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhnasim333/smart-task-manager/internal/logging"
	"github.com/nhnasim333/smart-task-manager/types"
)

// DefaultRequestTimeout bounds a single request when no custom HTTP
// client is supplied.
const DefaultRequestTimeout = 15 * time.Second

// TokenFunc supplies the current bearer token for outgoing requests. An
// empty return means no credential is attached.
type TokenFunc func() string

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client, replacing the default one and
// its timeout.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithTokenFunc sets the bearer token source.
func WithTokenFunc(token TokenFunc) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger sets the logger instance.
func WithLogger(logger types.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client is a typed client for the task manager REST backend.
//
// Thread Safety: safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   TokenFunc
	logger  types.Logger
}

// NewClient creates a REST client for the given base URL.
//
// Parameters:
//   - baseURL: Backend base URL, e.g. "https://api.example.com/api/v1";
//     a trailing slash is tolerated
//   - opts: Optional configuration (custom HTTP client, token source,
//     logger)
//
// Returns:
//   - *Client: Ready-to-use client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: DefaultRequestTimeout},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// errorBody is the server's structured error payload.
type errorBody struct {
	Message string `json:"message"`
}

// validatable is implemented by response types that carry shape checks.
type validatable interface {
	Validate() error
}

// do issues one JSON request and decodes the response into out.
//
// out may be nil for endpoints whose response body is irrelevant. When
// out implements Validate, a malformed 2xx payload is rejected as
// types.ErrMalformedResponse.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return &types.RequestError{Kind: types.ErrTransport, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(method, path, resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &types.RequestError{
			Kind:   types.ErrMalformedResponse,
			Status: resp.StatusCode,
			Cause:  fmt.Errorf("decode %s %s response: %w", method, path, err),
		}
	}

	if v, ok := out.(validatable); ok {
		if err := v.Validate(); err != nil {
			return &types.RequestError{
				Kind:   types.ErrMalformedResponse,
				Status: resp.StatusCode,
				Cause:  err,
			}
		}
	}

	return nil
}

// statusError maps a non-2xx response onto the error taxonomy, carrying
// the server's structured message when one is present.
func (c *Client) statusError(method, path string, resp *http.Response) error {
	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &body)

	kind := types.ErrServer
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		kind = types.ErrAuth
	case http.StatusNotFound:
		kind = types.ErrNotFound
	}

	c.logger.Warn("server rejected request",
		"method", method, "path", path,
		"status", resp.StatusCode, "message", body.Message)

	return &types.RequestError{Kind: kind, Status: resp.StatusCode, Message: body.Message}
}

// validateAll runs Validate over every element of a decoded list.
func validateAll[T validatable](items []T) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return &types.RequestError{
				Kind:  types.ErrMalformedResponse,
				Cause: err,
			}
		}
	}

	return nil
}
