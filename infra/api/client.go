// Package api talks to the tradefeed backend over HTTP and websocket.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/CrestNiraj12/tradefeed/app"
	"github.com/CrestNiraj12/tradefeed/domain"
	"github.com/CrestNiraj12/tradefeed/infra/auth"
)

const defaultTimeout = 15 * time.Second

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Unwrap maps 401/403 onto domain.ErrUnauthorized.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden {
		return domain.ErrUnauthorized
	}
	return nil
}

// Client is a thin HTTP wrapper for the backend API.
// It handles base URL construction, bearer token and idempotency headers.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
}

// NewClient creates a backend API client.
func NewClient(baseURL string, tp auth.TokenProvider) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tp,
		http:          &http.Client{Timeout: defaultTimeout},
	}
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path)
}

// Post performs an authenticated POST request without a body.
func (c *Client) Post(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path)
}

// Delete performs an authenticated DELETE request.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path)
}

// requestHeaders builds the auth and idempotency headers shared by HTTP and
// websocket requests. An empty token sends no Authorization header.
func requestHeaders(ctx context.Context, tp auth.TokenProvider) (http.Header, error) {
	h := make(http.Header)
	if tp != nil {
		token, err := tp.AccessToken()
		if err != nil {
			return nil, fmt.Errorf("auth: %w", err)
		}
		if token != "" {
			h.Set("Authorization", "Bearer "+token)
		}
	}
	if key, ok := app.IdempotencyKey(ctx); ok {
		h.Set("Idempotency-Key", key)
	}
	return h, nil
}

func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	header, err := requestHeaders(ctx, c.tokenProvider)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = header
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(data)}
	}

	return data, nil
}

// IsStatus reports whether err carries a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
