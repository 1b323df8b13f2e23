// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the board services.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// Sentinel errors for common failure classes. API calls return
// *APIError values that match these through errors.Is.
var (
	// ErrNetwork wraps transport-level failures: DNS, refused
	// connections, timeouts. No HTTP response was received.
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized covers 401 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is the login-specific 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation covers 400 responses, the server rejected the
	// request body (blank content, missing fields).
	ErrValidation = errors.New("validation failed")

	// ErrConflict covers 409 responses (duplicate username/email).
	ErrConflict = errors.New("conflict")

	// ErrNotFound covers 404 responses.
	ErrNotFound = errors.New("not found")
)

// APIError is an error response from the backend. Status is the HTTP
// status code, or 0 when the request never reached the server.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api: %s (HTTP %d)", e.Message, e.Status)
}

// Is maps status codes onto the sentinel errors so callers can branch
// with errors.Is without inspecting codes.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Status == 0
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrValidation:
		return e.Status == http.StatusBadRequest
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// =============================================================================
// CLIENT
// =============================================================================

// maxResponseSize caps response bodies at 1MB.
// SECURITY: prevents memory exhaustion from a misbehaving server.
const maxResponseSize = 1 << 20

// DefaultTimeout bounds each request when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// TokenFunc supplies the current auth token for forum requests. It is
// called per request so a login mid-session takes effect immediately.
type TokenFunc func() string

// Client talks to the three board services. The base URLs are separate
// because the services deploy independently.
type Client struct {
	boardURL   string
	authURL    string
	forumURL   string
	httpClient *http.Client
	tokenFunc  TokenFunc
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenFunc sets the auth token source for forum requests.
func WithTokenFunc(fn TokenFunc) Option {
	return func(c *Client) {
		c.tokenFunc = fn
	}
}

// NewClient creates a client for the given service base URLs.
func NewClient(boardURL, authURL, forumURL string, opts ...Option) *Client {
	c := &Client{
		boardURL:   boardURL,
		authURL:    authURL,
		forumURL:   forumURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokenFunc:  func() string { return "guest" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// errorBody is the backend's uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// doJSON performs one request. body is marshaled when non-nil, the
// response is unmarshaled into out when non-nil and the status is 2xx.
// authed adds the X-Auth-Token header required by the forum service.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out any, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("build request: %v", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		// The forum service requires the header even for reads; the
		// client sends the guest sentinel when nobody is logged in.
		req.Header.Set("X-Auth-Token", c.tokenFunc())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return nil
}

// handleErrorResponse turns a non-2xx response into an *APIError. The
// backend sends {"error": "..."}; anything else falls back to the HTTP
// status text so the user always sees something meaningful.
func (c *Client) handleErrorResponse(status int, data []byte) error {
	var body errorBody
	msg := ""
	if err := json.Unmarshal(data, &body); err == nil {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}
