// Package client provides a Go client for the drift server API.
//
// All outbound calls pass through a singleflight group keyed by method and
// URL, so concurrent identical requests collapse into one network call. Keys
// are dropped as soon as the shared call settles, successful or not; there is
// no result caching beyond the in-flight window.
package client

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client talks to a drift server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	group      singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a client for the server at baseURL (e.g.
// "http://localhost:8080/api/v1").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// itemEnvelope mirrors the server's {"item": ...} wrapper.
type itemEnvelope[T any] struct {
	Item T `json:"item"`
}

// itemsEnvelope mirrors the server's {"items": [...]} wrapper.
type itemsEnvelope[T any] struct {
	Items []T `json:"items"`
}

// errorEnvelope mirrors the server's {"error": "..."} wrapper.
type errorEnvelope struct {
	Error string `json:"error"`
}

// do executes a request through the singleflight group. key defaults to
// method+URL; callers with identical URLs but distinct intents supply their
// own. The raw response body is shared between collapsed callers; each caller
// unmarshals its own copy.
func (c *Client) do(ctx context.Context, key, method, path string, body any) ([]byte, error) {
	url := c.baseURL + path
	if key == "" {
		key = method + " " + url
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.roundTrip(ctx, method, url, body)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// roundTrip performs one HTTP exchange and maps non-2xx responses to APIError.
func (c *Client) roundTrip(ctx context.Context, method, url string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope errorEnvelope
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
		}
		return nil, apiErr
	}

	return data, nil
}

// getItem fetches and unwraps a single entity.
func getItem[T any](ctx context.Context, c *Client, key, method, path string, body any) (*T, error) {
	data, err := c.do(ctx, key, method, path, body)
	if err != nil {
		return nil, err
	}

	var envelope itemEnvelope[T]
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &envelope.Item, nil
}

// getItems fetches and unwraps a list of entities.
func getItems[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	data, err := c.do(ctx, "", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var envelope itemsEnvelope[T]
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return envelope.Items, nil
}

// CreateSession exchanges a token for the identity it resolves to.
func (c *Client) CreateSession(ctx context.Context, token string) (string, error) {
	data, err := c.do(ctx, "", http.MethodPost, "/auth/session", map[string]string{"token": token})
	if err != nil {
		return "", err
	}

	var session struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(data, &session); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	return session.UserID, nil
}
