// Package catalog provides access to the external book catalog used as the
// last source in the library item fallback chain.
package catalog

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the catalog has no entry for the given id.
var ErrNotFound = errors.New("catalog: entry not found")

// Book is a catalog record as served by the upstream API.
type Book struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AuthorName string `json:"authorName"`
	ProfileURL string `json:"profileUrl"`
	Pages      int    `json:"pages"`
}

// Client provides access to the catalog API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new catalog client.
// Rate limited to one request per second with a small burst, since the
// catalog is a shared upstream and lookups only happen on cache misses.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
		logger:      logger,
	}
}

// GetBook fetches a catalog entry by its id.
// Returns ErrNotFound when the catalog answers 404.
func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	lookupURL := c.baseURL + "/books/" + url.PathEscape(id)

	c.logger.Debug("catalog lookup",
		"ref_id", id,
		"url", lookupURL,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("catalog lookup failed: status %d", resp.StatusCode)
	}

	var book Book
	if err := json.UnmarshalRead(resp.Body, &book); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &book, nil
}
