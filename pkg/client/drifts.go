package client

import (
	"context"
	"net/http"
	"net/url"
)

// ListDrifts returns the caller's drifts, optionally filtered by free text
// and status.
func (c *Client) ListDrifts(ctx context.Context, query, status string) ([]Drift, error) {
	path := "/drifts"

	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if status != "" {
		params.Set("status", status)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	return getItems[Drift](ctx, c, path)
}

// CreateDrift creates a new drift.
func (c *Client) CreateDrift(ctx context.Context, params DriftParams) (*Drift, error) {
	return getItem[Drift](ctx, c, "", http.MethodPost, "/drifts", params)
}

// GetDrift returns a single drift by id.
func (c *Client) GetDrift(ctx context.Context, id string) (*Drift, error) {
	return getItem[Drift](ctx, c, "", http.MethodGet, "/drifts/"+url.PathEscape(id), nil)
}

// UpdateDrift applies a partial update to a drift.
func (c *Client) UpdateDrift(ctx context.Context, id string, params DriftParams) (*Drift, error) {
	return getItem[Drift](ctx, c, "", http.MethodPatch, "/drifts/"+url.PathEscape(id), params)
}

// DeleteDrift removes a drift.
func (c *Client) DeleteDrift(ctx context.Context, id string) error {
	_, err := c.do(ctx, "", http.MethodDelete, "/drifts/"+url.PathEscape(id), nil)
	return err
}
