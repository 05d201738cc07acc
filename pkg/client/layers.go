package client

import (
	"context"
	"net/http"
	"net/url"
)

// ListLayers returns the caller's layers, optionally filtered by free text
// and type.
func (c *Client) ListLayers(ctx context.Context, query, layerType string) ([]Layer, error) {
	path := "/layers"

	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if layerType != "" {
		params.Set("type", layerType)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	return getItems[Layer](ctx, c, path)
}

// CreateLayer creates a new layer.
func (c *Client) CreateLayer(ctx context.Context, params LayerParams) (*Layer, error) {
	return getItem[Layer](ctx, c, "", http.MethodPost, "/layers", params)
}

// GetLayer returns a single layer by id.
func (c *Client) GetLayer(ctx context.Context, id string) (*Layer, error) {
	return getItem[Layer](ctx, c, "", http.MethodGet, "/layers/"+url.PathEscape(id), nil)
}

// UpdateLayer applies a partial update to a layer.
func (c *Client) UpdateLayer(ctx context.Context, id string, params LayerParams) (*Layer, error) {
	return getItem[Layer](ctx, c, "", http.MethodPatch, "/layers/"+url.PathEscape(id), params)
}

// DeleteLayer removes a layer.
func (c *Client) DeleteLayer(ctx context.Context, id string) error {
	_, err := c.do(ctx, "", http.MethodDelete, "/layers/"+url.PathEscape(id), nil)
	return err
}
