package client

import (
	"context"
	"net/http"
	"net/url"
)

// ListLibrary returns the caller's library items.
func (c *Client) ListLibrary(ctx context.Context) ([]LibraryItem, error) {
	return getItems[LibraryItem](ctx, c, "/library")
}

// Collect upserts a library item for refID and returns its current state.
// Collect calls share one URL, so the dedup key carries the refId: identical
// concurrent collects collapse, collects for different refs do not.
func (c *Client) Collect(ctx context.Context, refID string, params CollectParams) (*LibraryItem, error) {
	key := "POST /library/collect " + refID
	return getItem[LibraryItem](ctx, c, key, http.MethodPost, "/library/collect", collectRequest{
		RefID:         refID,
		CollectParams: params,
	})
}

// GetLibraryItem returns the item for refID, from the store or the catalog.
func (c *Client) GetLibraryItem(ctx context.Context, refID string) (*LibraryItem, error) {
	return getItem[LibraryItem](ctx, c, "", http.MethodGet, "/library/items/"+url.PathEscape(refID), nil)
}

// DeleteLibraryItem removes the caller's item for refID.
func (c *Client) DeleteLibraryItem(ctx context.Context, refID string) error {
	_, err := c.do(ctx, "", http.MethodDelete, "/library/items/"+url.PathEscape(refID), nil)
	return err
}
