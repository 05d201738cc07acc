package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/driftapp/drift-server/internal/catalog"
	"github.com/driftapp/drift-server/internal/domain"
	"github.com/driftapp/drift-server/internal/resolve"
	"github.com/driftapp/drift-server/internal/store"
)

// Catalog is the external book catalog consulted when a ref has no stored
// library item. *catalog.Client satisfies it; tests substitute stubs.
type Catalog interface {
	GetBook(ctx context.Context, id string) (*catalog.Book, error)
}

// LibraryService manages library items, the collect upsert, and the catalog
// fallback for single-item lookups.
type LibraryService struct {
	store   *store.Store
	catalog Catalog
	logger  *slog.Logger
}

// NewLibraryService creates a library service. catalog may be nil when no
// catalog is configured; single-item lookup then skips the fallback.
func NewLibraryService(st *store.Store, cat Catalog, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		store:   st,
		catalog: cat,
		logger:  logger,
	}
}

// Collect ensures a library item exists for (userID, refID), merging the
// supplied fields into an existing item or inserting a new one, then returns
// the item's current state. The read-back is a separate, non-snapshot read:
// under concurrent collects it reflects the latest committed state, which may
// include another writer's fields.
func (s *LibraryService) Collect(ctx context.Context, userID, refID string, patch domain.LibraryItemPatch) (*domain.LibraryItem, error) {
	if err := s.store.UpsertLibraryItem(ctx, userID, refID, patch); err != nil {
		return nil, err
	}

	item, err := s.store.GetLibraryItemByUserRef(ctx, userID, refID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("library item collected",
		"item_id", item.ID,
		"user_id", userID,
		"ref_id", refID,
	)

	return item, nil
}

// List returns the user's library items, newest first.
func (s *LibraryService) List(ctx context.Context, userID string) ([]*domain.LibraryItem, error) {
	return s.store.ListLibraryItems(ctx, userID)
}

// Delete removes the item for (userID, refID).
func (s *LibraryService) Delete(ctx context.Context, userID, refID string) error {
	return s.store.DeleteLibraryItem(ctx, userID, refID)
}

// GetByRef returns the library item carrying refID, regardless of owner.
// When no stored item matches, the external catalog is consulted and its
// record reshaped; the result is served read-through and not persisted.
// A catalog failure degrades to not-found.
func (s *LibraryService) GetByRef(ctx context.Context, refID string) (*domain.LibraryItem, error) {
	item, err := s.store.GetLibraryItemByRef(ctx, refID)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	res := s.catalogItem(ctx, refID)
	switch res.Status {
	case resolve.Found:
		return res.Value, nil
	case resolve.Unavailable:
		s.logger.Warn("catalog unavailable, serving not found",
			"ref_id", refID,
			"error", res.Err,
		)
	}
	return nil, store.ErrNotFound
}

// catalogItem consults the external catalog and reshapes the record.
func (s *LibraryService) catalogItem(ctx context.Context, refID string) resolve.Result[*domain.LibraryItem] {
	if s.catalog == nil {
		return resolve.Miss[*domain.LibraryItem]()
	}

	book, err := s.catalog.GetBook(ctx, refID)
	if errors.Is(err, catalog.ErrNotFound) {
		return resolve.Miss[*domain.LibraryItem]()
	}
	if err != nil {
		return resolve.Failed[*domain.LibraryItem](err)
	}

	return resolve.Hit(itemFromCatalog(book))
}

// itemFromCatalog reshapes a catalog record into the canonical library item
// shape. The record has no owner and no timestamps; it was never stored.
func itemFromCatalog(b *catalog.Book) *domain.LibraryItem {
	item := &domain.LibraryItem{
		RefID:    b.ID,
		RefType:  domain.SourceTypeBook,
		Title:    b.Name,
		Author:   b.AuthorName,
		CoverURL: b.ProfileURL,
	}
	if b.Pages > 0 {
		item.Meta = map[string]any{"pages": b.Pages}
	}
	return item
}
