package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftapp/drift-server/internal/catalog"
	"github.com/driftapp/drift-server/internal/domain"
	"github.com/driftapp/drift-server/internal/service"
	"github.com/driftapp/drift-server/internal/store"
)

// stubCatalog serves a canned record or error.
type stubCatalog struct {
	book *catalog.Book
	err  error
}

func (c stubCatalog) GetBook(_ context.Context, id string) (*catalog.Book, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.book == nil || c.book.ID != id {
		return nil, catalog.ErrNotFound
	}
	return c.book, nil
}

func strPtr(s string) *string { return &s }

func TestCollect_Idempotent(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	svc := service.NewLibraryService(s, nil, discardLogger())

	patch := domain.LibraryItemPatch{Title: strPtr("Ashtanga Hridaya")}

	first, err := svc.Collect(context.Background(), "user-1", "ashtanga-hridaya", patch)
	require.NoError(t, err)

	second, err := svc.Collect(context.Background(), "user-1", "ashtanga-hridaya", patch)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	items, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCollect_PartialUpdate(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	svc := service.NewLibraryService(s, nil, discardLogger())

	_, err := svc.Collect(context.Background(), "user-1", "ref-1", domain.LibraryItemPatch{
		Title:  strPtr("Original"),
		Author: strPtr("Vagbhata"),
	})
	require.NoError(t, err)

	item, err := svc.Collect(context.Background(), "user-1", "ref-1", domain.LibraryItemPatch{
		Title: strPtr("Updated"),
	})
	require.NoError(t, err)
	require.Equal(t, "Updated", item.Title)
	require.Equal(t, "Vagbhata", item.Author)
}

func TestGetByRef_StoreHit(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	// Catalog would error if consulted; a store hit must not reach it.
	svc := service.NewLibraryService(s, stubCatalog{err: errors.New("catalog must not be called")}, discardLogger())

	_, err := svc.Collect(context.Background(), "user-1", "ref-1", domain.LibraryItemPatch{
		Title: strPtr("Stored"),
	})
	require.NoError(t, err)

	item, err := svc.GetByRef(context.Background(), "ref-1")
	require.NoError(t, err)
	require.Equal(t, "Stored", item.Title)
}

func TestGetByRef_CatalogFallbackReshape(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	svc := service.NewLibraryService(s, stubCatalog{book: &catalog.Book{
		ID:         "ashtanga-hridaya",
		Name:       "Ashtanga Hridaya",
		AuthorName: "Vagbhata",
		ProfileURL: "https://covers.example.com/ah.jpg",
		Pages:      412,
	}}, discardLogger())

	item, err := svc.GetByRef(context.Background(), "ashtanga-hridaya")
	require.NoError(t, err)
	require.Equal(t, "ashtanga-hridaya", item.RefID)
	require.Equal(t, domain.SourceTypeBook, item.RefType)
	require.Equal(t, "Ashtanga Hridaya", item.Title)
	require.Equal(t, "Vagbhata", item.Author)
	require.Equal(t, "https://covers.example.com/ah.jpg", item.CoverURL)
	require.Equal(t, 412, item.Meta["pages"])

	// Read-through only: nothing was persisted.
	_, err = s.GetLibraryItemByRef(context.Background(), "ashtanga-hridaya")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetByRef_AllSourcesMiss(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	svc := service.NewLibraryService(s, stubCatalog{}, discardLogger())

	_, err := svc.GetByRef(context.Background(), "missing-ref")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetByRef_CatalogFailureDegradesToNotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	svc := service.NewLibraryService(s, stubCatalog{err: errors.New("catalog down")}, discardLogger())

	_, err := svc.GetByRef(context.Background(), "ref-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetByRef_NoCatalogConfigured(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	svc := service.NewLibraryService(s, nil, discardLogger())

	_, err := svc.GetByRef(context.Background(), "ref-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestLibraryDelete(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	svc := service.NewLibraryService(s, nil, discardLogger())

	_, err := svc.Collect(context.Background(), "user-1", "ref-1", domain.LibraryItemPatch{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "user-1", "ref-1"))

	items, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Empty(t, items)
}
