package catalog_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftapp/drift-server/internal/catalog"
)

func TestGetBook_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/books/ashtanga-hridaya", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ashtanga-hridaya","name":"Ashtanga Hridaya","authorName":"Vagbhata","profileUrl":"https://covers.example.com/ah.jpg","pages":412}`))
	}))
	defer server.Close()

	c := catalog.NewClient(server.URL, slog.New(slog.DiscardHandler))

	book, err := c.GetBook(context.Background(), "ashtanga-hridaya")
	require.NoError(t, err)
	require.Equal(t, "Ashtanga Hridaya", book.Name)
	require.Equal(t, "Vagbhata", book.AuthorName)
	require.Equal(t, 412, book.Pages)
}

func TestGetBook_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := catalog.NewClient(server.URL, slog.New(slog.DiscardHandler))

	_, err := c.GetBook(context.Background(), "missing")
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestGetBook_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := catalog.NewClient(server.URL, slog.New(slog.DiscardHandler))

	_, err := c.GetBook(context.Background(), "any")
	require.Error(t, err)
	require.NotErrorIs(t, err, catalog.ErrNotFound)
}

func TestGetBook_EscapesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/books/odd%2Fref", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"id":"odd/ref","name":"Odd"}`))
	}))
	defer server.Close()

	c := catalog.NewClient(server.URL, slog.New(slog.DiscardHandler))

	book, err := c.GetBook(context.Background(), "odd/ref")
	require.NoError(t, err)
	require.Equal(t, "Odd", book.Name)
}
