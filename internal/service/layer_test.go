package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftapp/drift-server/internal/domain"
	"github.com/driftapp/drift-server/internal/service"
	"github.com/driftapp/drift-server/internal/store"
)

func TestLayerCreate_DefaultsToCommentary(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	svc := service.NewLayerService(s, discardLogger())

	title := "Gloss on the invocation"
	layer, err := svc.Create(context.Background(), "user-1", domain.LayerPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, domain.LayerTypeCommentary, layer.Type)
	require.Equal(t, "user-1", layer.UserID)
}

func TestLayerList_TypeFilter(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	svc := service.NewLayerService(s, discardLogger())

	commentary := "A commentary"
	translation := "A translation"
	translationType := domain.LayerTypeTranslation

	_, err := svc.Create(context.Background(), "user-1", domain.LayerPatch{Title: &commentary})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "user-1", domain.LayerPatch{Title: &translation, Type: &translationType})
	require.NoError(t, err)

	layers, err := svc.List(context.Background(), "user-1", store.LayerFilter{Type: domain.LayerTypeTranslation})
	require.NoError(t, err)
	require.Len(t, layers, 1)
	require.Equal(t, "A translation", layers[0].Title)

	// Layers have no fallback: an empty filtered result stays empty.
	layers, err = svc.List(context.Background(), "user-1", store.LayerFilter{Type: domain.LayerTypeCrossRef})
	require.NoError(t, err)
	require.Empty(t, layers)
}
