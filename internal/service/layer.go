package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/driftapp/drift-server/internal/domain"
	"github.com/driftapp/drift-server/internal/id"
	"github.com/driftapp/drift-server/internal/store"
)

// LayerService manages layers. Layers have no fallback source; an empty
// primary result is the final answer.
type LayerService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewLayerService creates a layer service.
func NewLayerService(st *store.Store, logger *slog.Logger) *LayerService {
	return &LayerService{
		store:  st,
		logger: logger,
	}
}

// Create stores a new layer for userID from the supplied fields.
func (s *LayerService) Create(ctx context.Context, userID string, patch domain.LayerPatch) (*domain.Layer, error) {
	layerID, err := id.Generate("layer")
	if err != nil {
		return nil, fmt.Errorf("generate layer ID: %w", err)
	}

	layer := &domain.Layer{
		ID:     layerID,
		UserID: userID,
		Type:   domain.LayerTypeCommentary,
	}
	patch.Apply(layer)

	if err := s.store.CreateLayer(ctx, layer); err != nil {
		return nil, err
	}

	s.logger.Info("layer created",
		"layer_id", layer.ID,
		"user_id", userID,
	)

	return layer, nil
}

// Get retrieves a layer owned by userID.
func (s *LayerService) Get(ctx context.Context, userID, layerID string) (*domain.Layer, error) {
	return s.store.GetLayer(ctx, layerID, userID)
}

// Update applies a partial update to a layer owned by userID.
func (s *LayerService) Update(ctx context.Context, userID, layerID string, patch domain.LayerPatch) (*domain.Layer, error) {
	layer, err := s.store.GetLayer(ctx, layerID, userID)
	if err != nil {
		return nil, err
	}

	patch.Apply(layer)

	if err := s.store.UpdateLayer(ctx, layer); err != nil {
		return nil, err
	}
	return layer, nil
}

// Delete removes a layer owned by userID.
func (s *LayerService) Delete(ctx context.Context, userID, layerID string) error {
	return s.store.DeleteLayer(ctx, layerID, userID)
}

// List returns the user's layers matching the filter, newest first.
func (s *LayerService) List(ctx context.Context, userID string, filter store.LayerFilter) ([]*domain.Layer, error) {
	return s.store.ListLayers(ctx, userID, filter)
}
