package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/driftapp/drift-server/internal/domain"
	"github.com/driftapp/drift-server/internal/http/response"
	"github.com/driftapp/drift-server/internal/store"
)

// handleListLayers returns the user's layers, newest first. Supports ?q=
// (free-text) and ?type= filters. Layers have no fallback source.
func (s *Server) handleListLayers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	filter := store.LayerFilter{
		Query: r.URL.Query().Get("q"),
		Type:  domain.LayerType(r.URL.Query().Get("type")),
	}
	if filter.Type != "" && !filter.Type.Valid() {
		response.BadRequest(w, "Invalid type filter", s.logger)
		return
	}

	layers, err := s.layerService.List(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list layers", "error", err, "user_id", userID)
		response.InternalError(w, "Failed to retrieve layers", s.logger)
		return
	}

	response.Items(w, layers, s.logger)
}

// handleCreateLayer creates a new layer from a partial body.
func (s *Server) handleCreateLayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	var patch domain.LayerPatch
	if err := json.UnmarshalRead(r.Body, &patch); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.validator.Validate(&patch); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	layer, err := s.layerService.Create(ctx, userID, patch)
	if err != nil {
		s.logger.Error("Failed to create layer", "error", err, "user_id", userID)
		response.HandleError(w, err, s.logger)
		return
	}

	response.CreatedItem(w, layer, s.logger)
}

// handleGetLayer returns a single layer owned by the authenticated user.
func (s *Server) handleGetLayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	layerID := chi.URLParam(r, "id")

	layer, err := s.layerService.Get(ctx, userID, layerID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Item(w, layer, s.logger)
}

// handleUpdateLayer applies a partial update to a layer.
func (s *Server) handleUpdateLayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	layerID := chi.URLParam(r, "id")

	var patch domain.LayerPatch
	if err := json.UnmarshalRead(r.Body, &patch); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.validator.Validate(&patch); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	layer, err := s.layerService.Update(ctx, userID, layerID, patch)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Item(w, layer, s.logger)
}

// handleDeleteLayer removes a layer. Hard delete.
func (s *Server) handleDeleteLayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	layerID := chi.URLParam(r, "id")

	if err := s.layerService.Delete(ctx, userID, layerID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.OK(w, s.logger)
}
