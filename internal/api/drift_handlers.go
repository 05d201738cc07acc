package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/driftapp/drift-server/internal/domain"
	"github.com/driftapp/drift-server/internal/http/response"
	"github.com/driftapp/drift-server/internal/store"
)

// handleListDrifts returns the user's drifts, newest first. Supports ?q=
// (free-text) and ?status= filters; the unfiltered empty case falls back to
// the reshaped legacy notes.
func (s *Server) handleListDrifts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	filter := store.DriftFilter{
		Query:  r.URL.Query().Get("q"),
		Status: domain.DriftStatus(r.URL.Query().Get("status")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		response.BadRequest(w, "Invalid status filter", s.logger)
		return
	}

	drifts, err := s.driftService.List(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list drifts", "error", err, "user_id", userID)
		response.InternalError(w, "Failed to retrieve drifts", s.logger)
		return
	}

	response.Items(w, drifts, s.logger)
}

// handleCreateDrift creates a new drift from a partial body.
func (s *Server) handleCreateDrift(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	var patch domain.DriftPatch
	if err := json.UnmarshalRead(r.Body, &patch); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.validator.Validate(&patch); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	drift, err := s.driftService.Create(ctx, userID, patch)
	if err != nil {
		s.logger.Error("Failed to create drift", "error", err, "user_id", userID)
		response.HandleError(w, err, s.logger)
		return
	}

	response.CreatedItem(w, drift, s.logger)
}

// handleGetDrift returns a single drift owned by the authenticated user.
func (s *Server) handleGetDrift(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	driftID := chi.URLParam(r, "id")

	drift, err := s.driftService.Get(ctx, userID, driftID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Item(w, drift, s.logger)
}

// handleUpdateDrift applies a partial update to a drift.
func (s *Server) handleUpdateDrift(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	driftID := chi.URLParam(r, "id")

	var patch domain.DriftPatch
	if err := json.UnmarshalRead(r.Body, &patch); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.validator.Validate(&patch); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	drift, err := s.driftService.Update(ctx, userID, driftID, patch)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Item(w, drift, s.logger)
}

// handleDeleteDrift removes a drift. Hard delete.
func (s *Server) handleDeleteDrift(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	driftID := chi.URLParam(r, "id")

	if err := s.driftService.Delete(ctx, userID, driftID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.OK(w, s.logger)
}
