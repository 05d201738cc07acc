package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/driftapp/drift-server/internal/domain"
	"github.com/driftapp/drift-server/internal/http/response"
)

// CollectRequest is the request body for collecting a ref into the library.
// Everything beyond refId is optional; unsupplied fields are left untouched
// on merge and defaulted on insert.
type CollectRequest struct {
	RefID    string             `json:"refId" validate:"required"`
	RefType  *domain.SourceType `json:"refType,omitempty" validate:"omitempty,oneof=Book Article WhitePaper Abstract"`
	Title    *string            `json:"title,omitempty"`
	Author   *string            `json:"author,omitempty"`
	CoverURL *string            `json:"coverUrl,omitempty"`
	Meta     map[string]any     `json:"meta,omitempty"`
}

// handleListLibraryItems returns the user's library items, newest first.
func (s *Server) handleListLibraryItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	items, err := s.libraryService.List(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list library items", "error", err, "user_id", userID)
		response.InternalError(w, "Failed to retrieve library items", s.logger)
		return
	}

	response.Items(w, items, s.logger)
}

// handleCollect upserts a library item for (user, refId) and returns its
// current state. Collecting the same ref twice leaves one item.
func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	var req CollectRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.validator.Validate(&req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	patch := domain.LibraryItemPatch{
		RefType:  req.RefType,
		Title:    req.Title,
		Author:   req.Author,
		CoverURL: req.CoverURL,
		Meta:     req.Meta,
	}

	item, err := s.libraryService.Collect(ctx, userID, req.RefID, patch)
	if err != nil {
		s.logger.Error("Failed to collect library item", "error", err, "user_id", userID, "ref_id", req.RefID)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Item(w, item, s.logger)
}

// handleGetLibraryItemByRef returns the item carrying refId, falling back to
// the external catalog when nothing is stored. Both "nowhere to be found"
// and "catalog down" surface as 404.
func (s *Server) handleGetLibraryItemByRef(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	refID := chi.URLParam(r, "refId")

	item, err := s.libraryService.GetByRef(ctx, refID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Item(w, item, s.logger)
}

// handleDeleteLibraryItem removes the authenticated user's item for refId.
func (s *Server) handleDeleteLibraryItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	refID := chi.URLParam(r, "refId")

	if err := s.libraryService.Delete(ctx, userID, refID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.OK(w, s.logger)
}
