package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/driftapp/drift-server/internal/http/response"
)

// SessionRequest is the request body for exchanging a token for an identity.
type SessionRequest struct {
	Token string `json:"token"`
}

// SessionResponse carries the verified identity.
type SessionResponse struct {
	UserID string `json:"userId"`
}

// handleCreateSession verifies a client token and returns the identity it
// resolves to. A missing token is a 400, a bad one a 401.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if req.Token == "" {
		response.BadRequest(w, "Token is required", s.logger)
		return
	}

	identity, err := s.verifier.VerifyToken(r.Context(), req.Token)
	if err != nil {
		response.Unauthorized(w, "Invalid or expired token", s.logger)
		return
	}

	response.JSON(w, http.StatusOK, SessionResponse{UserID: identity.UserID}, s.logger)
}
