// Package response provides standardized HTTP response formatting and error handling utilities.
package response

import (
	"encoding/json/v2"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/driftapp/drift-server/internal/errors"
	"github.com/driftapp/drift-server/internal/store"
)

// itemEnvelope wraps a single entity: {"item": ...}.
type itemEnvelope struct {
	Item any `json:"item"`
}

// itemsEnvelope wraps a list: {"items": [...]}.
type itemsEnvelope struct {
	Items any `json:"items"`
}

// okEnvelope acknowledges a mutation with no body: {"ok": true}.
type okEnvelope struct {
	OK bool `json:"ok"`
}

// errorEnvelope carries a user-facing error message: {"error": "..."}.
type errorEnvelope struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code using json/v2.
func JSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	// json/v2 MarshalWrite doesn't add a newline, but that's fine for HTTP responses.
	if err := json.MarshalWrite(w, payload); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Item writes a single entity (200 OK).
func Item(w http.ResponseWriter, item any, logger *slog.Logger) {
	JSON(w, http.StatusOK, itemEnvelope{Item: item}, logger)
}

// CreatedItem writes a single entity (201 Created).
func CreatedItem(w http.ResponseWriter, item any, logger *slog.Logger) {
	JSON(w, http.StatusCreated, itemEnvelope{Item: item}, logger)
}

// Items writes a list of entities (200 OK).
func Items(w http.ResponseWriter, items any, logger *slog.Logger) {
	JSON(w, http.StatusOK, itemsEnvelope{Items: items}, logger)
}

// OK acknowledges a mutation that returns no entity.
func OK(w http.ResponseWriter, logger *slog.Logger) {
	JSON(w, http.StatusOK, okEnvelope{OK: true}, logger)
}

// Error writes an error response with the given status code.
func Error(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	JSON(w, status, errorEnvelope{Error: message}, logger)
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusBadRequest, message, logger)
}

// Unauthorized writes a 401 Unauthorized response.
func Unauthorized(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusUnauthorized, message, logger)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusNotFound, message, logger)
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusInternalServerError, message, logger)
}

// HandleError writes an appropriate HTTP response based on the error type.
// Store and domain errors are mapped to their HTTP codes, unknown errors
// become 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		Error(w, storeErr.HTTPCode(), storeErr.Message, logger)
		return
	}

	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		Error(w, domainErr.HTTPStatus(), domainErr.Message, logger)
		return
	}

	// Unknown error = 500
	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	InternalError(w, "internal server error", logger)
}
