// Package handler is the transport adapter: it parses inbound HTTP
// requests, delegates to the services, and serializes results and errors.
// No business rule lives here — handlers only know how to translate
// between HTTP and the service layer's types.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bfarias-dev/movienotes/internal/apperror"
)

// ErrorResponse is the standard failure shape returned by every endpoint:
// a machine-readable status and a human-readable message.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code. Headers must
// be set before the first write — Encode writes, so order matters.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already went out; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and sends it.
//
// The taxonomy classes map 1:1 onto 4xx codes. Anything outside the
// taxonomy (storage or connectivity failures) becomes a generic 500 with
// no detail leaked to the caller — the underlying error is logged for
// operators instead.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		statusLabel := "error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			statusLabel = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			statusLabel = "not_found"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			statusLabel = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			statusLabel = "conflict"
		}

		writeJSON(w, status, ErrorResponse{
			Status:  statusLabel,
			Message: appErr.Message,
		})
		return
	}

	// Unclassified failure: log it, hide it.
	slog.Error("unclassified error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Status:  "error",
		Message: "internal server error",
	})
}
