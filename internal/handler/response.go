// Package handler contains the HTTP layer: request parsing, response
// writing, and the mapping from domain errors to status codes. Handlers
// hold no business logic; they translate between HTTP and the service
// layer.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/auth"
	"github.com/Priyanshu055/intern-match-backend/internal/policy"
)

// ErrorResponse is the error shape every endpoint returns: a
// machine-readable type and a human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON sends data with the given status. Headers must be set before
// the first body write, so the order here is fixed.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status. The service layer
// returns apperror sentinels (possibly wrapped); errors.Is walks the
// chain, so wrapping with fmt.Errorf %w along the way doesn't break the
// mapping. Anything without a recognized sentinel becomes an opaque 500;
// raw error text never reaches the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrStorage):
			status = http.StatusBadRequest
			errorType = "upload_rejected"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			// Duplicates share the 400 status with validation failures;
			// the error type is what tells the two apart.
			status = http.StatusBadRequest
			errorType = "conflict"
		}

		writeJSON(w, status, ErrorResponse{Error: errorType, Message: appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// requestActor pulls the authenticated actor out of the context. A
// missing actor on a protected route means the middleware wasn't applied;
// respond 401 rather than panic.
func requestActor(w http.ResponseWriter, r *http.Request) (policy.Actor, bool) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return policy.Actor{}, false
	}
	return actor, true
}

// decodeJSON reads the request body into dst, rejecting malformed input
// with a validation error the caller can pass straight to writeError.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "request body must be valid JSON")
	}
	return nil
}
