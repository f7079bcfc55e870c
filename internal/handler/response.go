// Package handler contains the HTTP handlers. Handlers parse requests,
// call the service layer, and translate domain errors to status codes;
// they hold no business rules of their own.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jsundman/bloglist/internal/apperror"
	"github.com/jsundman/bloglist/internal/auth"
)

// ErrorResponse is the standard error format returned by all API
// endpoints: a machine-readable type plus a human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code. Headers must
// be set before the first body write, hence the fixed order here.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone; logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code.
//
// The service layer speaks apperror categories; this is the only place
// they meet HTTP. Unknown errors become an opaque 500; internal details
// never reach the client.
func writeError(w http.ResponseWriter, err error) {
	// Token errors may arrive unwrapped from the auth package.
	if errors.Is(err, auth.ErrTokenExpired) {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "token expired",
		})
		return
	}
	if errors.Is(err, auth.ErrTokenInvalid) {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "invalid token",
		})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "unauthorized"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
