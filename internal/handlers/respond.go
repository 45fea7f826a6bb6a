// Package handlers implements the JSON HTTP handlers for the
// promptstash API. Handlers are grouped into structs per resource and
// share the respond/validate helpers in this package.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"promptstash/internal/apperror"
)

// devMode controls whether internal error messages reach clients.
// Set once at startup; outside dev mode 500 responses carry a generic
// message only.
var devMode bool

// SetDevMode toggles detailed internal error messages in responses.
func SetDevMode(enabled bool) {
	devMode = enabled
}

// errorBody is the uniform error response shape.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondError maps an error onto an HTTP status and writes the JSON
// error body. Unrecognized errors become 500 with the message
// suppressed outside dev mode.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperror.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		status = http.StatusConflict
	}

	body := errorBody{Error: err.Error()}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		body.Field = appErr.Field
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		if !devMode {
			body = errorBody{Error: "internal server error"}
		}
	}

	respondJSON(w, status, body)
}
