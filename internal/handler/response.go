package handler

// RESPONSE HELPERS:
// Every handler sends JSON through these two functions so the wire format
// stays uniform.
//
// ERROR FORMAT:
// All error responses have the single-field shape the frontend consumes:
//
//	{"detail": "Please signup first"}
//
// writeError is also where the internal error taxonomy meets HTTP. The
// service layer returns apperror sentinels; this function maps them to
// status codes. Notably, the three login failure kinds (no account, wrong
// password, inactive) are DIFFERENT sentinels that all land on 401 — the
// distinction exists for tests and logs, not for the client.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/weather-hub/internal/apperror"
)

// ErrorResponse is the standard error body for all API endpoints.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body — once Encode starts
// writing, header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and sends the detail
// message.
//
// errors.Is walks the whole wrap chain, so services are free to annotate:
//
//	fmt.Errorf("service/auth: login: %w", apperror.InvalidCredential())
//
// still matches apperror.ErrInvalidCredential here.
//
// Errors that don't carry an AppError (driver errors, programming mistakes)
// become a generic 500 — raw internal messages never reach the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: "An internal error occurred"})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrValidation),
		errors.Is(err, apperror.ErrDuplicate):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrAccountNotFound),
		errors.Is(err, apperror.ErrInvalidCredential),
		errors.Is(err, apperror.ErrAccountInactive),
		errors.Is(err, apperror.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrUpstream),
		errors.Is(err, apperror.ErrPersistence):
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, ErrorResponse{Detail: appErr.Message})
}
