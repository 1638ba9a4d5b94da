package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"appointhub-api/internal/service"
)

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps the service taxonomy onto HTTP. Anything unknown is an
// internal error: logged here, generic message to the client.
func respondError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		msg = "Server error"
	}
	respondJSON(w, code, map[string]string{"error": msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrTitleDateRequired),
		errors.Is(err, service.ErrBadStatus),
		errors.Is(err, service.ErrBadTransition):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrOnlyAdminStatus),
		errors.Is(err, service.ErrEditNotPending):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func badJSON(w http.ResponseWriter) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
}
