package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Simplici0/bizness/internal/auth"
	"github.com/Simplici0/bizness/internal/pricing"
	"github.com/Simplici0/bizness/internal/store"
	"github.com/Simplici0/bizness/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// User-facing error messages
const (
	errMsgInvalidRequest = "Invalid request"
	errMsgInvalidJSON    = "Invalid JSON body"
	errMsgNotFound       = "Not found"
	errMsgNoBusiness     = "No business selected"
	errMsgCredentials    = "Invalid email or password"
	errMsgEmailTaken     = "Email is already registered"
	errMsgInternal       = "Internal server error"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields validation.Errors `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps domain errors to HTTP responses. Unknown errors
// are logged and hidden behind a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: errMsgInvalidRequest, Fields: fields})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, auth.ErrUserNotFound), errors.Is(err, pricing.ErrMaterialNotFound):
		respondError(w, http.StatusNotFound, errMsgNotFound)
	case errors.Is(err, store.ErrNoCurrentBusiness):
		respondError(w, http.StatusNotFound, errMsgNoBusiness)
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, errMsgCredentials)
	case errors.Is(err, auth.ErrEmailTaken):
		respondError(w, http.StatusConflict, errMsgEmailTaken)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, errMsgInternal)
	}
}

// decodeJSON reads a single JSON object from the request body. Unknown
// fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, errMsgInvalidJSON)
		return false
	}
	return true
}

// currentUser returns the caller attached by auth.Identify. Handlers behind
// RequirePage or RequireAPI always have one.
func currentUser(r *http.Request) auth.User {
	u, _ := auth.UserFromContext(r.Context())
	return u
}
