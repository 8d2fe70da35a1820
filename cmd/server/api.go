package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Simplici0/bizness/internal/auth"
	"github.com/Simplici0/bizness/internal/store"
	"github.com/Simplici0/bizness/internal/validation"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

func (s *server) handleAPILogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := s.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	s.respondToken(w, r, http.StatusOK, u)
}

func (s *server) handleAPIRegister(w http.ResponseWriter, r *http.Request) {
	var req validation.Registration
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := s.auth.Register(r.Context(), req, auth.RoleUser)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("user_id", u.ID).Msg("user registered")
	s.respondToken(w, r, http.StatusCreated, u)
}

func (s *server) respondToken(w http.ResponseWriter, r *http.Request, status int, u auth.User) {
	token, err := s.auth.IssueToken(u)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, status, tokenResponse{Token: token, User: u})
}

func (s *server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, currentUser(r))
}

type businessKey struct{}

// businessAccess loads the {businessID} route parameter. Businesses of other
// users look missing unless the caller is an admin.
func (s *server) businessAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := s.store.GetBusiness(r.Context(), chi.URLParam(r, "businessID"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		u := currentUser(r)
		if b.OwnerID != u.ID && !u.IsAdmin() {
			respondError(w, http.StatusNotFound, errMsgNotFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), businessKey{}, b)))
	})
}

func businessFrom(r *http.Request) store.Business {
	b, _ := r.Context().Value(businessKey{}).(store.Business)
	return b
}

func (s *server) handleBusinessList(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	owner := u.ID
	if u.IsAdmin() && r.URL.Query().Get("all") == "true" {
		owner = ""
	}

	businesses, err := s.store.ListBusinesses(r.Context(), owner)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, businesses)
}

func (s *server) handleBusinessCreateAPI(w http.ResponseWriter, r *http.Request) {
	var in validation.BusinessInput
	if !decodeJSON(w, r, &in) {
		return
	}

	b, err := s.store.CreateBusiness(r.Context(), currentUser(r).ID, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

func (s *server) handleBusinessGet(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, businessFrom(r))
}

func (s *server) handleBusinessUpdate(w http.ResponseWriter, r *http.Request) {
	var in validation.BusinessInput
	if !decodeJSON(w, r, &in) {
		return
	}

	b, err := s.store.UpdateBusiness(r.Context(), businessFrom(r).ID, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *server) handleBusinessDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteBusiness(r.Context(), businessFrom(r).ID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleBusinessSelectAPI(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.SetCurrentBusiness(r.Context(), currentUser(r).ID, businessFrom(r).ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *server) handleCurrentBusiness(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.CurrentBusiness(r.Context(), currentUser(r).ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *server) handleCurrentBusinessClear(w http.ResponseWriter, r *http.Request) {
	s.store.ClearCurrentBusiness(currentUser(r).ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUserSummaries(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}
