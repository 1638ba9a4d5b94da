package handler

import (
	"net/http"

	"appointhub-api/internal/middleware"
	"appointhub-api/internal/model"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		badJSON(w)
		return
	}

	u, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]*model.User{"user": u})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		badJSON(w)
		return
	}

	tok, u, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"token": tok, "user": u})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequesterFrom(r.Context())
	u, err := h.auth.Profile(r.Context(), req.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]*model.User{"user": u})
}
