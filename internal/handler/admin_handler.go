package handler

import (
	"net/http"

	"appointhub-api/internal/middleware"
	"appointhub-api/internal/model"
)

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequesterFrom(r.Context())

	st, err := h.appointments.Stats(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]*model.Stats{"stats": st})
}

func (h *Handler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequesterFrom(r.Context())

	logs, err := h.audit.Query(r.Context(), req, r.URL.Query().Get("action"))
	if err != nil {
		respondError(w, err)
		return
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	respondJSON(w, http.StatusOK, map[string][]model.AuditLog{"logs": logs})
}
