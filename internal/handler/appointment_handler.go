package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appointhub-api/internal/middleware"
	"appointhub-api/internal/model"
	"appointhub-api/internal/service"
)

type createAppointmentRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequesterFrom(r.Context())

	var in createAppointmentRequest
	if err := decode(r, &in); err != nil {
		badJSON(w)
		return
	}

	a, err := h.appointments.Create(r.Context(), req, service.CreateInput{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]*model.Appointment{"appointment": a})
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequesterFrom(r.Context())

	apts, err := h.appointments.List(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	if apts == nil {
		apts = []model.Appointment{}
	}
	respondJSON(w, http.StatusOK, map[string][]model.Appointment{"appointments": apts})
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequesterFrom(r.Context())

	a, err := h.appointments.Get(r.Context(), req, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]*model.Appointment{"appointment": a})
}

type updateAppointmentRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Date        *time.Time    `json:"date"`
	Status      *model.Status `json:"status"`
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequesterFrom(r.Context())

	var in updateAppointmentRequest
	if err := decode(r, &in); err != nil {
		badJSON(w)
		return
	}

	a, err := h.appointments.Update(r.Context(), req, chi.URLParam(r, "id"), service.UpdateInput{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Status:      in.Status,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]*model.Appointment{"appointment": a})
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequesterFrom(r.Context())

	if err := h.appointments.Delete(r.Context(), req, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}
