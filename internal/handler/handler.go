package handler

import (
	"appointhub-api/internal/service"
)

type Handler struct {
	auth         *service.AuthService
	appointments *service.AppointmentService
	audit        *service.AuditService
}

func New(auth *service.AuthService, appointments *service.AppointmentService, audit *service.AuditService) *Handler {
	return &Handler{auth: auth, appointments: appointments, audit: audit}
}
