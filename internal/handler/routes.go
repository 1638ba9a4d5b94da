package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"appointhub-api/internal/middleware"
)

// Routes wires the REST surface. All resource endpoints sit under /api
// behind bearer auth; only register and login are open, and those are
// rate limited per IP.
func Routes(h *Handler, secret, corsOrigin string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(corsOrigin))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			rl := middleware.NewRateLimiter(5, 10)
			r.With(middleware.RateLimit(rl)).Post("/register", h.Register)
			r.With(middleware.RateLimit(rl)).Post("/login", h.Login)
			r.With(middleware.Auth(secret)).Get("/me", h.Me)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Use(middleware.Auth(secret))
			r.Get("/", h.ListAppointments)
			r.Post("/", h.CreateAppointment)
			r.Get("/{id}", h.GetAppointment)
			r.Put("/{id}", h.UpdateAppointment)
			r.Delete("/{id}", h.DeleteAppointment)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(secret), middleware.RequireAdmin)
			r.Get("/stats", h.Stats)
			r.Get("/audit", h.AuditLogs)
		})
	})

	return r
}
