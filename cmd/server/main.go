package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"appointhub-api/internal/auth"
	"appointhub-api/internal/config"
	"appointhub-api/internal/handler"
	"appointhub-api/internal/model"
	"appointhub-api/internal/service"
	"appointhub-api/internal/store"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping")
	}
	log.Info().Msg("connected to postgres")

	// run migrations
	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		log.Warn().Err(err).Msg("migration file not found, skipping")
	} else if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
		log.Warn().Err(err).Msg("migration")
	} else {
		log.Info().Msg("migration applied")
	}

	st := store.New(pool)
	if err := seedDemoUsers(context.Background(), st); err != nil {
		log.Warn().Err(err).Msg("seed")
	}

	auditSvc := service.NewAuditService(st)
	h := handler.New(
		service.NewAuthService(st, cfg.JWTSecret),
		service.NewAppointmentService(st, auditSvc),
		auditSvc,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.Routes(h, cfg.JWTSecret, cfg.CORSOrigin, log.Logger),
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

// seedDemoUsers creates the demo admin and user accounts on an empty
// database so a fresh install is immediately usable.
func seedDemoUsers(ctx context.Context, st *store.Store) error {
	n, err := st.CountUsers(ctx)
	if err != nil || n > 0 {
		return err
	}

	seeds := []struct {
		email, password, name string
		role                  model.Role
	}{
		{"admin@example.com", "admin123", "Alex Morgan", model.RoleAdmin},
		{"user@example.com", "user123", "Jamie Clarke", model.RoleUser},
	}
	for _, s := range seeds {
		hash, err := auth.HashPassword(s.password)
		if err != nil {
			return err
		}
		u := &model.User{
			ID:           uuid.New().String(),
			Email:        s.email,
			PasswordHash: hash,
			Name:         s.name,
			Role:         s.role,
			CreatedAt:    time.Now().UTC(),
		}
		if err := st.CreateUser(ctx, u); err != nil {
			return err
		}
		log.Info().Str("email", s.email).Str("role", string(s.role)).Msg("created demo account")
	}
	return nil
}
