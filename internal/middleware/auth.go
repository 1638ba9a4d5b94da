package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"appointhub-api/internal/auth"
	"appointhub-api/internal/model"
)

type ctxKey string

const requesterKey ctxKey = "requester"

// Auth validates the bearer token and stores the decoded identity in the
// request context. Missing or bad tokens are both 401.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// token from Authorization: Bearer <jwt>
			raw := ""
			if h := r.Header.Get("Authorization"); h != "" {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "Token required")
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), requesterKey, claims.Requester())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only routes. Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := RequesterFrom(r.Context())
		if !ok || !req.IsAdmin() {
			writeError(w, http.StatusForbidden, "Admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequesterFrom returns the authenticated identity placed by Auth.
func RequesterFrom(ctx context.Context) (model.Requester, bool) {
	req, ok := ctx.Value(requesterKey).(model.Requester)
	return req, ok
}

// WithRequester is for tests that bypass the Auth middleware.
func WithRequester(ctx context.Context, r model.Requester) context.Context {
	return context.WithValue(ctx, requesterKey, r)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
