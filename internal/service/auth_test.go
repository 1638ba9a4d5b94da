package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointhub-api/internal/auth"
	"appointhub-api/internal/model"
)

const testSecret = "test-secret"

func TestRegister(t *testing.T) {
	svc := NewAuthService(NewMemStore(), testSecret)

	u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pw123456")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, model.RoleUser, u.Role, "role is fixed to user")
	assert.NotEqual(t, "pw123456", u.PasswordHash)
	assert.True(t, auth.CheckPassword(u.PasswordHash, "pw123456"))
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(NewMemStore(), testSecret)

	tests := []struct {
		name                   string
		uname, email, password string
		want                   error
	}{
		{"empty name", "", "a@b.com", "pw123456", ErrMissingFields},
		{"empty email", "Alice", "", "pw123456", ErrMissingFields},
		{"empty password", "Alice", "a@b.com", "", ErrMissingFields},
		{"short password", "Alice", "a@b.com", "pw123", ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.uname, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(NewMemStore(), testSecret)

	_, err := svc.Register(context.Background(), "First", "dup@example.com", "pw123456")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Second", "dup@example.com", "pw123456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	svc := NewAuthService(NewMemStore(), testSecret)
	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pw123456")
	require.NoError(t, err)

	tok, u, err := svc.Authenticate(context.Background(), "alice@example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)

	// token decodes back to the same identity and role
	claims, err := auth.ParseToken(tok, testSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestAuthenticateFailures(t *testing.T) {
	svc := NewAuthService(NewMemStore(), testSecret)
	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pw123456")
	require.NoError(t, err)

	_, _, err = svc.Authenticate(context.Background(), "alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Authenticate(context.Background(), "nobody@example.com", "pw123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	svc := NewAuthService(NewMemStore(), testSecret)
	u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pw123456")
	require.NoError(t, err)

	got, err := svc.Profile(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = svc.Profile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
