package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"appointhub-api/internal/auth"
	"appointhub-api/internal/model"
	"appointhub-api/internal/store"
)

// UserStore is the persistence surface AuthService needs.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
}

// AuthService registers accounts and exchanges credentials for session
// tokens. Passwords exist only as bcrypt hashes.
type AuthService struct {
	store  UserStore
	secret string
}

func NewAuthService(st UserStore, secret string) *AuthService {
	return &AuthService{store: st, secret: secret}
}

// Register creates an account with role fixed to user.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         model.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Authenticate verifies credentials and mints a 24h session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	tok, err := auth.MakeToken(u, s.secret)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// Profile returns the live account for a verified identity.
func (s *AuthService) Profile(ctx context.Context, id string) (*model.User, error) {
	u, err := s.store.UserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
