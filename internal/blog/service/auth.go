package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/cryptox"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/idx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/slogx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/tokenx"
)

const MinPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrAccountBlocked     = errors.New("account_blocked")
	ErrEmailTaken         = errors.New("email_taken")
	ErrWeakPassword       = errors.New("weak_password")
	ErrInvalidInput       = errors.New("invalid_input")
)

type AuthService struct {
	Store    store.Store
	Codec    *tokenx.Codec
	TokenTTL time.Duration
}

// Login verifies credentials and mints a session token. Blocked accounts are
// rejected before any token is issued. A bad email and a bad password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", domain.User{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		return "", domain.User{}, err
	}

	if user.Status == domain.StatusBlocked {
		l.Info("blocked account login rejected", slog.String("user_id", user.ID))
		return "", domain.User{}, ErrAccountBlocked
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("email", email))
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := s.Codec.Issue(tokenx.Principal{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	}, s.ttl())
	if err != nil {
		return "", domain.User{}, err
	}

	l.Info("login succeeded", slog.String("user_id", user.ID))
	return token, user, nil
}

// Register creates a new ACTIVE user with the USER role.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" {
		return domain.User{}, ErrInvalidInput
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// ChangePassword rotates a user's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < MinPasswordLength {
		return ErrWeakPassword
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := cryptox.VerifyPassword(current, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdatePasswordHash(ctx, userID, hash)
}

func (s *AuthService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return tokenx.DefaultTTL
}
