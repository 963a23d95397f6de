package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/cryptox"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/idx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/slogx"
)

// BootstrapService seeds the configured admin account at startup so a fresh
// deployment has a way in.
type BootstrapService struct {
	Store store.Store
}

// EnsureAdmin creates an ACTIVE ADMIN user with the given credentials unless
// a user with that email already exists. Idempotent across restarts.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, email, password string) error {
	l := slogx.FromContext(ctx)

	if email == "" || password == "" {
		return nil
	}

	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	admin := domain.User{
		ID:           idx.New().String(),
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
	}
	if err := s.Store.Users().CreateUser(ctx, admin); err != nil {
		// Two instances racing the same seed is fine.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	l.Info("bootstrap admin created", slog.String("user_id", admin.ID))
	return nil
}
