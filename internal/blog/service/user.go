package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/slogx"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// UpdateProfile changes a user's display name and avatar URL.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, image string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}
	return s.Store.Users().UpdateProfile(ctx, userID, name, image)
}

// ListUsers is the admin listing, newest first, optionally filtered by
// status, with per-user content counts.
func (s *UserService) ListUsers(ctx context.Context, status *domain.Status) ([]domain.UserWithCounts, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidInput
	}
	return s.Store.Users().ListUsers(ctx, status)
}

// SetRole promotes or demotes a user.
func (s *UserService) SetRole(ctx context.Context, userID string, role domain.Role) error {
	if !role.Valid() {
		return ErrInvalidInput
	}
	if err := s.Store.Users().UpdateRole(ctx, userID, role); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("user role updated",
		slog.String("user_id", userID), slog.String("role", string(role)))
	return nil
}

// SetStatus blocks or unblocks a user. Blocking takes effect at the next
// login; tokens already in flight remain valid until they expire.
func (s *UserService) SetStatus(ctx context.Context, userID string, status domain.Status) error {
	if !status.Valid() {
		return ErrInvalidInput
	}
	if err := s.Store.Users().UpdateStatus(ctx, userID, status); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("user status updated",
		slog.String("user_id", userID), slog.String("status", string(status)))
	return nil
}

// DeleteUser removes a user; posts, comments and likes cascade.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	return s.Store.Users().DeleteUser(ctx, userID)
}
