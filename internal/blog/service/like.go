package service

import (
	"context"
	"errors"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/idx"
)

type LikeService struct {
	Store store.Store
}

// Toggle likes postID on behalf of userID, or removes the like if one
// already exists. Returns whether the post is liked after the call.
func (s *LikeService) Toggle(ctx context.Context, userID, postID string) (bool, error) {
	if postID == "" {
		return false, ErrInvalidInput
	}
	if _, err := s.Store.Posts().GetPostByID(ctx, postID); err != nil {
		return false, err
	}

	existing, err := s.Store.Likes().GetLikeByPostUser(ctx, postID, userID)
	switch {
	case err == nil:
		return false, s.Store.Likes().DeleteLike(ctx, existing.ID)
	case errors.Is(err, store.ErrNotFound):
		l := domain.Like{
			ID:     idx.New().String(),
			PostID: postID,
			UserID: userID,
		}
		if err := s.Store.Likes().CreateLike(ctx, l); err != nil {
			// A concurrent toggle may have won the insert.
			if errors.Is(err, store.ErrAlreadyExists) {
				return true, nil
			}
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// ListByPost returns a post's likes newest first.
func (s *LikeService) ListByPost(ctx context.Context, postID string) ([]domain.LikeWithUser, error) {
	return s.Store.Likes().ListLikesByPost(ctx, postID)
}
