package service

import (
	"context"
	"strings"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/idx"
)

type CommentService struct {
	Store store.Store
}

// Create attaches a comment to a post. The post must exist.
func (s *CommentService) Create(ctx context.Context, userID, postID, content string) (domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" || postID == "" {
		return domain.Comment{}, ErrInvalidInput
	}

	if _, err := s.Store.Posts().GetPostByID(ctx, postID); err != nil {
		return domain.Comment{}, err
	}

	c := domain.Comment{
		ID:      idx.New().String(),
		Content: content,
		PostID:  postID,
		UserID:  userID,
	}
	if err := s.Store.Comments().CreateComment(ctx, c); err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}

// ListByPost returns a post's comments newest first, with commenter refs.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]domain.CommentWithUser, error) {
	return s.Store.Comments().ListCommentsByPost(ctx, postID)
}

// Delete removes a comment. The comment's author and admins may delete.
func (s *CommentService) Delete(ctx context.Context, actorID string, actorAdmin bool, commentID string) error {
	c, err := s.Store.Comments().GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID != actorID && !actorAdmin {
		return ErrNotOwner
	}
	return s.Store.Comments().DeleteComment(ctx, commentID)
}
