package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/idx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/slogx"
)

// ErrNotOwner is returned when a user touches a post they did not author.
var ErrNotOwner = errors.New("not_owner")

type PostService struct {
	Store store.Store
}

// PostInput carries the author-editable fields of a post.
type PostInput struct {
	Title      string
	Content    string
	Published  bool
	CategoryID string
	TagIDs     []string
}

// Create inserts a new post for authorID, deriving the slug from the title.
// The post row and its tag links commit together.
func (s *PostService) Create(ctx context.Context, authorID string, in PostInput) (domain.Post, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return domain.Post{}, ErrInvalidInput
	}

	post := domain.Post{
		ID:         idx.New().String(),
		Title:      strings.TrimSpace(in.Title),
		Slug:       Slugify(in.Title),
		Content:    in.Content,
		Published:  in.Published,
		AuthorID:   authorID,
		CategoryID: in.CategoryID,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Posts().CreatePost(ctx, post, in.TagIDs)
	})
	if err != nil {
		return domain.Post{}, err
	}

	slogx.FromContext(ctx).Info("post created",
		slog.String("post_id", post.ID), slog.String("author_id", authorID))
	return post, nil
}

// Update rewrites a post's editable fields. Only the author may update.
func (s *PostService) Update(ctx context.Context, actorID, postID string, in PostInput) (domain.Post, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return domain.Post{}, ErrInvalidInput
	}

	post, err := s.Store.Posts().GetPostByID(ctx, postID)
	if err != nil {
		return domain.Post{}, err
	}
	if post.AuthorID != actorID {
		return domain.Post{}, ErrNotOwner
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Slug = Slugify(in.Title)
	post.Content = in.Content
	post.Published = in.Published
	post.CategoryID = in.CategoryID

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Posts().UpdatePost(ctx, post, in.TagIDs)
	})
	if err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// Delete removes a post. Only the author may delete through this path;
// admins go through DeleteAny.
func (s *PostService) Delete(ctx context.Context, actorID, postID string) error {
	post, err := s.Store.Posts().GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return ErrNotOwner
	}
	return s.Store.Posts().DeletePost(ctx, postID)
}

// DeleteAny removes a post without an ownership check (admin moderation).
func (s *PostService) DeleteAny(ctx context.Context, postID string) error {
	if err := s.Store.Posts().DeletePost(ctx, postID); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("post removed by admin", slog.String("post_id", postID))
	return nil
}

// GetByID fetches a post row by id, no visibility rules applied.
func (s *PostService) GetByID(ctx context.Context, postID string) (domain.Post, error) {
	return s.Store.Posts().GetPostByID(ctx, postID)
}

// GetBySlug fetches a post with author, category, tags and counts. Drafts
// are visible only to their author and to admins.
func (s *PostService) GetBySlug(ctx context.Context, slug, viewerID string, viewerAdmin bool) (domain.PostDetail, error) {
	detail, err := s.Store.Posts().GetPostBySlug(ctx, slug)
	if err != nil {
		return domain.PostDetail{}, err
	}
	if !detail.Published && detail.AuthorID != viewerID && !viewerAdmin {
		return domain.PostDetail{}, store.ErrNotFound
	}
	return detail, nil
}

// ListPublished returns the public feed with pagination and the total match
// count before paging.
func (s *PostService) ListPublished(ctx context.Context, f domain.PostFilter) ([]domain.PostDetail, int, error) {
	return s.Store.Posts().ListPublished(ctx, f)
}

// ListByAuthor returns all of an author's posts, drafts included.
func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]domain.PostDetail, error) {
	return s.Store.Posts().ListByAuthor(ctx, authorID)
}

// ListAll is the admin view across every author and publication state.
func (s *PostService) ListAll(ctx context.Context, f domain.AdminPostFilter) ([]domain.PostDetail, error) {
	return s.Store.Posts().ListAll(ctx, f)
}
