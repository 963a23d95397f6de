package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/cryptox"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/idx"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"Already-slugged", "already-slugged"},
		{"Ünïcode gets dropped", "n-code-gets-dropped"},
		{"123 numbers ok", "123-numbers-ok"},
		{"trailing punctuation...", "trailing-punctuation"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func seedTestUser(t *testing.T, st store.Store, email string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("irrelevant-pass")
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Name:         "Author",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestPostLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PostService{Store: st}

	author := seedTestUser(t, st, "author@example.com")
	stranger := seedTestUser(t, st, "stranger@example.com")

	post, err := svc.Create(ctx, author.ID, PostInput{
		Title:     "My First Post!",
		Content:   "Hello.",
		Published: true,
	})
	require.NoError(t, err)
	require.Equal(t, "my-first-post", post.Slug)

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, author.ID, PostInput{Content: "body"})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		_, err := svc.Update(ctx, stranger.ID, post.ID, PostInput{
			Title: "Hijacked", Content: "mine now",
		})
		require.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("author updates", func(t *testing.T) {
		updated, err := svc.Update(ctx, author.ID, post.ID, PostInput{
			Title: "My First Post, Revised", Content: "Hello again.", Published: true,
		})
		require.NoError(t, err)
		require.Equal(t, "my-first-post-revised", updated.Slug)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, stranger.ID, post.ID), ErrNotOwner)
	})

	t.Run("drafts hidden from public slug lookup", func(t *testing.T) {
		draft, err := svc.Create(ctx, author.ID, PostInput{
			Title: "Secret Draft", Content: "shh",
		})
		require.NoError(t, err)

		_, err = svc.GetBySlug(ctx, draft.Slug, "", false)
		require.ErrorIs(t, err, store.ErrNotFound)

		// Visible to the author and to admins.
		_, err = svc.GetBySlug(ctx, draft.Slug, author.ID, false)
		require.NoError(t, err)
		_, err = svc.GetBySlug(ctx, draft.Slug, "someone-else", true)
		require.NoError(t, err)
	})

	t.Run("admin delete skips ownership", func(t *testing.T) {
		require.NoError(t, svc.DeleteAny(ctx, post.ID))
		_, err := svc.GetByID(ctx, post.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestLikeToggle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	author := seedTestUser(t, st, "author@example.com")
	reader := seedTestUser(t, st, "reader@example.com")

	posts := &PostService{Store: st}
	post, err := posts.Create(ctx, author.ID, PostInput{
		Title: "Likeable", Content: "...", Published: true,
	})
	require.NoError(t, err)

	likes := &LikeService{Store: st}

	liked, err := likes.Toggle(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	require.True(t, liked)

	liked, err = likes.Toggle(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	require.False(t, liked, "second toggle removes the like")

	liked, err = likes.Toggle(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	require.True(t, liked)

	t.Run("missing post", func(t *testing.T) {
		_, err := likes.Toggle(ctx, reader.ID, "no-such-post")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCommentOwnership(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	author := seedTestUser(t, st, "author@example.com")
	commenter := seedTestUser(t, st, "commenter@example.com")
	stranger := seedTestUser(t, st, "stranger@example.com")

	posts := &PostService{Store: st}
	post, err := posts.Create(ctx, author.ID, PostInput{
		Title: "Discussed", Content: "...", Published: true,
	})
	require.NoError(t, err)

	comments := &CommentService{Store: st}
	c, err := comments.Create(ctx, commenter.ID, post.ID, "First!")
	require.NoError(t, err)

	t.Run("empty content rejected", func(t *testing.T) {
		_, err := comments.Create(ctx, commenter.ID, post.ID, "   ")
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		require.ErrorIs(t, comments.Delete(ctx, stranger.ID, false, c.ID), ErrNotOwner)
	})

	t.Run("admin can delete", func(t *testing.T) {
		require.NoError(t, comments.Delete(ctx, stranger.ID, true, c.ID))
	})

	t.Run("author deletes own comment", func(t *testing.T) {
		c2, err := comments.Create(ctx, commenter.ID, post.ID, "Second!")
		require.NoError(t, err)
		require.NoError(t, comments.Delete(ctx, commenter.ID, false, c2.ID))
	})
}
