package store

import (
	"context"
	"errors"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories per aggregate to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Posts() Posts
	Categories() Categories
	Tags() Tags
	Comments() Comments
	Likes() Likes

	ApplyMigrations() error

	// WithTx executes fn within a transaction: commit on nil, rollback on
	// error. Multi-step writes (post + tag links) go through this.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login-time token issuance.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id provided by the app via ULID).
	// Returns ErrAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, u domain.User) error

	UpdateProfile(ctx context.Context, userID, name, image string) error
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// UpdateRole and UpdateStatus back the admin moderation endpoints.
	UpdateRole(ctx context.Context, userID string, role domain.Role) error
	UpdateStatus(ctx context.Context, userID string, status domain.Status) error

	// DeleteUser cascades to posts, comments and likes (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns users newest first, optionally filtered by status,
	// with per-user content counts.
	ListUsers(ctx context.Context, status *domain.Status) ([]domain.UserWithCounts, error)
}

type Posts interface {
	GetPostByID(ctx context.Context, id string) (domain.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (domain.PostDetail, error)

	// CreatePost inserts a post and its tag links; ErrAlreadyExists on a
	// duplicate slug.
	CreatePost(ctx context.Context, p domain.Post, tagIDs []string) error

	// UpdatePost rewrites the mutable fields and replaces tag links.
	UpdatePost(ctx context.Context, p domain.Post, tagIDs []string) error

	DeletePost(ctx context.Context, id string) error

	// ListPublished returns published posts newest first with pagination;
	// the second return is the total match count before paging.
	ListPublished(ctx context.Context, f domain.PostFilter) ([]domain.PostDetail, int, error)

	// ListByAuthor returns all of an author's posts, drafts included.
	ListByAuthor(ctx context.Context, authorID string) ([]domain.PostDetail, error)

	// ListAll is the admin view across every author and publication state.
	ListAll(ctx context.Context, f domain.AdminPostFilter) ([]domain.PostDetail, error)
}

type Categories interface {
	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error)
	CreateCategory(ctx context.Context, c domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type Tags interface {
	GetTagByID(ctx context.Context, id string) (domain.Tag, error)
	CreateTag(ctx context.Context, t domain.Tag) error
	ListTags(ctx context.Context) ([]domain.Tag, error)
}

type Comments interface {
	GetCommentByID(ctx context.Context, id string) (domain.Comment, error)
	CreateComment(ctx context.Context, c domain.Comment) error
	ListCommentsByPost(ctx context.Context, postID string) ([]domain.CommentWithUser, error)
	DeleteComment(ctx context.Context, id string) error
}

type Likes interface {
	// GetLikeByPostUser finds a user's like on a post, ErrNotFound if none.
	GetLikeByPostUser(ctx context.Context, postID, userID string) (domain.Like, error)
	CreateLike(ctx context.Context, l domain.Like) error
	DeleteLike(ctx context.Context, id string) error
	ListLikesByPost(ctx context.Context, postID string) ([]domain.LikeWithUser, error)
}
