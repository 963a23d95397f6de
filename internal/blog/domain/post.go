package domain

import "time"

type Post struct {
	ID         string
	Title      string
	Slug       string
	Content    string
	Published  bool
	AuthorID   string
	CategoryID string // optional
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PostDetail is a post hydrated with everything a listing needs: author
// reference, category, tags and engagement counts.
type PostDetail struct {
	Post

	Author       UserRef
	Category     *Category
	Tags         []Tag
	CommentCount int
	LikeCount    int
}

// PostFilter narrows the public listing. Category and Tag match by name;
// Page is 1-based.
type PostFilter struct {
	Category string
	Tag      string
	Page     int
	Limit    int
}

// AdminPostFilter narrows the admin listing across drafts and published
// posts alike.
type AdminPostFilter struct {
	AuthorID   string
	CategoryID string
	Published  *bool
}
