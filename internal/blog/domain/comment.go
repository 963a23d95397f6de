package domain

import "time"

type Comment struct {
	ID        string
	Content   string
	PostID    string
	UserID    string
	CreatedAt time.Time
}

type CommentWithUser struct {
	Comment

	User UserRef
}

type Like struct {
	ID        string
	PostID    string
	UserID    string
	CreatedAt time.Time
}

type LikeWithUser struct {
	Like

	User UserRef
}
