package sqlite

import (
	"context"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
)

type commentsRepo struct {
	db dbtx
}

func (r *commentsRepo) GetCommentByID(ctx context.Context, id string) (domain.Comment, error) {
	var c domain.Comment
	err := r.db.QueryRowContext(ctx,
		`SELECT id, content, post_id, user_id, created_at FROM comments WHERE id = ?`, id,
	).Scan(&c.ID, &c.Content, &c.PostID, &c.UserID, &c.CreatedAt)
	if err != nil {
		return domain.Comment{}, mapNotFound(err)
	}
	return c, nil
}

func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, content, post_id, user_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Content, c.PostID, c.UserID, time.Now().UTC())
	return mapConflict(err)
}

func (r *commentsRepo) ListCommentsByPost(ctx context.Context, postID string) ([]domain.CommentWithUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT cm.id, cm.content, cm.post_id, cm.user_id, cm.created_at,
		        u.name, u.image
		 FROM comments cm
		 JOIN users u ON u.id = cm.user_id
		 WHERE cm.post_id = ?
		 ORDER BY cm.created_at DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CommentWithUser
	for rows.Next() {
		var c domain.CommentWithUser
		if err := rows.Scan(&c.ID, &c.Content, &c.PostID, &c.UserID, &c.CreatedAt,
			&c.User.Name, &c.User.Image); err != nil {
			return nil, err
		}
		c.User.ID = c.UserID
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *commentsRepo) DeleteComment(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
