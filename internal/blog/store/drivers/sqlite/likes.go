package sqlite

import (
	"context"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
)

type likesRepo struct {
	db dbtx
}

func (r *likesRepo) GetLikeByPostUser(ctx context.Context, postID, userID string) (domain.Like, error) {
	var l domain.Like
	err := r.db.QueryRowContext(ctx,
		`SELECT id, post_id, user_id, created_at FROM likes WHERE post_id = ? AND user_id = ?`,
		postID, userID,
	).Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt)
	if err != nil {
		return domain.Like{}, mapNotFound(err)
	}
	return l, nil
}

func (r *likesRepo) CreateLike(ctx context.Context, l domain.Like) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO likes (id, post_id, user_id, created_at) VALUES (?, ?, ?, ?)`,
		l.ID, l.PostID, l.UserID, time.Now().UTC())
	return mapConflict(err)
}

func (r *likesRepo) DeleteLike(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *likesRepo) ListLikesByPost(ctx context.Context, postID string) ([]domain.LikeWithUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT l.id, l.post_id, l.user_id, l.created_at, u.name
		 FROM likes l
		 JOIN users u ON u.id = l.user_id
		 WHERE l.post_id = ?
		 ORDER BY l.created_at DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LikeWithUser
	for rows.Next() {
		var l domain.LikeWithUser
		if err := rows.Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt, &l.User.Name); err != nil {
			return nil, err
		}
		l.User.ID = l.UserID
		out = append(out, l)
	}
	return out, rows.Err()
}
