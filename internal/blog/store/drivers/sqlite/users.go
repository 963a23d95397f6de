package sqlite

import (
	"context"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, name, email, image, password_hash, role, status, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Image, &u.PasswordHash,
		&u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, image, password_hash, role, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Image, u.PasswordHash, u.Role, u.Status, now, now,
	)
	return mapConflict(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, name, image string) error {
	return r.touchUpdate(ctx, userID,
		`UPDATE users SET name = ?, image = ?, updated_at = ? WHERE id = ?`,
		name, image)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return r.touchUpdate(ctx, userID,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash)
}

func (r *usersRepo) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	return r.touchUpdate(ctx, userID,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		string(role))
}

func (r *usersRepo) UpdateStatus(ctx context.Context, userID string, status domain.Status) error {
	return r.touchUpdate(ctx, userID,
		`UPDATE users SET status = ?, updated_at = ? WHERE id = ?`,
		string(status))
}

// touchUpdate runs an UPDATE whose last two placeholders are updated_at and
// the user id, and reports ErrNotFound when no row matched.
func (r *usersRepo) touchUpdate(ctx context.Context, userID, query string, args ...any) error {
	args = append(args, time.Now().UTC(), userID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) ListUsers(ctx context.Context, status *domain.Status) ([]domain.UserWithCounts, error) {
	query := `SELECT u.id, u.name, u.email, u.image, u.password_hash, u.role, u.status,
	                 u.created_at, u.updated_at,
	                 (SELECT COUNT(*) FROM posts p WHERE p.author_id = u.id),
	                 (SELECT COUNT(*) FROM comments c WHERE c.user_id = u.id),
	                 (SELECT COUNT(*) FROM likes l WHERE l.user_id = u.id)
	          FROM users u`
	var args []any
	if status != nil {
		query += ` WHERE u.status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY u.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserWithCounts
	for rows.Next() {
		var u domain.UserWithCounts
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Image, &u.PasswordHash, &u.Role, &u.Status,
			&u.CreatedAt, &u.UpdatedAt,
			&u.PostCount, &u.CommentCount, &u.LikeCount,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
