package sqlite

import (
	"context"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
)

type categoriesRepo struct {
	db dbtx
}

func (r *categoriesRepo) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at FROM categories WHERE slug = ?`, slug,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, c domain.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, slug, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Slug, time.Now().UTC())
	return mapConflict(err)
}

func (r *categoriesRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type tagsRepo struct {
	db dbtx
}

func (r *tagsRepo) GetTagByID(ctx context.Context, id string) (domain.Tag, error) {
	var t domain.Tag
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at FROM tags WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		return domain.Tag{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tagsRepo) CreateTag(ctx context.Context, t domain.Tag) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (id, name, slug, created_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, t.Slug, time.Now().UTC())
	return mapConflict(err)
}

func (r *tagsRepo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
