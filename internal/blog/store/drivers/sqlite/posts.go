package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
)

type postsRepo struct {
	db dbtx
}

func (r *postsRepo) GetPostByID(ctx context.Context, id string) (domain.Post, error) {
	var p domain.Post
	var categoryID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, slug, content, published, author_id, category_id, created_at, updated_at
		 FROM posts WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Published, &p.AuthorID,
		&categoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	p.CategoryID = mapNullString(categoryID)
	return p, nil
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post, tagIDs []string) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, slug, content, published, author_id, category_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Slug, p.Content, p.Published, p.AuthorID,
		mapStringNull(p.CategoryID), now, now,
	)
	if err != nil {
		return mapConflict(err)
	}
	return r.linkTags(ctx, p.ID, tagIDs)
}

func (r *postsRepo) UpdatePost(ctx context.Context, p domain.Post, tagIDs []string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, slug = ?, content = ?, published = ?, category_id = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Slug, p.Content, p.Published, mapStringNull(p.CategoryID),
		time.Now().UTC(), p.ID,
	)
	if err != nil {
		return mapConflict(err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	// Replace tag links wholesale; the set is small.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = ?`, p.ID); err != nil {
		return err
	}
	return r.linkTags(ctx, p.ID, tagIDs)
}

func (r *postsRepo) linkTags(ctx context.Context, postID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO post_tags (post_id, tag_id) VALUES (?, ?)`,
			postID, tagID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *postsRepo) DeletePost(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// detailColumns hydrates a post row with its author, category and counts in
// one pass; tags need a second query per post.
const detailColumns = `
	p.id, p.title, p.slug, p.content, p.published, p.author_id, p.category_id,
	p.created_at, p.updated_at,
	u.name, u.email, u.image,
	c.id, c.name, c.slug, c.created_at,
	(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id),
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id)`

const detailFrom = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id`

func (r *postsRepo) scanDetail(rows interface{ Scan(...any) error }) (domain.PostDetail, error) {
	var d domain.PostDetail
	var postCategoryID sql.NullString
	var catID, catName, catSlug sql.NullString
	var catCreated sql.NullTime

	err := rows.Scan(
		&d.ID, &d.Title, &d.Slug, &d.Content, &d.Published, &d.AuthorID, &postCategoryID,
		&d.CreatedAt, &d.UpdatedAt,
		&d.Author.Name, &d.Author.Email, &d.Author.Image,
		&catID, &catName, &catSlug, &catCreated,
		&d.CommentCount, &d.LikeCount,
	)
	if err != nil {
		return domain.PostDetail{}, err
	}

	d.CategoryID = mapNullString(postCategoryID)
	d.Author.ID = d.AuthorID
	if catID.Valid {
		d.Category = &domain.Category{
			ID:        catID.String,
			Name:      catName.String,
			Slug:      catSlug.String,
			CreatedAt: catCreated.Time,
		}
	}
	return d, nil
}

func (r *postsRepo) GetPostBySlug(ctx context.Context, slug string) (domain.PostDetail, error) {
	d, err := r.scanDetail(r.db.QueryRowContext(ctx,
		`SELECT `+detailColumns+detailFrom+` WHERE p.slug = ?`, slug))
	if err != nil {
		return domain.PostDetail{}, mapNotFound(err)
	}
	if err := r.loadTags(ctx, &d); err != nil {
		return domain.PostDetail{}, err
	}
	return d, nil
}

func (r *postsRepo) ListPublished(ctx context.Context, f domain.PostFilter) ([]domain.PostDetail, int, error) {
	where := ` WHERE p.published = 1`
	var args []any

	if f.Category != "" {
		where += ` AND c.name = ?`
		args = append(args, f.Category)
	}
	if f.Tag != "" {
		where += ` AND EXISTS (
			SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.name = ?)`
		args = append(args, f.Tag)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)`+detailFrom+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	pagedArgs := append(args, limit, (page-1)*limit)

	details, err := r.queryDetails(ctx,
		`SELECT `+detailColumns+detailFrom+where+
			` ORDER BY p.created_at DESC LIMIT ? OFFSET ?`, pagedArgs...)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (r *postsRepo) ListByAuthor(ctx context.Context, authorID string) ([]domain.PostDetail, error) {
	return r.queryDetails(ctx,
		`SELECT `+detailColumns+detailFrom+
			` WHERE p.author_id = ? ORDER BY p.created_at DESC`, authorID)
}

func (r *postsRepo) ListAll(ctx context.Context, f domain.AdminPostFilter) ([]domain.PostDetail, error) {
	where := ` WHERE 1 = 1`
	var args []any

	if f.AuthorID != "" {
		where += ` AND p.author_id = ?`
		args = append(args, f.AuthorID)
	}
	if f.CategoryID != "" {
		where += ` AND p.category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.Published != nil {
		where += ` AND p.published = ?`
		args = append(args, *f.Published)
	}

	return r.queryDetails(ctx,
		`SELECT `+detailColumns+detailFrom+where+` ORDER BY p.created_at DESC`, args...)
}

func (r *postsRepo) queryDetails(ctx context.Context, query string, args ...any) ([]domain.PostDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PostDetail
	for rows.Next() {
		d, err := r.scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := r.loadTags(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *postsRepo) loadTags(ctx context.Context, d *domain.PostDetail) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.slug, t.created_at
		 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
		 WHERE pt.post_id = ? ORDER BY t.name`, d.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return err
		}
		d.Tags = append(d.Tags, t)
	}
	return rows.Err()
}
