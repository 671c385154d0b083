package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "aiblog/backend/internal/domain/blog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BlogRepository persists blog posts in PostgreSQL. The like set lives in a
// blog_likes join table whose primary key gives the atomic add/remove
// semantics the like toggle depends on.
type BlogRepository struct {
	pool *pgxpool.Pool
}

// NewBlogRepository constructs a repository.
func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogSearchVector = `to_tsvector('english', b.title || ' ' || b.category || ' ' || b.content)`

// likesSubquery aggregates liker ids so a single scan fills Blog.Likes.
const likesSubquery = `COALESCE((SELECT array_agg(l.user_id::text) FROM blog_likes l WHERE l.blog_id = b.id), '{}')`

// Create inserts a new post.
func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) error {
	const query = `
INSERT INTO blogs (id, user_id, title, category, content, excerpt, image_url, published, slug, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.UserID,
		b.Title,
		b.Category,
		b.Content,
		b.Excerpt,
		b.ImageURL,
		b.Published,
		b.Slug,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

// GetByID fetches a post with its author and like set.
func (r *BlogRepository) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	return r.getWhere(ctx, "b.id = $1", id)
}

// GetBySlug fetches a post by its unique slug.
func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	return r.getWhere(ctx, "b.slug = $1", slug)
}

func (r *BlogRepository) getWhere(ctx context.Context, cond, arg string) (*domain.Blog, error) {
	query := `
SELECT b.id, b.user_id, u.name, u.username, b.title, b.category, b.content, b.excerpt,
       b.image_url, b.published, b.slug, ` + likesSubquery + `, b.created_at, b.updated_at
FROM blogs b
JOIN users u ON u.id = b.user_id
WHERE ` + cond
	row := r.pool.QueryRow(ctx, query, arg)
	b, err := scanBlog(row, true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Update rewrites the editable fields of a post.
func (r *BlogRepository) Update(ctx context.Context, b *domain.Blog) error {
	const query = `
UPDATE blogs
SET title = $2, category = $3, content = $4, excerpt = $5, image_url = $6, slug = $7, updated_at = $8
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Category,
		b.Content,
		b.Excerpt,
		b.ImageURL,
		b.Slug,
		b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetPublished flips the published flag.
func (r *BlogRepository) SetPublished(ctx context.Context, id string, published bool, updatedAt time.Time) error {
	const query = `UPDATE blogs SET published = $2, updated_at = $3 WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id, published, updatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a post; likes cascade.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns a filtered page of posts, newest first, without content,
// plus the total count matching the filter.
func (r *BlogRepository) List(ctx context.Context, filter domain.Filter, page, limit int) ([]*domain.Blog, int, error) {
	where, args := buildBlogFilter(filter)

	var total int
	countQuery := `SELECT count(*) FROM blogs b` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
SELECT b.id, b.user_id, u.name, u.username, b.title, b.category, b.excerpt,
       b.image_url, b.published, b.slug, ` + likesSubquery + `, b.created_at, b.updated_at
FROM blogs b
JOIN users u ON u.id = b.user_id` + where +
		fmt.Sprintf("\nORDER BY b.created_at DESC OFFSET $%d LIMIT $%d", len(args)+1, len(args)+2)
	args = append(args, (page-1)*limit, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var blogs []*domain.Blog
	for rows.Next() {
		b, err := scanBlog(rows, false)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func buildBlogFilter(filter domain.Filter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.PublishedOnly {
		conds = append(conds, "b.published")
	}
	if filter.UserID != "" {
		add("b.user_id = $%d", filter.UserID)
	}
	if filter.Category != "" {
		add("lower(b.category) = $%d", filter.Category)
	}
	if filter.LikedBy != "" {
		add("EXISTS (SELECT 1 FROM blog_likes l WHERE l.blog_id = b.id AND l.user_id = $%d)", filter.LikedBy)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "\nWHERE " + strings.Join(conds, " AND "), args
}

// Search runs a full-text query over published posts, most relevant first.
func (r *BlogRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Blog, error) {
	sqlQuery := `
SELECT b.id, b.user_id, u.name, u.username, b.title, b.category, b.excerpt,
       b.image_url, b.published, b.slug, ` + likesSubquery + `, b.created_at, b.updated_at
FROM blogs b
JOIN users u ON u.id = b.user_id
WHERE b.published AND ` + blogSearchVector + ` @@ plainto_tsquery('english', $1)
ORDER BY ts_rank(` + blogSearchVector + `, plainto_tsquery('english', $1)) DESC
LIMIT $2`

	rows, err := r.pool.Query(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []*domain.Blog
	for rows.Next() {
		b, err := scanBlog(rows, false)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// Categories returns the distinct lowercased category names in use.
func (r *BlogRepository) Categories(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT lower(category) FROM blogs WHERE category <> '' ORDER BY 1`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// AddLike records a like; a duplicate is a no-op.
func (r *BlogRepository) AddLike(ctx context.Context, blogID, userID string) error {
	const query = `INSERT INTO blog_likes (blog_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.pool.Exec(ctx, query, blogID, userID)
	return err
}

// RemoveLike withdraws a like; a missing like is a no-op.
func (r *BlogRepository) RemoveLike(ctx context.Context, blogID, userID string) error {
	const query = `DELETE FROM blog_likes WHERE blog_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, blogID, userID)
	return err
}

// Likes returns the ids of users who liked the post.
func (r *BlogRepository) Likes(ctx context.Context, blogID string) ([]string, error) {
	const query = `SELECT user_id::text FROM blog_likes WHERE blog_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		likes = append(likes, id)
	}
	return likes, rows.Err()
}

func scanBlog(row pgx.Row, withContent bool) (*domain.Blog, error) {
	var b domain.Blog
	fields := []any{&b.ID, &b.UserID, &b.AuthorName, &b.AuthorUsername, &b.Title, &b.Category}
	if withContent {
		fields = append(fields, &b.Content)
	}
	fields = append(fields, &b.Excerpt, &b.ImageURL, &b.Published, &b.Slug, &b.Likes, &b.CreatedAt, &b.UpdatedAt)
	if err := row.Scan(fields...); err != nil {
		return nil, err
	}
	return &b, nil
}
