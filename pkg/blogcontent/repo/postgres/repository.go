// Package postgres provides a PostgreSQL implementation of the blogcontent
// Repository interface. Tags, sections and meta live in JSONB columns; the
// category lookup table is joined on reads.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements blogcontent.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) blogcontent.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) blogcontent.Repository {
	return &Repository{db: pool}
}

func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return fmt.Errorf("slug already exists")
			}
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			if strings.Contains(pgErr.ConstraintName, "category") {
				return blogcontent.ErrCategoryNotFound
			}
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

const blogColumns = `
	b.id, b.title, b.slug, b.description, b.tags, b.category_id,
	b.featured, b.status, b.main_image, b.sections, b.meta,
	b.author_id, b.author_name, b.created_at, b.updated_at,
	c.id, c.name, c.slug, c.description, c.status, c.created_at, c.updated_at`

// Blog operations

func (r *Repository) CreateBlog(ctx context.Context, blog *blogcontent.Blog) error {
	tags, sections, meta, err := marshalDocument(blog)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO blogs (
			id, title, slug, description, tags, category_id, featured,
			status, main_image, sections, meta, author_id, author_name,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = r.db.Exec(ctx, query,
		blog.ID, blog.Title, blog.Slug, blog.Description, tags,
		blog.CategoryID, blog.Featured, blog.Status, blog.MainImage,
		sections, meta, blog.AuthorID, blog.AuthorName,
		blog.CreatedAt, blog.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create blog", err)
	}
	return nil
}

func (r *Repository) GetBlog(ctx context.Context, id uuid.UUID) (*blogcontent.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1`

	blog, err := scanBlog(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blogcontent.ErrBlogNotFound
		}
		return nil, err
	}
	return blog, nil
}

func (r *Repository) GetBlogBySlug(ctx context.Context, slug string) (*blogcontent.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.slug = $1`

	blog, err := scanBlog(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blogcontent.ErrBlogNotFound
		}
		return nil, err
	}
	return blog, nil
}

func (r *Repository) UpdateBlog(ctx context.Context, blog *blogcontent.Blog) error {
	tags, sections, meta, err := marshalDocument(blog)
	if err != nil {
		return err
	}

	query := `
		UPDATE blogs SET
			title = $2, slug = $3, description = $4, tags = $5,
			category_id = $6, featured = $7, status = $8, main_image = $9,
			sections = $10, meta = $11, updated_at = $12
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		blog.ID, blog.Title, blog.Slug, blog.Description, tags,
		blog.CategoryID, blog.Featured, blog.Status, blog.MainImage,
		sections, meta, blog.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("update blog", err)
	}
	if tag.RowsAffected() == 0 {
		return blogcontent.ErrBlogNotFound
	}
	return nil
}

func (r *Repository) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete blog", err)
	}
	if tag.RowsAffected() == 0 {
		return blogcontent.ErrBlogNotFound
	}
	return nil
}

func (r *Repository) ListBlogs(ctx context.Context) ([]*blogcontent.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		LEFT JOIN categories c ON c.id = b.category_id
		ORDER BY b.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list blogs", err)
	}
	defer rows.Close()

	return collectBlogs(rows)
}

func (r *Repository) ListBlogsByCategory(ctx context.Context, categoryID uuid.UUID, page, pageSize int) ([]*blogcontent.Blog, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM blogs WHERE category_id = $1 AND status = $2`,
		categoryID, blogcontent.StatusPublished).Scan(&total)
	if err != nil {
		return nil, 0, r.handlePostgresError("count blogs by category", err)
	}

	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.category_id = $1 AND b.status = $2
		ORDER BY b.created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query,
		categoryID, blogcontent.StatusPublished, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, r.handlePostgresError("list blogs by category", err)
	}
	defer rows.Close()

	blogs, err := collectBlogs(rows)
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *blogcontent.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		category.ID, category.Name, category.Slug, category.Description,
		category.Status, category.CreatedAt, category.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create category", err)
	}
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*blogcontent.Category, error) {
	query := `
		SELECT id, name, slug, description, status, created_at, updated_at
		FROM categories WHERE id = $1`

	var category blogcontent.Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.Slug, &category.Description,
		&category.Status, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blogcontent.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *Repository) GetCategoryBySlug(ctx context.Context, slug string) (*blogcontent.Category, error) {
	query := `
		SELECT id, name, slug, description, status, created_at, updated_at
		FROM categories WHERE slug = $1`

	var category blogcontent.Category
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&category.ID, &category.Name, &category.Slug, &category.Description,
		&category.Status, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blogcontent.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*blogcontent.Category, error) {
	query := `
		SELECT id, name, slug, description, status, created_at, updated_at
		FROM categories ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list categories", err)
	}
	defer rows.Close()

	var categories []*blogcontent.Category
	for rows.Next() {
		var category blogcontent.Category
		err := rows.Scan(
			&category.ID, &category.Name, &category.Slug, &category.Description,
			&category.Status, &category.CreatedAt, &category.UpdatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

// Scanning helpers

func marshalDocument(blog *blogcontent.Blog) (tags, sections, meta []byte, err error) {
	if tags, err = json.Marshal(blog.Tags); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal tags: %w", err)
	}
	if sections, err = json.Marshal(blog.Sections); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal sections: %w", err)
	}
	if meta, err = json.Marshal(blog.Meta); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal meta: %w", err)
	}
	return tags, sections, meta, nil
}

func scanBlog(row pgx.Row) (*blogcontent.Blog, error) {
	var blog blogcontent.Blog
	var tags, sections, meta []byte
	var categoryID *uuid.UUID
	var catName, catSlug, catDescription, catStatus *string
	var catCreatedAt, catUpdatedAt *time.Time

	err := row.Scan(
		&blog.ID, &blog.Title, &blog.Slug, &blog.Description, &tags,
		&blog.CategoryID, &blog.Featured, &blog.Status, &blog.MainImage,
		&sections, &meta, &blog.AuthorID, &blog.AuthorName,
		&blog.CreatedAt, &blog.UpdatedAt,
		&categoryID, &catName, &catSlug, &catDescription, &catStatus,
		&catCreatedAt, &catUpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tags, &blog.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	if err := json.Unmarshal(sections, &blog.Sections); err != nil {
		return nil, fmt.Errorf("unmarshal sections: %w", err)
	}
	if err := json.Unmarshal(meta, &blog.Meta); err != nil {
		return nil, fmt.Errorf("unmarshal meta: %w", err)
	}
	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	if blog.Sections == nil {
		blog.Sections = []blogcontent.Section{}
	}

	if categoryID != nil {
		blog.Category = &blogcontent.Category{
			ID:          *categoryID,
			Name:        deref(catName),
			Slug:        deref(catSlug),
			Description: deref(catDescription),
			Status:      blogcontent.Status(deref(catStatus)),
		}
		if catCreatedAt != nil {
			blog.Category.CreatedAt = *catCreatedAt
		}
		if catUpdatedAt != nil {
			blog.Category.UpdatedAt = *catUpdatedAt
		}
	}
	return &blog, nil
}

func collectBlogs(rows pgx.Rows) ([]*blogcontent.Blog, error) {
	var blogs []*blogcontent.Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}
	return blogs, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
