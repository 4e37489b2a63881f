package blogcontent

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// BlobStore defines the interface for asset storage backends
type BlobStore interface {
	// Upload uploads an object directly
	Upload(ctx context.Context, objectKey string, reader io.Reader, params UploadParams) error

	// Download downloads an object directly
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// GetPublicURL returns the durable, publicly resolvable URL for an object
	GetPublicURL(ctx context.Context, objectKey string) (string, error)

	// Delete deletes an object
	Delete(ctx context.Context, objectKey string) error
}

// UploadParams contains parameters for uploading an object
type UploadParams struct {
	MimeType string
}

// Repository defines the interface for blog and category persistence
type Repository interface {
	// Blog operations
	CreateBlog(ctx context.Context, blog *Blog) error
	GetBlog(ctx context.Context, id uuid.UUID) (*Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (*Blog, error)
	UpdateBlog(ctx context.Context, blog *Blog) error
	DeleteBlog(ctx context.Context, id uuid.UUID) error

	// ListBlogs returns all blogs newest-created first with Category populated.
	ListBlogs(ctx context.Context) ([]*Blog, error)

	// ListBlogsByCategory returns the requested page of published blogs in a
	// category, newest-created first, along with the total count of matches.
	ListBlogsByCategory(ctx context.Context, categoryID uuid.UUID, page, pageSize int) ([]*Blog, int, error)

	// Category operations
	CreateCategory(ctx context.Context, category *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}
