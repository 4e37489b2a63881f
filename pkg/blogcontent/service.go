package blogcontent

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the blog content library
type Service interface {
	// Blog operations
	CreateBlog(ctx context.Context, req CreateBlogRequest) (*Blog, error)
	GetBlog(ctx context.Context, id uuid.UUID) (*Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (*Blog, error)
	GetAllBlogs(ctx context.Context) ([]*Blog, error)
	GetBlogsByCategory(ctx context.Context, req GetBlogsByCategoryRequest) (*BlogPage, error)
	UpdateBlog(ctx context.Context, id uuid.UUID, req UpdateBlogRequest) (*Blog, error)
	DeleteBlog(ctx context.Context, id uuid.UUID) error

	// Category operations
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	GetCategory(ctx context.Context, ref string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}
