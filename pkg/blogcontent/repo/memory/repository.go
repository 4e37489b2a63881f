// Package memory provides an in-memory implementation of the blogcontent
// Repository interface, suitable for testing and development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
)

// repository is an in-memory repository implementation.
type repository struct {
	mu         sync.RWMutex
	blogs      map[uuid.UUID]*blogcontent.Blog
	categories map[uuid.UUID]*blogcontent.Category
}

// New creates a new in-memory repository.
func New() blogcontent.Repository {
	return &repository{
		blogs:      make(map[uuid.UUID]*blogcontent.Blog),
		categories: make(map[uuid.UUID]*blogcontent.Category),
	}
}

// Blog operations

func (r *repository) CreateBlog(ctx context.Context, blog *blogcontent.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.blogs[blog.ID] = cloneBlog(blog)
	return nil
}

func (r *repository) GetBlog(ctx context.Context, id uuid.UUID) (*blogcontent.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blog, exists := r.blogs[id]
	if !exists {
		return nil, blogcontent.ErrBlogNotFound
	}
	return r.withCategory(cloneBlog(blog)), nil
}

func (r *repository) GetBlogBySlug(ctx context.Context, slug string) (*blogcontent.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, blog := range r.blogs {
		if blog.Slug == slug {
			return r.withCategory(cloneBlog(blog)), nil
		}
	}
	return nil, blogcontent.ErrBlogNotFound
}

func (r *repository) UpdateBlog(ctx context.Context, blog *blogcontent.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.blogs[blog.ID]; !exists {
		return blogcontent.ErrBlogNotFound
	}
	r.blogs[blog.ID] = cloneBlog(blog)
	return nil
}

func (r *repository) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.blogs[id]; !exists {
		return blogcontent.ErrBlogNotFound
	}
	delete(r.blogs, id)
	return nil
}

func (r *repository) ListBlogs(ctx context.Context) ([]*blogcontent.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blogs := make([]*blogcontent.Blog, 0, len(r.blogs))
	for _, blog := range r.blogs {
		blogs = append(blogs, r.withCategory(cloneBlog(blog)))
	}
	sortNewestFirst(blogs)
	return blogs, nil
}

func (r *repository) ListBlogsByCategory(ctx context.Context, categoryID uuid.UUID, page, pageSize int) ([]*blogcontent.Blog, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*blogcontent.Blog
	for _, blog := range r.blogs {
		if blog.CategoryID == categoryID && blog.Status == blogcontent.StatusPublished {
			matches = append(matches, r.withCategory(cloneBlog(blog)))
		}
	}
	sortNewestFirst(matches)

	total := len(matches)
	start := (page - 1) * pageSize
	if start >= total {
		return []*blogcontent.Blog{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return matches[start:end], total, nil
}

// Category operations

func (r *repository) CreateCategory(ctx context.Context, category *blogcontent.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *repository) GetCategory(ctx context.Context, id uuid.UUID) (*blogcontent.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, exists := r.categories[id]
	if !exists {
		return nil, blogcontent.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *repository) GetCategoryBySlug(ctx context.Context, slug string) (*blogcontent.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.categories {
		if category.Slug == slug {
			copied := *category
			return &copied, nil
		}
	}
	return nil, blogcontent.ErrCategoryNotFound
}

func (r *repository) ListCategories(ctx context.Context) ([]*blogcontent.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*blogcontent.Category, 0, len(r.categories))
	for _, category := range r.categories {
		copied := *category
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// withCategory populates the blog's Category from the lookup table. Caller
// must hold at least the read lock.
func (r *repository) withCategory(blog *blogcontent.Blog) *blogcontent.Blog {
	if category, exists := r.categories[blog.CategoryID]; exists {
		copied := *category
		blog.Category = &copied
	}
	return blog
}

func sortNewestFirst(blogs []*blogcontent.Blog) {
	sort.Slice(blogs, func(i, j int) bool {
		if blogs[i].CreatedAt.Equal(blogs[j].CreatedAt) {
			return blogs[i].ID.String() < blogs[j].ID.String()
		}
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})
}

func cloneBlog(blog *blogcontent.Blog) *blogcontent.Blog {
	copied := *blog
	copied.Category = nil

	copied.Tags = append([]string{}, blog.Tags...)
	copied.Sections = make([]blogcontent.Section, len(blog.Sections))
	for i, section := range blog.Sections {
		copied.Sections[i] = section
		copied.Sections[i].List = append([]string{}, section.List...)
	}
	copied.Meta.Keywords = append([]string{}, blog.Meta.Keywords...)
	return &copied
}
