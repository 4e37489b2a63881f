package blogcontent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// service implements the Service interface
type service struct {
	repository Repository
	uploader   *Uploader
	logger     *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the asset storage backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.uploader = NewUploader(store)
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{logger: slog.Default()}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

// Blog operations

func (s *service) CreateBlog(ctx context.Context, req CreateBlogRequest) (*Blog, error) {
	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(req.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(req.Meta) == "" {
		missing = append(missing, "meta")
	}
	if req.MainImage == nil {
		missing = append(missing, "mainImage")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}

	tags, err := parseStringList(req.Tags)
	if err != nil {
		return nil, invalidFormat("tags", err)
	}
	sections, err := parseSections(req.Sections)
	if err != nil {
		return nil, invalidFormat("sections", err)
	}
	meta, err := parseMeta(req.Meta)
	if err != nil {
		return nil, invalidFormat("meta", err)
	}
	if fields := missingMetaFields(meta); len(fields) > 0 {
		return nil, &ValidationError{Code: CodeInvalidFormat, Fields: fields}
	}
	edits, err := parseEdits(req.MainImageEdit)
	if err != nil {
		return nil, invalidFormat("mainImageEdit", err)
	}

	status := StatusDraft
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status = Status(raw)
		if !status.IsValid() {
			return nil, invalidFormat("status", fmt.Errorf("unknown status %q", raw))
		}
	}

	// Referential integrity before any upload is issued.
	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	assignments, verr := planSectionAssets(sections, req.SectionImages, nil)
	if verr != nil {
		return nil, verr
	}

	// Every uploaded asset is tracked so a failure later in the workflow
	// can compensate instead of orphaning objects on the remote store.
	var uploaded []string
	fail := func(err error) (*Blog, error) {
		s.removeAssets(ctx, uploaded)
		return nil, err
	}

	mainImage, err := s.uploader.Upload(ctx, req.MainImage, edits)
	if err != nil {
		return fail(&UploadError{Asset: "mainImage", Op: "upload", Err: err})
	}
	uploaded = append(uploaded, mainImage)

	for i := range sections {
		if assignments[i] != nil {
			assetURL, err := s.uploader.Upload(ctx, assignments[i], nil)
			if err != nil {
				return fail(&UploadError{Asset: fmt.Sprintf("section_images[%d]", i), Op: "upload", Err: err})
			}
			uploaded = append(uploaded, assetURL)
			sections[i].Image = assetURL
		}
		sections[i].ImageRef = ""
		sections[i].Order = i
	}

	slug, err := s.uniqueBlogSlug(ctx, req.Title)
	if err != nil {
		return fail(fmt.Errorf("derive slug: %w", err))
	}

	now := time.Now().UTC()
	blog := &Blog{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
		Tags:        tags,
		CategoryID:  category.ID,
		Category:    category,
		Featured:    parseFeatured(req.Featured),
		Status:      status,
		MainImage:   mainImage,
		Sections:    sections,
		Meta:        meta,
		AuthorID:    req.Author.ID,
		AuthorName:  req.Author.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repository.CreateBlog(ctx, blog); err != nil {
		return fail(fmt.Errorf("persist blog: %w", err))
	}

	s.logger.Info("blog created", "id", blog.ID, "slug", blog.Slug, "sections", len(blog.Sections))
	return blog, nil
}

func (s *service) GetBlog(ctx context.Context, id uuid.UUID) (*Blog, error) {
	return s.repository.GetBlog(ctx, id)
}

func (s *service) GetBlogBySlug(ctx context.Context, slug string) (*Blog, error) {
	return s.repository.GetBlogBySlug(ctx, slug)
}

func (s *service) GetAllBlogs(ctx context.Context) ([]*Blog, error) {
	blogs, err := s.repository.ListBlogs(ctx)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []*Blog{}
	}
	return blogs, nil
}

func (s *service) GetBlogsByCategory(ctx context.Context, req GetBlogsByCategoryRequest) (*BlogPage, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var category *Category
	var err error
	if req.CategoryID != uuid.Nil {
		category, err = s.repository.GetCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
	} else {
		category, err = s.repository.GetCategoryBySlug(ctx, req.CategorySlug)
		if err != nil {
			return nil, err
		}
		// Slug listings are public-facing; an unpublished category is
		// indistinguishable from a missing one.
		if category.Status != StatusPublished {
			return nil, ErrCategoryNotFound
		}
	}

	blogs, total, err := s.repository.ListBlogsByCategory(ctx, category.ID, page, pageSize)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []*Blog{}
	}

	pages := 0
	if total > 0 {
		pages = (total + pageSize - 1) / pageSize
	}

	return &BlogPage{
		Blogs:    blogs,
		Category: category,
		PageInfo: PageInfo{Total: total, Page: page, Pages: pages, PageSize: pageSize},
	}, nil
}

func (s *service) UpdateBlog(ctx context.Context, id uuid.UUID, req UpdateBlogRequest) (*Blog, error) {
	blog, err := s.repository.GetBlog(ctx, id)
	if err != nil {
		return nil, err
	}

	previousAssets := collectAssetURLs(blog)

	if v := strings.TrimSpace(req.Title); v != "" {
		blog.Title = v
	}
	if v := strings.TrimSpace(req.Description); v != "" {
		blog.Description = v
	}
	if v := strings.TrimSpace(req.Category); v != "" {
		category, err := s.resolveCategory(ctx, v)
		if err != nil {
			return nil, err
		}
		blog.CategoryID = category.ID
		blog.Category = category
	}
	if strings.TrimSpace(req.Tags) != "" {
		tags, err := parseStringList(req.Tags)
		if err != nil {
			return nil, invalidFormat("tags", err)
		}
		blog.Tags = tags
	}
	if v := strings.TrimSpace(req.Status); v != "" {
		status := Status(v)
		if !status.IsValid() {
			return nil, invalidFormat("status", fmt.Errorf("unknown status %q", v))
		}
		blog.Status = status
	}
	if strings.TrimSpace(req.Featured) != "" {
		blog.Featured = parseFeatured(req.Featured)
	}
	if strings.TrimSpace(req.Meta) != "" {
		meta, err := parseMeta(req.Meta)
		if err != nil {
			return nil, invalidFormat("meta", err)
		}
		// Absent meta fields individually fall back to the stored values.
		if meta.Title == "" {
			meta.Title = blog.Meta.Title
		}
		if meta.Description == "" {
			meta.Description = blog.Meta.Description
		}
		if len(meta.Keywords) == 0 {
			meta.Keywords = blog.Meta.Keywords
		}
		blog.Meta = meta
	}

	edits, err := parseEdits(req.MainImageEdit)
	if err != nil {
		return nil, invalidFormat("mainImageEdit", err)
	}

	var uploaded []string
	fail := func(err error) (*Blog, error) {
		s.removeAssets(ctx, uploaded)
		return nil, err
	}

	if req.MainImage != nil {
		assetURL, err := s.uploader.Upload(ctx, req.MainImage, edits)
		if err != nil {
			return fail(&UploadError{Asset: "mainImage", Op: "upload", Err: err})
		}
		uploaded = append(uploaded, assetURL)
		blog.MainImage = assetURL
	}

	if strings.TrimSpace(req.Sections) != "" {
		// Sections are replaced wholesale; a descriptor without a new
		// upload or an explicit URL inherits the stored image at the
		// same position.
		sections, err := parseSections(req.Sections)
		if err != nil {
			return fail(invalidFormat("sections", err))
		}
		assignments, verr := planSectionAssets(sections, req.SectionImages, blog.Sections)
		if verr != nil {
			return fail(verr)
		}
		for i := range sections {
			if assignments[i] != nil {
				assetURL, err := s.uploader.Upload(ctx, assignments[i], nil)
				if err != nil {
					return fail(&UploadError{Asset: fmt.Sprintf("section_images[%d]", i), Op: "upload", Err: err})
				}
				uploaded = append(uploaded, assetURL)
				sections[i].Image = assetURL
			}
			sections[i].ImageRef = ""
			sections[i].Order = i
		}
		blog.Sections = sections
	} else if len(req.SectionImages) > 0 {
		return fail(invalidFormat("sections", fmt.Errorf("section_images supplied without section descriptors")))
	}

	blog.UpdatedAt = time.Now().UTC()
	if err := s.repository.UpdateBlog(ctx, blog); err != nil {
		return fail(fmt.Errorf("persist blog: %w", err))
	}

	// Assets the document no longer references are removed best-effort
	// once the update is durable.
	current := make(map[string]bool)
	for _, u := range collectAssetURLs(blog) {
		current[u] = true
	}
	var stale []string
	for _, u := range previousAssets {
		if !current[u] {
			stale = append(stale, u)
		}
	}
	s.removeAssets(ctx, stale)

	s.logger.Info("blog updated", "id", blog.ID, "slug", blog.Slug)
	return blog, nil
}

func (s *service) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	blog, err := s.repository.GetBlog(ctx, id)
	if err != nil {
		return err
	}

	// Hosted assets go first; failures are observable but never block
	// removal of the document itself.
	for _, section := range blog.Sections {
		if section.Image != "" {
			if err := s.uploader.Delete(ctx, section.Image); err != nil {
				s.logger.Warn("section asset delete failed", "blog_id", blog.ID, "url", section.Image, "error", err)
			}
		}
	}
	if blog.MainImage != "" {
		if err := s.uploader.Delete(ctx, blog.MainImage); err != nil {
			s.logger.Warn("main image delete failed", "blog_id", blog.ID, "url", blog.MainImage, "error", err)
		}
	}

	if err := s.repository.DeleteBlog(ctx, id); err != nil {
		return err
	}

	s.logger.Info("blog deleted", "id", blog.ID, "slug", blog.Slug)
	return nil
}

// Category operations

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, missingFields("name")
	}

	status := StatusDraft
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status = Status(raw)
		if !status.IsValid() {
			return nil, invalidFormat("status", fmt.Errorf("unknown status %q", raw))
		}
	}

	slug, err := s.uniqueCategorySlug(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("derive slug: %w", err)
	}

	now := time.Now().UTC()
	category := &Category{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repository.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("persist category: %w", err)
	}
	return category, nil
}

// GetCategory resolves a category by id or slug.
func (s *service) GetCategory(ctx context.Context, ref string) (*Category, error) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return s.repository.GetCategory(ctx, id)
	}
	return s.repository.GetCategoryBySlug(ctx, ref)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	categories, err := s.repository.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*Category{}
	}
	return categories, nil
}

// Helpers

// resolveCategory accepts a category id or slug and returns the matching
// record, or an InvalidReference validation error when nothing resolves.
func (s *service) resolveCategory(ctx context.Context, ref string) (*Category, error) {
	ref = strings.TrimSpace(ref)

	if id, err := uuid.Parse(ref); err == nil {
		category, err := s.repository.GetCategory(ctx, id)
		if errors.Is(err, ErrCategoryNotFound) {
			return nil, invalidReference("category")
		}
		return category, err
	}

	category, err := s.repository.GetCategoryBySlug(ctx, ref)
	if errors.Is(err, ErrCategoryNotFound) {
		return nil, invalidReference("category")
	}
	return category, err
}

// planSectionAssets decides, before any upload is issued, which received
// file backs each section. A descriptor with ImageRef claims the upload of
// that filename; one with an explicit Image URL keeps it; otherwise
// uploads are consumed in positional order. On update, prior holds the
// stored sections and a descriptor left without any source inherits the
// image at its position.
func planSectionAssets(sections []Section, uploads []*FileUpload, prior []Section) ([]*FileUpload, *ValidationError) {
	assignments := make([]*FileUpload, len(sections))
	used := make([]bool, len(uploads))

	byName := make(map[string]int)
	for i, f := range uploads {
		if f != nil && f.Filename != "" {
			if _, ok := byName[f.Filename]; !ok {
				byName[f.Filename] = i
			}
		}
	}

	next := 0
	for i := range sections {
		if ref := sections[i].ImageRef; ref != "" {
			j, ok := byName[ref]
			if !ok || used[j] {
				return nil, missingSectionAsset(fmt.Sprintf("sections[%d]", i))
			}
			assignments[i] = uploads[j]
			used[j] = true
			continue
		}
		if sections[i].Image != "" {
			continue
		}
		for next < len(uploads) && used[next] {
			next++
		}
		if next < len(uploads) {
			assignments[i] = uploads[next]
			used[next] = true
			next++
			continue
		}
		if i < len(prior) && prior[i].Image != "" {
			sections[i].Image = prior[i].Image
			continue
		}
		return nil, missingSectionAsset(fmt.Sprintf("sections[%d]", i))
	}

	return assignments, nil
}

func missingMetaFields(meta Meta) []string {
	var fields []string
	if meta.Title == "" {
		fields = append(fields, "meta_title")
	}
	if meta.Description == "" {
		fields = append(fields, "meta_description")
	}
	return fields
}

func collectAssetURLs(blog *Blog) []string {
	var urls []string
	if blog.MainImage != "" {
		urls = append(urls, blog.MainImage)
	}
	for _, section := range blog.Sections {
		if section.Image != "" {
			urls = append(urls, section.Image)
		}
	}
	return urls
}

func (s *service) removeAssets(ctx context.Context, urls []string) {
	for _, assetURL := range urls {
		if err := s.uploader.Delete(ctx, assetURL); err != nil {
			s.logger.Warn("asset cleanup failed", "url", assetURL, "error", err)
		}
	}
}

func (s *service) uniqueBlogSlug(ctx context.Context, title string) (string, error) {
	return s.uniqueSlug(ctx, title, func(ctx context.Context, slug string) (bool, error) {
		_, err := s.repository.GetBlogBySlug(ctx, slug)
		if errors.Is(err, ErrBlogNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *service) uniqueCategorySlug(ctx context.Context, name string) (string, error) {
	return s.uniqueSlug(ctx, name, func(ctx context.Context, slug string) (bool, error) {
		_, err := s.repository.GetCategoryBySlug(ctx, slug)
		if errors.Is(err, ErrCategoryNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	})
}

// uniqueSlug derives a slug from base and probes the repository, appending
// "-2", "-3", ... until a free one is found.
func (s *service) uniqueSlug(ctx context.Context, base string, taken func(context.Context, string) (bool, error)) (string, error) {
	slug := Slugify(base)
	if slug == "" {
		slug = uuid.New().String()[:8]
	}

	candidate := slug
	for n := 2; ; n++ {
		inUse, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, n)
	}
}
