package blogcontent

import (
	"io"

	"github.com/google/uuid"
)

// Request/Response DTOs

// FileUpload is a received multipart file ready for asset processing.
type FileUpload struct {
	Filename string
	MimeType string
	Reader   io.Reader
}

// CreateBlogRequest contains parameters for creating a blog post.
//
// The structured-text fields (Tags, Sections, Meta, MainImageEdit) arrive
// as serialized text from the multipart form and are normalized into typed
// values during validation. Tags accepts a JSON string array or a
// comma-separated list; Sections a JSON array of section descriptors; Meta
// a JSON object; MainImageEdit a JSON array of imaging edits.
type CreateBlogRequest struct {
	Title         string
	Description   string
	Category      string // category id or slug
	Tags          string
	Sections      string
	Meta          string
	Status        string
	Featured      string
	MainImageEdit string
	MainImage     *FileUpload
	SectionImages []*FileUpload
	Author        Principal
}

// UpdateBlogRequest contains parameters for a partial blog update. Empty
// text fields and nil uploads leave the stored values untouched; Sections,
// when supplied, replaces the stored sequence wholesale.
type UpdateBlogRequest struct {
	Title         string
	Description   string
	Category      string
	Tags          string
	Sections      string
	Meta          string
	Status        string
	Featured      string
	MainImageEdit string
	MainImage     *FileUpload
	SectionImages []*FileUpload
}

// GetBlogsByCategoryRequest contains parameters for a paged category
// listing. Exactly one of CategoryID and CategorySlug identifies the
// category; slug lookups additionally require the category itself to be
// published.
type GetBlogsByCategoryRequest struct {
	CategoryID   uuid.UUID
	CategorySlug string
	Page         int
	PageSize     int
}

// CreateCategoryRequest contains parameters for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}
