package blogcontent

import (
	"time"

	"github.com/google/uuid"
)

// Status is the domain type for publish lifecycle states.
type Status string

// Publish status constants (typed).
const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// IsValid reports whether the status is a known publish state.
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Category is a lookup-table entry blogs reference. Categories are managed
// by administrators; blog writes only ever read them.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Section is an ordered content block within a blog post. Order mirrors the
// section's position in the Blog.Sections slice.
//
// ImageRef is a request-side hint naming one of the uploaded files; it is
// consumed during asset assignment and never persisted.
type Section struct {
	Image       string   `json:"section_img"`
	ImageRef    string   `json:"image_ref,omitempty"`
	Title       string   `json:"section_title"`
	Description string   `json:"section_description"`
	List        []string `json:"section_list,omitempty"`
	Order       int      `json:"order"`
}

// Meta is the SEO metadata block attached to a blog post.
type Meta struct {
	Title       string   `json:"meta_title"`
	Description string   `json:"meta_description"`
	Keywords    []string `json:"meta_keywords,omitempty"`
}

// Blog represents a persisted blog post with its embedded sections and
// metadata. Category is populated on reads; only CategoryID is persisted
// on the document itself.
type Blog struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CategoryID  uuid.UUID `json:"category_id"`
	Category    *Category `json:"category,omitempty"`
	Featured    bool      `json:"featured"`
	Status      Status    `json:"status"`
	MainImage   string    `json:"main_image"`
	Sections    []Section `json:"sections"`
	Meta        Meta      `json:"meta"`
	AuthorID    uuid.UUID `json:"author_id"`
	AuthorName  string    `json:"author_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PageInfo describes one page of a paginated listing.
type PageInfo struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	Pages    int `json:"pages"`
	PageSize int `json:"page_size"`
}

// BlogPage is the result of a paged category listing.
type BlogPage struct {
	Blogs    []*Blog   `json:"blogs"`
	Category *Category `json:"category"`
	PageInfo PageInfo  `json:"pagination"`
}

// Principal is the authenticated identity attached to a request by the
// authorization gate. The service trusts it as-is for the author field.
type Principal struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
	Role string    `json:"role"`
}

// IsAdmin reports whether the principal holds the administrator capability.
func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}
