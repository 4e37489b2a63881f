package api

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
)

const (
	maxMultipartMemory = 32 << 20 // 32 MiB
	maxSectionImages   = 10
)

// BlogHandler handles HTTP requests for blog posts
type BlogHandler struct {
	service blogcontent.Service
	auth    *jwtauth.JWTAuth
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(service blogcontent.Service, auth *jwtauth.JWTAuth) *BlogHandler {
	return &BlogHandler{service: service, auth: auth}
}

// Routes returns the routes for blog posts. Reads are public; writes sit
// behind the JWT gate, with creation restricted to administrators and
// update/delete to the author or an administrator.
func (h *BlogHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetAllBlogs)
	r.Get("/category/id/{categoryID}", h.GetBlogsByCategoryID)
	r.Get("/category/{slug}", h.GetBlogsByCategorySlug)
	r.Get("/{slug}", h.GetBlogBySlug)

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.auth))
		r.Use(jwtauth.Authenticator)

		r.With(RequireAdmin).Post("/", h.CreateBlog)
		r.Put("/{id}", h.UpdateBlog)
		r.Delete("/{id}", h.DeleteBlog)
	})

	return r
}

// CreateBlog handles POST /blogs
func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromRequest(r)
	if err != nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Error: "invalid token"})
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "expected multipart form data"})
		return
	}

	sectionImages, err := sectionFiles(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
		return
	}

	req := blogcontent.CreateBlogRequest{
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		Category:      r.FormValue("category"),
		Tags:          r.FormValue("tags"),
		Sections:      r.FormValue("sections"),
		Meta:          r.FormValue("meta"),
		Status:        r.FormValue("status"),
		Featured:      r.FormValue("featured"),
		MainImageEdit: r.FormValue("mainImageEdit"),
		MainImage:     formFile(r, "mainImage"),
		SectionImages: sectionImages,
		Author:        principal,
	}

	blog, err := h.service.CreateBlog(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, blog)
}

// GetAllBlogs handles GET /blogs
func (h *BlogHandler) GetAllBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.GetAllBlogs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, blogs)
}

// GetBlogsByCategoryID handles GET /blogs/category/id/{categoryID}
func (h *BlogHandler) GetBlogsByCategoryID(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "invalid category id"})
		return
	}

	page, pageSize, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.service.GetBlogsByCategory(r.Context(), blogcontent.GetBlogsByCategoryRequest{
		CategoryID: categoryID,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// GetBlogsByCategorySlug handles GET /blogs/category/{slug}
func (h *BlogHandler) GetBlogsByCategorySlug(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.service.GetBlogsByCategory(r.Context(), blogcontent.GetBlogsByCategoryRequest{
		CategorySlug: chi.URLParam(r, "slug"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// GetBlogBySlug handles GET /blogs/{slug}
func (h *BlogHandler) GetBlogBySlug(w http.ResponseWriter, r *http.Request) {
	blog, err := h.service.GetBlogBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, blog)
}

// UpdateBlog handles PUT /blogs/{id}
func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, _, ok := h.authorizeWrite(w, r)
	if !ok {
		return
	}

	if err := parseWriteForm(r); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
		return
	}

	sectionImages, err := sectionFiles(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
		return
	}

	req := blogcontent.UpdateBlogRequest{
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		Category:      r.FormValue("category"),
		Tags:          r.FormValue("tags"),
		Sections:      r.FormValue("sections"),
		Meta:          r.FormValue("meta"),
		Status:        r.FormValue("status"),
		Featured:      r.FormValue("featured"),
		MainImageEdit: r.FormValue("mainImageEdit"),
		MainImage:     formFile(r, "mainImage"),
		SectionImages: sectionImages,
	}

	updated, err := h.service.UpdateBlog(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, updated)
}

// DeleteBlog handles DELETE /blogs/{id}
func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, _, ok := h.authorizeWrite(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteBlog(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"message": "blog deleted successfully"})
}

// authorizeWrite resolves the target blog and enforces the
// author-or-admin rule shared by update and delete.
func (h *BlogHandler) authorizeWrite(w http.ResponseWriter, r *http.Request) (uuid.UUID, *blogcontent.Blog, bool) {
	principal, err := PrincipalFromRequest(r)
	if err != nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Error: "invalid token"})
		return uuid.Nil, nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "invalid blog id"})
		return uuid.Nil, nil, false
	}

	blog, err := h.service.GetBlog(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return uuid.Nil, nil, false
	}

	if !principal.IsAdmin() && blog.AuthorID != principal.ID {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "not the author of this blog"})
		return uuid.Nil, nil, false
	}
	return id, blog, true
}

// parseWriteForm accepts multipart or url-encoded bodies so field-only
// updates don't have to fake a file upload.
func parseWriteForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return fmt.Errorf("malformed multipart form")
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("malformed form body")
	}
	return nil
}

func formFile(r *http.Request, field string) *blogcontent.FileUpload {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil
	}
	file, err := headers[0].Open()
	if err != nil {
		return nil
	}
	return &blogcontent.FileUpload{
		Filename: headers[0].Filename,
		MimeType: headers[0].Header.Get("Content-Type"),
		Reader:   file,
	}
}

func sectionFiles(r *http.Request) ([]*blogcontent.FileUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File["section_images"]
	if len(headers) > maxSectionImages {
		return nil, fmt.Errorf("at most %d section images are accepted", maxSectionImages)
	}

	files := make([]*blogcontent.FileUpload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("cannot read uploaded file %s", header.Filename)
		}
		files = append(files, &blogcontent.FileUpload{
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Reader:   file,
		})
	}
	return files, nil
}

func pageParams(r *http.Request) (page, pageSize int, err error) {
	page, err = queryInt(r, "page")
	if err != nil {
		return 0, 0, err
	}
	pageSize, err = queryInt(r, "limit")
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &blogcontent.ValidationError{
			Code:   blogcontent.CodeInvalidFormat,
			Fields: []string{name},
			Err:    fmt.Errorf("%s must be an integer", name),
		}
	}
	return value, nil
}
