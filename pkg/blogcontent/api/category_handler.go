package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	service blogcontent.Service
	auth    *jwtauth.JWTAuth
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service blogcontent.Service, auth *jwtauth.JWTAuth) *CategoryHandler {
	return &CategoryHandler{service: service, auth: auth}
}

// Routes returns the routes for categories. Listing and lookup are
// public; creation is restricted to administrators.
func (h *CategoryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListCategories)
	r.Get("/{ref}", h.GetCategory)

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.auth))
		r.Use(jwtauth.Authenticator)
		r.Use(RequireAdmin)

		r.Post("/", h.CreateCategory)
	})

	return r
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req blogcontent.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	category, err := h.service.CreateCategory(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, category)
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, categories)
}

// GetCategory handles GET /categories/{ref} by id or slug
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, category)
}
