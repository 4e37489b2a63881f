package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent/api"
	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent/repo/memory"
	memorystorage "github.com/Nainjain26/new-blogbackend/pkg/blogcontent/storage/memory"
)

type testServer struct {
	router   http.Handler
	service  blogcontent.Service
	auth     *jwtauth.JWTAuth
	category *blogcontent.Category
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	svc, err := blogcontent.New(
		blogcontent.WithRepository(memory.New()),
		blogcontent.WithBlobStore(memorystorage.New()),
	)
	require.NoError(t, err)

	category, err := svc.CreateCategory(context.Background(), blogcontent.CreateCategoryRequest{
		Name:   "General",
		Status: "published",
	})
	require.NoError(t, err)

	auth := jwtauth.New("HS256", []byte("test-secret"), nil)

	r := chi.NewRouter()
	r.Mount("/blogs", api.NewBlogHandler(svc, auth).Routes())
	r.Mount("/categories", api.NewCategoryHandler(svc, auth).Routes())

	return &testServer{router: r, service: svc, auth: auth, category: category}
}

func (ts *testServer) token(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()

	_, tokenString, err := ts.auth.Encode(map[string]interface{}{
		"user_id": userID.String(),
		"name":    "Test User",
		"role":    role,
	})
	require.NoError(t, err)
	return tokenString
}

const validMeta = `{"meta_title":"t","meta_description":"d"}`

func multipartBody(t *testing.T, fields map[string]string, files map[string][]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for field, names := range files {
		for _, name := range names {
			part, err := writer.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = part.Write([]byte("file-bytes-" + name))
			require.NoError(t, err)
		}
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func createBlogFields(categoryRef string) map[string]string {
	return map[string]string{
		"title":       "A Fine Post",
		"description": "words",
		"category":    categoryRef,
		"tags":        `["go","http"]`,
		"sections":    `[{"section_title":"One","section_description":"first"}]`,
		"meta":        validMeta,
		"status":      "published",
	}
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateBlogAuthorization(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
		{"non-admin token", ts.token(t, uuid.New(), "editor"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, createBlogFields(ts.category.Slug), map[string][]string{
				"mainImage": {"cover.png"},
			})
			req := httptest.NewRequest(http.MethodPost, "/blogs", body)
			req.Header.Set("Content-Type", contentType)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			rec := ts.do(req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreateBlogAsAdmin(t *testing.T) {
	ts := newTestServer(t)
	adminID := uuid.New()

	body, contentType := multipartBody(t, createBlogFields(ts.category.Slug), map[string][]string{
		"mainImage":      {"cover.png"},
		"section_images": {"one.png"},
	})
	req := httptest.NewRequest(http.MethodPost, "/blogs", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+ts.token(t, adminID, "admin"))

	rec := ts.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var blog blogcontent.Blog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blog))
	assert.Equal(t, "a-fine-post", blog.Slug)
	assert.Equal(t, adminID, blog.AuthorID)
	require.Len(t, blog.Sections, 1)
	assert.NotEmpty(t, blog.Sections[0].Image)
}

func TestCreateBlogValidationErrorBody(t *testing.T) {
	ts := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{"description": "only"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/blogs", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+ts.token(t, uuid.New(), "admin"))

	rec := ts.do(req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Details)
	assert.Equal(t, "missing_field", resp.Details.Code)
	assert.Contains(t, resp.Details.Fields, "title")
	assert.Contains(t, resp.Details.Fields, "mainImage")
}

func TestCreateBlogTooManySectionImages(t *testing.T) {
	ts := newTestServer(t)

	names := make([]string, 11)
	for i := range names {
		names[i] = fmt.Sprintf("img-%d.png", i)
	}
	body, contentType := multipartBody(t, createBlogFields(ts.category.Slug), map[string][]string{
		"mainImage":      {"cover.png"},
		"section_images": names,
	})
	req := httptest.NewRequest(http.MethodPost, "/blogs", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+ts.token(t, uuid.New(), "admin"))

	rec := ts.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func (ts *testServer) createBlog(t *testing.T, author blogcontent.Principal) *blogcontent.Blog {
	t.Helper()

	blog, err := ts.service.CreateBlog(context.Background(), blogcontent.CreateBlogRequest{
		Title:       "Seeded " + uuid.New().String()[:8],
		Description: "seed",
		Category:    ts.category.ID.String(),
		Meta:        validMeta,
		Status:      "published",
		MainImage: &blogcontent.FileUpload{
			Filename: "cover.png",
			MimeType: "image/png",
			Reader:   strings.NewReader("bytes"),
		},
		Author: author,
	})
	require.NoError(t, err)
	return blog
}

func TestGetBlogRoutes(t *testing.T) {
	ts := newTestServer(t)
	author := blogcontent.Principal{ID: uuid.New(), Name: "Writer", Role: "admin"}
	blog := ts.createBlog(t, author)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/blogs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var blogs []*blogcontent.Blog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blogs))
	assert.Len(t, blogs, 1)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/blogs/"+blog.Slug, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/blogs/no-such-slug", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBlogsByCategoryRoutes(t *testing.T) {
	ts := newTestServer(t)
	author := blogcontent.Principal{ID: uuid.New(), Name: "Writer", Role: "admin"}
	for i := 0; i < 3; i++ {
		ts.createBlog(t, author)
	}

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/blogs/category/"+ts.category.Slug+"?page=1&limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page blogcontent.BlogPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Blogs, 2)
	assert.Equal(t, 3, page.PageInfo.Total)
	assert.Equal(t, 2, page.PageInfo.Pages)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/blogs/category/id/"+ts.category.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/blogs/category/"+ts.category.Slug+"?page=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/blogs/category/id/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBlogAuthorOrAdmin(t *testing.T) {
	ts := newTestServer(t)
	authorID := uuid.New()
	blog := ts.createBlog(t, blogcontent.Principal{ID: authorID, Name: "Writer", Role: "editor"})

	doUpdate := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/blogs/"+blog.ID.String(), strings.NewReader("title=Renamed"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Authorization", "Bearer "+token)
		return ts.do(req)
	}

	// a different non-admin user is rejected
	rec := doUpdate(ts.token(t, uuid.New(), "editor"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// the author may update their own post
	rec = doUpdate(ts.token(t, authorID, "editor"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated blogcontent.Blog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Title)

	// an admin may update anyone's post
	rec = doUpdate(ts.token(t, uuid.New(), "admin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteBlog(t *testing.T) {
	ts := newTestServer(t)
	authorID := uuid.New()
	blog := ts.createBlog(t, blogcontent.Principal{ID: authorID, Name: "Writer", Role: "editor"})

	req := httptest.NewRequest(http.MethodDelete, "/blogs/"+blog.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+ts.token(t, uuid.New(), "admin"))
	rec := ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	var confirmation map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &confirmation))
	assert.NotEmpty(t, confirmation["message"])

	req = httptest.NewRequest(http.MethodDelete, "/blogs/"+blog.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+ts.token(t, uuid.New(), "admin"))
	rec = ts.do(req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryRoutes(t *testing.T) {
	ts := newTestServer(t)

	// creation requires admin
	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Platform"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := ts.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Platform","status":"published"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ts.token(t, uuid.New(), "admin"))
	rec = ts.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var category blogcontent.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &category))
	assert.Equal(t, "platform", category.Slug)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []*blogcontent.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	assert.Len(t, categories, 2)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/categories/platform", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/categories/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssetRoutes(t *testing.T) {
	store := memorystorage.New()
	require.NoError(t, store.Upload(context.Background(), "some-key",
		strings.NewReader("hello asset"), blogcontent.UploadParams{MimeType: "text/plain"}))

	r := chi.NewRouter()
	r.Mount("/assets", api.NewAssetHandler(store).Routes())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/some-key", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	data, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello asset", string(data))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
