package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
)

// AssetHandler serves stored objects over HTTP. It backs the public URLs
// the filesystem storage backend hands out; remote backends serve their
// objects themselves.
type AssetHandler struct {
	store blogcontent.BlobStore
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(store blogcontent.BlobStore) *AssetHandler {
	return &AssetHandler{store: store}
}

// Routes returns the routes for assets
func (h *AssetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{key}", h.GetAsset)
	return r
}

// GetAsset handles GET /assets/{key}
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer body.Close()

	// Sniff the content type from the first chunk before streaming.
	buffer := make([]byte, 512)
	n, err := io.ReadFull(body, buffer)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(buffer[:n]))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer[:n])
	io.Copy(w, body)
}
