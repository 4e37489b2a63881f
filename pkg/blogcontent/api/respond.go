package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
)

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// ErrorDetails carries the machine-readable validation breakdown.
type ErrorDetails struct {
	Code   string   `json:"code"`
	Fields []string `json:"fields,omitempty"`
}

// writeError maps a service error onto the HTTP status taxonomy:
// validation errors are 400, missing records 404, everything else 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *blogcontent.ValidationError
	if errors.As(err, &verr) {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{
			Error: verr.Error(),
			Details: &ErrorDetails{
				Code:   string(verr.Code),
				Fields: verr.Fields,
			},
		})
		return
	}

	switch {
	case errors.Is(err, blogcontent.ErrBlogNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "blog not found"})
	case errors.Is(err, blogcontent.ErrCategoryNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "category not found"})
	case errors.Is(err, blogcontent.ErrAssetNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "asset not found"})
	default:
		var uerr *blogcontent.UploadError
		if errors.As(err, &uerr) {
			slog.Error("asset upload failed", "asset", uerr.Asset, "error", uerr.Err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: uerr.Error()})
			return
		}
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "internal server error"})
	}
}
