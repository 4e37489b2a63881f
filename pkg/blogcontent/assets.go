package blogcontent

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent/imaging"
)

// Uploader turns received files into durable assets on a BlobStore and
// removes them again by public URL. Object keys are fresh UUIDs so the
// asset identifier is always recoverable from the URL's last path segment.
type Uploader struct {
	store BlobStore
}

// NewUploader creates an Uploader backed by the given store.
func NewUploader(store BlobStore) *Uploader {
	return &Uploader{store: store}
}

// Upload stores the file and returns its public URL. When edits are
// supplied the image is transformed first and uploaded as JPEG.
func (u *Uploader) Upload(ctx context.Context, file *FileUpload, edits []imaging.Edit) (string, error) {
	reader := file.Reader
	mimeType := file.MimeType

	if len(edits) > 0 {
		processed, processedMime, err := imaging.Apply(reader, edits)
		if err != nil {
			return "", fmt.Errorf("transform %s: %w", file.Filename, err)
		}
		reader, mimeType = processed, processedMime
	}

	objectKey := uuid.New().String()
	if err := u.store.Upload(ctx, objectKey, reader, UploadParams{MimeType: mimeType}); err != nil {
		return "", fmt.Errorf("upload %s: %w", file.Filename, err)
	}

	assetURL, err := u.store.GetPublicURL(ctx, objectKey)
	if err != nil {
		return "", fmt.Errorf("resolve url for %s: %w", objectKey, err)
	}
	return assetURL, nil
}

// Delete removes the asset addressed by a public URL previously returned
// from Upload.
func (u *Uploader) Delete(ctx context.Context, assetURL string) error {
	key := AssetKeyFromURL(assetURL)
	if key == "" {
		return fmt.Errorf("cannot derive asset key from %q", assetURL)
	}
	return u.store.Delete(ctx, key)
}

// AssetKeyFromURL derives the asset identifier from a public URL: the last
// path segment with any file extension stripped. Returns "" when the URL
// carries no usable segment.
func AssetKeyFromURL(assetURL string) string {
	parsed, err := url.Parse(assetURL)
	if err != nil {
		return ""
	}
	segment := path.Base(strings.TrimSuffix(parsed.Path, "/"))
	if segment == "." || segment == "/" || segment == "" {
		return ""
	}
	return strings.TrimSuffix(segment, path.Ext(segment))
}
