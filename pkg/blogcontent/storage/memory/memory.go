// Package memory provides an in-memory implementation of the blogcontent
// BlobStore interface, suitable for testing and development.
package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
)

// Backend is an in-memory implementation of the blogcontent.BlobStore interface
type Backend struct {
	mu              sync.RWMutex
	objects         map[string][]byte
	objectsMimeType map[string]string
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects:         make(map[string][]byte),
		objectsMimeType: make(map[string]string),
	}
}

// Upload uploads content directly
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader, params blogcontent.UploadParams) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[objectKey] = data
	mimeType := params.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	b.objectsMimeType[objectKey] = mimeType
	return nil
}

// Download downloads content directly
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, blogcontent.ErrAssetNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// GetPublicURL returns a synthetic URL for the object
func (b *Backend) GetPublicURL(ctx context.Context, objectKey string) (string, error) {
	return "memory:///" + objectKey, nil
}

// Delete deletes an object
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return blogcontent.ErrAssetNotFound
	}
	delete(b.objects, objectKey)
	delete(b.objectsMimeType, objectKey)
	return nil
}

// Len reports the number of stored objects.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}
