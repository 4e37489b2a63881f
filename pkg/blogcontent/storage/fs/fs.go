// Package fs provides a filesystem implementation of the blogcontent
// BlobStore interface.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
)

// Backend is a filesystem implementation of the blogcontent.BlobStore interface
type Backend struct {
	baseDir   string
	urlPrefix string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir   string // Base directory for storing files
	URLPrefix string // URL prefix under which stored objects are served
}

// New creates a new filesystem storage backend
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir:   config.BaseDir,
		urlPrefix: strings.TrimSuffix(config.URLPrefix, "/"),
	}, nil
}

// Upload writes the object to disk under the base directory
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader, params blogcontent.UploadParams) error {
	filePath, err := b.objectPath(objectKey)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Download opens the stored object for reading
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	filePath, err := b.objectPath(objectKey)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if os.IsNotExist(err) {
		return nil, blogcontent.ErrAssetNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// GetPublicURL returns the URL under which the object is served
func (b *Backend) GetPublicURL(ctx context.Context, objectKey string) (string, error) {
	if b.urlPrefix == "" {
		return "", errors.New("url prefix is not configured")
	}
	return b.urlPrefix + "/" + objectKey, nil
}

// Delete removes the object from disk
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	filePath, err := b.objectPath(objectKey)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return blogcontent.ErrAssetNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	b.cleanupEmptyDirectories(filepath.Dir(filePath))
	return nil
}

// objectPath resolves the key to a path inside the base directory and
// rejects keys that would escape it.
func (b *Backend) objectPath(objectKey string) (string, error) {
	if objectKey == "" {
		return "", errors.New("object key is required")
	}
	filePath := filepath.Join(b.baseDir, filepath.FromSlash(objectKey))
	if !strings.HasPrefix(filePath, filepath.Clean(b.baseDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid object key: %s", objectKey)
	}
	return filePath, nil
}

// cleanupEmptyDirectories removes directories left empty after a delete,
// walking up to but never past the base directory.
func (b *Backend) cleanupEmptyDirectories(dir string) {
	base := filepath.Clean(b.baseDir)
	for dir != base && strings.HasPrefix(dir, base) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
