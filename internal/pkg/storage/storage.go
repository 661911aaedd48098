package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage is the blob-storage capability the core depends on. An
// implementation is injected at construction time; the core never assumes
// a particular on-disk layout.
type FileStorage interface {
	// Upload persists a file and returns the storage path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL generates a presigned/public URL
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
