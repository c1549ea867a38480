package storage

import (
	"context"
	"io"
)

// Storage defines the interface for file storage operations.
type Storage interface {
	// Save saves a file under the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get retrieves a file by its relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file by its relative path.
	Delete(ctx context.Context, path string) error
}
