package storage

import (
	"context"
	"io"
)

// Storage defines the interface for upload file storage backends.
type Storage interface {
	// Save stores a file under the given key and returns the number of
	// bytes written.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) (int64, error)

	// Open returns a reader for the stored file.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file by key. Returns nil if the file doesn't exist.
	Delete(ctx context.Context, key string) error

	// Exists checks whether a file is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Stat returns file metadata.
	Stat(ctx context.Context, key string) (*FileInfo, error)

	// URL returns the public URL for a stored file.
	URL(key string) string
}

// FileInfo describes a stored file
type FileInfo struct {
	Key         string
	Size        int64
	ContentType string
	URL         string
}
