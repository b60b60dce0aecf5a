package fsx

import (
	"context"
	"io"
)

// FileSystem abstracts object storage for uploaded assets
type FileSystem interface {
	// WriteFile stores data under path, overwriting any existing object
	WriteFile(ctx context.Context, path string, data []byte) error

	// ReadFileStream opens the object at path for reading
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)

	// DeleteFile removes the object at path
	DeleteFile(ctx context.Context, path string) error

	// Join builds a storage path from segments
	Join(parts ...string) string
}
