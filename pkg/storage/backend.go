package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a directory entry
type FileInfo struct {
	Name        string
	Path        string
	Size        int64
	ModTime     time.Time
	IsDir       bool
	IsRegular   bool
	Permissions uint32
}

// Backend defines the storage operations needed to synchronize one flat directory.
// Names are relative to the backend root. Implementations include the local
// filesystem and any go-billy filesystem.
type Backend interface {
	// List returns the immediate entries of the root directory, following symlinks
	// when deciding whether an entry is a regular file
	List(ctx context.Context) ([]FileInfo, error)

	// Read opens a file for reading
	Read(ctx context.Context, name string) (io.ReadCloser, error)

	// Write creates or replaces a file. The previous content stays in place
	// until the new content is fully written. If metadata is provided, the
	// modification time and permissions are preserved.
	Write(ctx context.Context, name string, reader io.Reader, size int64, metadata *FileInfo) error

	// Exists checks if an entry exists
	Exists(ctx context.Context, name string) (bool, error)

	// Stat returns entry metadata
	Stat(ctx context.Context, name string) (*FileInfo, error)

	// Root returns the directory the backend operates on
	Root() string

	// Close releases any resources held by the backend
	Close() error
}
