package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
)

// MemoryRoot is the directory NewMemory synchronizes inside its filesystem
const MemoryRoot = "sync"

// Billy is a storage backend over a go-billy filesystem
type Billy struct {
	fs   billy.Filesystem
	root string
}

// NewBilly creates a backend rooted at root inside fsys. The root must be an
// existing directory.
func NewBilly(fsys billy.Filesystem, root string) (*Billy, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	return &Billy{fs: fsys, root: root}, nil
}

// NewMemory creates an in-memory backend with an empty MemoryRoot directory
func NewMemory() (*Billy, error) {
	fsys := memfs.New()
	if err := fsys.MkdirAll(MemoryRoot, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return NewBilly(fsys, MemoryRoot)
}

// Filesystem returns the underlying go-billy filesystem
func (b *Billy) Filesystem() billy.Filesystem {
	return b.fs
}

func (b *Billy) path(name string) string {
	return b.fs.Join(b.root, name)
}

// List returns the immediate entries of the root directory
func (b *Billy) List(ctx context.Context) ([]FileInfo, error) {
	entries, err := b.fs.ReadDir(b.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		info := entry
		if entry.Mode()&os.ModeSymlink != 0 {
			if target, err := b.fs.Stat(b.path(entry.Name())); err == nil {
				info = target
			}
		}

		files = append(files, toFileInfo(entry.Name(), b.path(entry.Name()), info))
	}

	return files, nil
}

// Read opens a file for reading
func (b *Billy) Read(ctx context.Context, name string) (io.ReadCloser, error) {
	file, err := b.fs.Open(b.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Write writes to a temporary file and renames it over the target
func (b *Billy) Write(ctx context.Context, name string, reader io.Reader, size int64, metadata *FileInfo) error {
	tmp, err := b.fs.TempFile(b.root, tempPrefix)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			tmp.Close()
			b.fs.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmp, reader)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if written != size {
		return fmt.Errorf("incomplete write: expected %d bytes, wrote %d", size, written)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	// Metadata is best effort: not every billy filesystem supports it
	if change, ok := b.fs.(billy.Change); ok && metadata != nil {
		if metadata.Permissions != 0 {
			if err := change.Chmod(tmpPath, os.FileMode(metadata.Permissions)); err != nil {
				return fmt.Errorf("failed to set permissions: %w", err)
			}
		}
		if !metadata.ModTime.IsZero() {
			if err := change.Chtimes(tmpPath, metadata.ModTime, metadata.ModTime); err != nil {
				return fmt.Errorf("failed to set modification time: %w", err)
			}
		}
	}

	if err := b.fs.Rename(tmpPath, b.path(name)); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}

	success = true
	return nil
}

// Exists checks if an entry exists
func (b *Billy) Exists(ctx context.Context, name string) (bool, error) {
	_, err := b.fs.Stat(b.path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Stat returns entry metadata
func (b *Billy) Stat(ctx context.Context, name string) (*FileInfo, error) {
	info, err := b.fs.Stat(b.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	fi := toFileInfo(name, b.path(name), info)
	return &fi, nil
}

// Root returns the root directory inside the billy filesystem
func (b *Billy) Root() string {
	return b.root
}

// Close releases resources (no-op for go-billy filesystems)
func (b *Billy) Close() error {
	return nil
}
