package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const tempPrefix = ".file_sync-"

// Local is a filesystem-based storage backend
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{rootPath: absPath}, nil
}

// List returns the immediate entries of the root directory
func (l *Local) List(ctx context.Context) ([]FileInfo, error) {
	entries, err := os.ReadDir(l.rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, d := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fullPath := filepath.Join(l.rootPath, d.Name())

		// Follow symlinks; a dangling link falls back to the link itself
		info, err := os.Stat(fullPath)
		if err != nil {
			if info, err = os.Lstat(fullPath); err != nil {
				return nil, fmt.Errorf("failed to stat %s: %w", d.Name(), err)
			}
		}

		files = append(files, toFileInfo(d.Name(), fullPath, info))
	}

	return files, nil
}

// Read opens a file for reading
func (l *Local) Read(ctx context.Context, name string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(l.rootPath, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Write writes to a temporary file in the root directory and renames it over
// the target once content and metadata are in place
func (l *Local) Write(ctx context.Context, name string, reader io.Reader, size int64, metadata *FileInfo) error {
	fullPath := filepath.Join(l.rootPath, name)

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmp, reader)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if written != size {
		return fmt.Errorf("incomplete write: expected %d bytes, wrote %d", size, written)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	perm := os.FileMode(0644)
	if metadata != nil && metadata.Permissions != 0 {
		perm = os.FileMode(metadata.Permissions)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if metadata != nil && !metadata.ModTime.IsZero() {
		if err := os.Chtimes(tmpPath, metadata.ModTime, metadata.ModTime); err != nil {
			return fmt.Errorf("failed to set modification time: %w", err)
		}
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}

	success = true
	return nil
}

// Exists checks if an entry exists
func (l *Local) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(filepath.Join(l.rootPath, name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Stat returns entry metadata
func (l *Local) Stat(ctx context.Context, name string) (*FileInfo, error) {
	fullPath := filepath.Join(l.rootPath, name)

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	fi := toFileInfo(name, fullPath, info)
	return &fi, nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}

func toFileInfo(name, fullPath string, info fs.FileInfo) FileInfo {
	return FileInfo{
		Name:        name,
		Path:        fullPath,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		IsDir:       info.IsDir(),
		IsRegular:   info.Mode().IsRegular(),
		Permissions: uint32(info.Mode().Perm()),
	}
}
