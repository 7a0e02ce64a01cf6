// Package resolve validates the source directory and makes sure the
// destination directory exists before any file is synchronized.
package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"github.com/sdejongh/filesync/pkg/errclass"
)

// DirPerm is the mode used for destination directories created by EnsureDestination
const DirPerm = 0755

// Result describes a successful resolution
type Result struct {
	SourcePath string
	DestPath   string
	// DestinationCreated is true when EnsureDestination had to create DestPath
	DestinationCreated bool
}

// Resolve validates sourcePath and ensures destPath, in that order.
// Nothing is created when the source is invalid.
func Resolve(sourcePath, destPath string) (*Result, error) {
	if err := ValidateSource(sourcePath); err != nil {
		return nil, err
	}

	created, err := EnsureDestination(destPath)
	if err != nil {
		return nil, err
	}

	return &Result{
		SourcePath:         sourcePath,
		DestPath:           destPath,
		DestinationCreated: created,
	}, nil
}

// ValidateSource fails with ErrSourceNotFound if sourcePath does not exist
// and with ErrSourceNotADirectory if it is not a directory.
func ValidateSource(sourcePath string) error {
	if err := ValidatePath(sourcePath); err != nil {
		return errclass.ErrSourceNotFound.WithPath(sourcePath).Wrap(err)
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		return errclass.ErrSourceNotFound.WithPath(sourcePath).Wrap(err)
	}

	if !info.IsDir() {
		return errclass.ErrSourceNotADirectory.WithPath(sourcePath)
	}

	return nil
}

// EnsureDestination creates destPath and any missing parents. It reports
// whether anything was created; an existing directory is left untouched.
func EnsureDestination(destPath string) (bool, error) {
	if err := ValidatePath(destPath); err != nil {
		return false, errclass.ErrDestinationCreateFailed.WithPath(destPath).Wrap(err)
	}

	info, err := os.Stat(destPath)
	switch {
	case err == nil:
		if !info.IsDir() {
			return false, errclass.ErrDestinationNotADir.WithPath(destPath)
		}
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, errclass.ErrDestinationCreateFailed.WithPath(destPath).Wrap(err)
	}

	if err := os.MkdirAll(destPath, DirPerm); err != nil {
		return false, errclass.ErrDestinationCreateFailed.WithPath(destPath).Wrap(err)
	}

	return true, nil
}

// ValidatePath checks if a path is usable on the current platform
func ValidatePath(path string) error {
	if path == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}

	if strings.ContainsRune(path, 0) {
		return &PathError{Path: path, Message: "path contains a NUL byte"}
	}

	if runtime.GOOS == "windows" {
		for _, char := range []string{"<", ">", "\"", "|", "?", "*"} {
			if strings.Contains(path, char) {
				return &PathError{Path: path, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path '%s': %s", e.Path, e.Message)
}
