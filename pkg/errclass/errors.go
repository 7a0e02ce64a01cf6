// Package errclass defines the stable error classes reported by file_sync.
package errclass

import (
	"errors"
	"fmt"
)

// SyncError is a machine-readable error class with an optional message and cause.
type SyncError struct {
	Code    string
	Message string
	Path    string
	Err     error
}

func (e *SyncError) Error() string {
	msg := e.Code
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is matches any SyncError with the same Code.
func (e *SyncError) Is(target error) bool {
	t, ok := target.(*SyncError)
	return ok && e.Code == t.Code
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// WithPath returns a new SyncError with the same Code for the given path.
func (e *SyncError) WithPath(path string) *SyncError {
	return &SyncError{Code: e.Code, Message: e.Message, Path: path, Err: e.Err}
}

// WithMessagef returns a new SyncError with a formatted message.
func (e *SyncError) WithMessagef(format string, args ...any) *SyncError {
	return &SyncError{Code: e.Code, Message: fmt.Sprintf(format, args...), Path: e.Path, Err: e.Err}
}

// Wrap returns a new SyncError with the same Code carrying cause.
func (e *SyncError) Wrap(cause error) *SyncError {
	return &SyncError{Code: e.Code, Message: e.Message, Path: e.Path, Err: cause}
}

var (
	ErrUsage                   = &SyncError{Code: "E_USAGE"}
	ErrInvalidPath             = &SyncError{Code: "E_INVALID_PATH"}
	ErrSourceNotFound          = &SyncError{Code: "E_SOURCE_NOT_FOUND"}
	ErrSourceNotADirectory     = &SyncError{Code: "E_SOURCE_NOT_A_DIRECTORY"}
	ErrDestinationNotADir      = &SyncError{Code: "E_DESTINATION_NOT_A_DIRECTORY"}
	ErrDestinationCreateFailed = &SyncError{Code: "E_DESTINATION_CREATE_FAILED"}
	ErrPerFileIO               = &SyncError{Code: "E_PER_FILE_IO"}
)

// PathOf returns the path carried by err if it is a SyncError.
func PathOf(err error) string {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Path
	}
	return ""
}
