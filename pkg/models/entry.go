package models

import (
	"time"
)

// EntryKind tags a directory entry right after it has been stat'ed
type EntryKind int

const (
	// KindOther covers directories, devices, sockets and dangling links
	KindOther EntryKind = iota
	// KindRegular is a regular file (or a link resolving to one)
	KindRegular
)

// String returns the kind name
func (k EntryKind) String() string {
	if k == KindRegular {
		return "regular"
	}
	return "other"
}

// FileEntry represents an entry found directly inside a synchronized directory
type FileEntry struct {
	// Name is the base name, never containing a path separator
	Name string

	// Kind is fixed when the entry is discovered
	Kind EntryKind

	// Size in bytes
	Size int64

	// ModTime is the last modification time
	ModTime time.Time

	// Permissions are the file mode bits
	Permissions uint32
}

// IsRegular reports whether the entry takes part in synchronization
func (e FileEntry) IsRegular() bool {
	return e.Kind == KindRegular
}

// Action represents what is done with a file
type Action string

const (
	// ActionCopy copies a new file from source to destination
	ActionCopy Action = "copy"
	// ActionUpdate overwrites an existing destination file
	ActionUpdate Action = "update"
	// ActionSkip leaves the destination untouched
	ActionSkip Action = "skip"
)

// FileOperation records what happened to one source file
type FileOperation struct {
	Entry       FileEntry
	Outcome     Outcome
	Action      Action
	Error       error
	BytesCopied int64
	Duration    time.Duration
}
