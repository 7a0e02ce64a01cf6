package models

import (
	"time"
)

// ComparisonMethod defines how file contents are compared
type ComparisonMethod string

const (
	// CompareBinary compares byte-by-byte
	CompareBinary ComparisonMethod = "binary"
	// CompareHash compares SHA-256 digests
	CompareHash ComparisonMethod = "hash"
)

// SyncOperation describes a single synchronization run
type SyncOperation struct {
	ID               string
	SourcePath       string
	DestPath         string
	ComparisonMethod ComparisonMethod
	// ModTimeWindow is how much later the source mtime must be to count as newer
	ModTimeWindow   time.Duration
	ExcludePatterns []string
	DryRun          bool
	BufferSize      int
	// BandwidthLimit caps copy throughput in bytes per second, 0 means unlimited
	BandwidthLimit int64
	CreatedAt      time.Time
}

// Validate checks if the operation configuration is valid.
// Paths are checked when they are resolved, not here.
func (op *SyncOperation) Validate() error {
	switch op.ComparisonMethod {
	case CompareBinary, CompareHash:
	default:
		return &ValidationError{Field: "ComparisonMethod", Message: "must be 'binary' or 'hash'"}
	}
	if op.ModTimeWindow < 0 {
		return &ValidationError{Field: "ModTimeWindow", Message: "must not be negative"}
	}
	if op.BandwidthLimit < 0 {
		return &ValidationError{Field: "BandwidthLimit", Message: "must not be negative"}
	}
	if op.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
