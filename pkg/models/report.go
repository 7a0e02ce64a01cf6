package models

import (
	"time"
)

// SyncReport represents the results of a sync run
type SyncReport struct {
	// Operation details
	OperationID string
	SourcePath  string
	DestPath    string
	DryRun      bool

	// DestinationCreated is set when the destination did not exist before the run
	DestinationCreated bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Stats Statistics

	// Operations in processing order, one per regular source file
	Operations []FileOperation

	Errors []SyncError

	Status SyncStatus
}

// Statistics holds sync run counters
type Statistics struct {
	FilesScanned     int // Regular files found in source
	FilesCopied      int
	FilesUpdated     int
	FilesIdentical   int
	FilesSkipped     int // Destination newer
	FilesErrored     int
	FilesExcluded    int // Regular files matched by an exclude pattern
	BytesTransferred int64
}

// FilesProcessed returns how many files reached a terminal state
func (s Statistics) FilesProcessed() int {
	return s.FilesCopied + s.FilesUpdated + s.FilesIdentical + s.FilesSkipped + s.FilesErrored
}

// Record updates the counters for a finished file operation
func (s *Statistics) Record(op FileOperation) {
	if op.Error != nil {
		s.FilesErrored++
		return
	}
	switch op.Outcome {
	case OutcomeNewFile:
		s.FilesCopied++
	case OutcomeSourceNewer:
		s.FilesUpdated++
	case OutcomeIdentical:
		s.FilesIdentical++
	case OutcomeDestinationNewer:
		s.FilesSkipped++
	}
	s.BytesTransferred += op.BytesCopied
}

// SyncStatus represents the overall result
type SyncStatus string

const (
	// StatusSuccess indicates all files were processed
	StatusSuccess SyncStatus = "success"
	// StatusPartial indicates some files failed
	StatusPartial SyncStatus = "partial"
	// StatusFailed indicates the run could not start or list the source
	StatusFailed SyncStatus = "failed"
	// StatusCancelled indicates the context was cancelled
	StatusCancelled SyncStatus = "cancelled"
)

// SyncError represents an error during sync
type SyncError struct {
	FileName  string
	Operation Action
	Error     string
	Timestamp time.Time
}

// ExitCode returns the process exit code for the status
func (s SyncStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusCancelled:
		return 130
	default:
		return 1
	}
}
