package models

import (
	"time"
)

// EventKind identifies a SyncEvent
type EventKind string

const (
	EventDestinationCreated EventKind = "destination_created"
	EventStart              EventKind = "start"
	EventNewFile            EventKind = "new_file"
	EventUpdated            EventKind = "updated"
	EventIdentical          EventKind = "identical"
	EventDestinationNewer   EventKind = "destination_newer"
	EventCopied             EventKind = "copied"
	EventFileError          EventKind = "file_error"
	EventComplete           EventKind = "complete"
	EventFatal              EventKind = "fatal"
)

// SyncEvent is one ordered record produced during a run
type SyncEvent struct {
	Kind EventKind

	// Name is the bare file name for per-file events
	Name string

	// Path carries the directory path exactly as supplied by the caller
	// for destination_created, or the source path for start and copied
	Path string

	// Target is the destination path for start and copied
	Target string

	Err       error
	Timestamp time.Time
}

// NewEvent creates an event stamped with the current time
func NewEvent(kind EventKind, name string) SyncEvent {
	return SyncEvent{Kind: kind, Name: name, Timestamp: time.Now()}
}

// IsFileEvent reports whether the event is about a single source file
func (e SyncEvent) IsFileEvent() bool {
	switch e.Kind {
	case EventNewFile, EventUpdated, EventIdentical, EventDestinationNewer, EventFileError:
		return true
	default:
		return false
	}
}
