package output

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/sdejongh/filesync/pkg/errclass"
	"github.com/sdejongh/filesync/pkg/models"
)

// Formatter renders the event stream of a sync run.
// Implementations include the human-readable and JSON formatters.
type Formatter interface {
	// Start is called once the source has been listed
	Start(totalFiles int, totalBytes int64) error

	// Event reports a single sync event, in emission order
	Event(ev models.SyncEvent) error

	// Complete finalizes output once the run is over
	Complete(report *models.SyncReport) error

	// Error reports a fatal error that ends the run
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

// FatalMessage returns the user-facing line for a run-ending error
func FatalMessage(err error) string {
	path := errclass.PathOf(err)
	switch {
	case errors.Is(err, errclass.ErrSourceNotFound):
		return fmt.Sprintf("Error: Source directory '%s' does not exist.", path)
	case errors.Is(err, errclass.ErrSourceNotADirectory):
		return fmt.Sprintf("Error: Source '%s' is not a directory.", path)
	case errors.Is(err, errclass.ErrDestinationNotADir):
		return fmt.Sprintf("Error: Destination '%s' is not a directory.", path)
	case errors.Is(err, errclass.ErrDestinationCreateFailed):
		return fmt.Sprintf("Error: Could not create destination directory '%s': %v", path, causeOf(err))
	default:
		return fmt.Sprintf("Error: %v", causeOf(err))
	}
}

// causeOf strips the error class so users see the underlying failure
func causeOf(err error) error {
	var se *errclass.SyncError
	if errors.As(err, &se) && se.Err != nil {
		return se.Err
	}
	return err
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}
