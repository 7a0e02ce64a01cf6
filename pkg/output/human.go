package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/filesync/pkg/models"
)

// HumanFormatter writes the line-oriented status output
type HumanFormatter struct {
	writer  io.Writer
	verbose bool
	quiet   bool
}

// NewHumanFormatter creates a human-readable formatter writing to w.
// verbose adds the run header and per-copy lines; quiet drops per-file lines
// except errors.
func NewHumanFormatter(w io.Writer, verbose, quiet bool) *HumanFormatter {
	if w == nil {
		w = io.Discard
	}
	return &HumanFormatter{writer: w, verbose: verbose, quiet: quiet}
}

// Start prints nothing; the listing size is only of interest to decorators
func (f *HumanFormatter) Start(totalFiles int, totalBytes int64) error {
	return nil
}

// Event prints the status line for ev
func (f *HumanFormatter) Event(ev models.SyncEvent) error {
	var line string

	switch ev.Kind {
	case models.EventDestinationCreated:
		line = fmt.Sprintf("Created destination directory '%s'.", ev.Path)
	case models.EventStart:
		if !f.verbose {
			return nil
		}
		line = fmt.Sprintf("Synchronizing from %s to %s", ev.Path, ev.Target)
	case models.EventNewFile:
		line = fmt.Sprintf("New file found: %s", ev.Name)
	case models.EventIdentical:
		line = fmt.Sprintf("File %s is identical. Skipping...", ev.Name)
	case models.EventUpdated:
		line = fmt.Sprintf("File %s is newer in source. Updating...", ev.Name)
	case models.EventDestinationNewer:
		line = fmt.Sprintf("File %s is newer in destination. Skipping...", ev.Name)
	case models.EventCopied:
		if !f.verbose || f.quiet {
			return nil
		}
		line = fmt.Sprintf("Copied: %s -> %s", ev.Path, ev.Target)
	case models.EventFileError:
		line = fmt.Sprintf("Error: Failed to sync file %s: %v", ev.Name, causeOf(ev.Err))
	case models.EventComplete:
		line = "Synchronization complete."
	case models.EventFatal:
		return f.Error(ev.Err)
	default:
		return nil
	}

	if f.quiet && ev.IsFileEvent() && ev.Kind != models.EventFileError {
		return nil
	}

	_, err := fmt.Fprintln(f.writer, line)
	return err
}

// Complete adds a dry-run notice in verbose mode
func (f *HumanFormatter) Complete(report *models.SyncReport) error {
	if f.verbose && report != nil && report.DryRun {
		_, err := fmt.Fprintln(f.writer, "Dry run: no files were written.")
		return err
	}
	return nil
}

// Error prints the message for a run-ending error
func (f *HumanFormatter) Error(err error) error {
	_, werr := fmt.Fprintln(f.writer, FatalMessage(err))
	return werr
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
