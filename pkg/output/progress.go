package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/sdejongh/filesync/pkg/models"
)

const progressTemplate = `{{counters . }} {{bar . }} {{percent . }} {{string . "file" }}`

// ProgressFormatter decorates another formatter with a progress bar.
// The bar is drawn on its own writer so the status lines stay untouched.
type ProgressFormatter struct {
	next     Formatter
	writer   io.Writer
	bar      *pb.ProgressBar
	lastName string
}

// NewProgressFormatter wraps next, drawing the bar on w
func NewProgressFormatter(next Formatter, w io.Writer) *ProgressFormatter {
	return &ProgressFormatter{next: next, writer: w}
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// Start creates the bar sized to the listing
func (f *ProgressFormatter) Start(totalFiles int, totalBytes int64) error {
	f.bar = pb.New(totalFiles).
		SetTemplateString(progressTemplate).
		SetWriter(f.writer)

	// Keep the bar on one line when the terminal width is known
	if file, ok := f.writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			f.bar.SetWidth(width)
		}
	}

	f.bar.Start()
	return f.next.Start(totalFiles, totalBytes)
}

// Event advances the bar once per file and forwards ev
func (f *ProgressFormatter) Event(ev models.SyncEvent) error {
	if f.bar != nil && ev.IsFileEvent() && ev.Name != f.lastName {
		f.lastName = ev.Name
		f.bar.Set("file", ev.Name)
		f.bar.Increment()
	}
	return f.next.Event(ev)
}

// Complete stops the bar before the wrapped formatter finishes
func (f *ProgressFormatter) Complete(report *models.SyncReport) error {
	f.finish()
	return f.next.Complete(report)
}

// Error stops the bar before reporting err
func (f *ProgressFormatter) Error(err error) error {
	f.finish()
	return f.next.Error(err)
}

// Name returns the wrapped formatter name
func (f *ProgressFormatter) Name() string {
	return f.next.Name()
}

// Current returns how many files the bar has counted
func (f *ProgressFormatter) Current() int64 {
	if f.bar == nil {
		return 0
	}
	return f.bar.Current()
}

func (f *ProgressFormatter) finish() {
	if f.bar != nil && f.bar.IsStarted() {
		f.bar.Finish()
	}
}
