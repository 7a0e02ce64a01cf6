package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/filesync/pkg/models"
)

// JSONFormatter writes one JSON object per line for automation and scripting
type JSONFormatter struct {
	encoder *json.Encoder
	runID   string
	now     func() time.Time
}

// JSONEvent represents a single event in the JSON output stream
type JSONEvent struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id,omitempty"`
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
}

// JSONStartData represents the data for a listing event
type JSONStartData struct {
	TotalFiles int   `json:"total_files"`
	TotalBytes int64 `json:"total_bytes"`
}

// JSONFileData represents file and directory event data
type JSONFileData struct {
	Name   string `json:"name,omitempty"`
	Path   string `json:"path,omitempty"`
	Target string `json:"target,omitempty"`
	Error  string `json:"error,omitempty"`
}

// JSONReportData represents the final report data
type JSONReportData struct {
	Status             string          `json:"status"`
	ExitCode           int             `json:"exit_code"`
	Source             string          `json:"source"`
	Destination        string          `json:"destination"`
	DestinationCreated bool            `json:"destination_created"`
	DryRun             bool            `json:"dry_run"`
	Duration           string          `json:"duration"`
	DurationMs         int64           `json:"duration_ms"`
	Stats              JSONStatsData   `json:"stats"`
	Errors             []JSONErrorData `json:"errors,omitempty"`
}

// JSONStatsData represents statistics in JSON format
type JSONStatsData struct {
	FilesScanned     int   `json:"files_scanned"`
	FilesExcluded    int   `json:"files_excluded"`
	FilesCopied      int   `json:"files_copied"`
	FilesUpdated     int   `json:"files_updated"`
	FilesIdentical   int   `json:"files_identical"`
	FilesSkipped     int   `json:"files_skipped"`
	FilesErrored     int   `json:"files_errored"`
	BytesTransferred int64 `json:"bytes_transferred"`
}

// JSONErrorData represents an error entry
type JSONErrorData struct {
	Name      string `json:"name"`
	Operation string `json:"operation,omitempty"`
	Error     string `json:"error"`
}

// NewJSONFormatter creates a JSON lines formatter writing to w.
// runID is attached to every line when non-empty.
func NewJSONFormatter(w io.Writer, runID string) *JSONFormatter {
	if w == nil {
		w = io.Discard
	}
	return &JSONFormatter{
		encoder: json.NewEncoder(w),
		runID:   runID,
		now:     time.Now,
	}
}

// Start records the size of the listing
func (f *JSONFormatter) Start(totalFiles int, totalBytes int64) error {
	return f.emit(f.now(), "listing", JSONStartData{
		TotalFiles: totalFiles,
		TotalBytes: totalBytes,
	})
}

// Event writes ev as one JSON line
func (f *JSONFormatter) Event(ev models.SyncEvent) error {
	if ev.Kind == models.EventFatal {
		return f.Error(ev.Err)
	}

	data := JSONFileData{
		Name:   ev.Name,
		Path:   ev.Path,
		Target: ev.Target,
	}
	if ev.Err != nil {
		data.Error = causeOf(ev.Err).Error()
	}

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = f.now()
	}

	var payload any = data
	if data == (JSONFileData{}) {
		payload = nil
	}
	return f.emit(ts, string(ev.Kind), payload)
}

// Complete writes the final report object
func (f *JSONFormatter) Complete(report *models.SyncReport) error {
	if report == nil {
		return nil
	}

	var errs []JSONErrorData
	for _, e := range report.Errors {
		errs = append(errs, JSONErrorData{
			Name:      e.FileName,
			Operation: string(e.Operation),
			Error:     e.Error,
		})
	}

	return f.emit(f.now(), "report", JSONReportData{
		Status:             string(report.Status),
		ExitCode:           report.Status.ExitCode(),
		Source:             report.SourcePath,
		Destination:        report.DestPath,
		DestinationCreated: report.DestinationCreated,
		DryRun:             report.DryRun,
		Duration:           report.Duration.Round(time.Millisecond).String(),
		DurationMs:         report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			FilesScanned:     report.Stats.FilesScanned,
			FilesExcluded:    report.Stats.FilesExcluded,
			FilesCopied:      report.Stats.FilesCopied,
			FilesUpdated:     report.Stats.FilesUpdated,
			FilesIdentical:   report.Stats.FilesIdentical,
			FilesSkipped:     report.Stats.FilesSkipped,
			FilesErrored:     report.Stats.FilesErrored,
			BytesTransferred: report.Stats.BytesTransferred,
		},
		Errors: errs,
	})
}

// Error writes a fatal event carrying the user-facing message
func (f *JSONFormatter) Error(err error) error {
	return f.emit(f.now(), string(models.EventFatal), JSONFileData{
		Error: FatalMessage(err),
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

func (f *JSONFormatter) emit(ts time.Time, typ string, data any) error {
	return f.encoder.Encode(JSONEvent{
		Timestamp: ts,
		RunID:     f.runID,
		Type:      typ,
		Data:      data,
	})
}
