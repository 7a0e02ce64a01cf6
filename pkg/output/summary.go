package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/sdejongh/filesync/pkg/models"
)

// WriteSummary renders the run statistics as a table
func WriteSummary(w io.Writer, report *models.SyncReport) {
	if report == nil {
		return
	}

	stats := report.Stats
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetBorder(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	rows := [][]string{
		{"Status", string(report.Status)},
		{"Files scanned", strconv.Itoa(stats.FilesScanned)},
		{"New files copied", strconv.Itoa(stats.FilesCopied)},
		{"Files updated", strconv.Itoa(stats.FilesUpdated)},
		{"Identical", strconv.Itoa(stats.FilesIdentical)},
		{"Newer in destination", strconv.Itoa(stats.FilesSkipped)},
		{"Errors", strconv.Itoa(stats.FilesErrored)},
	}
	if stats.FilesExcluded > 0 {
		rows = append(rows, []string{"Excluded", strconv.Itoa(stats.FilesExcluded)})
	}
	rows = append(rows,
		[]string{"Transferred", formatBytes(stats.BytesTransferred)},
		[]string{"Duration", report.Duration.Round(time.Millisecond).String()},
	)
	if report.DryRun {
		rows = append(rows, []string{"Dry run", "yes"})
	}

	table.AppendBulk(rows)
	table.Render()
}

// WriteReportFile writes the per-file operations of a run to path.
// Format can be "human" or "json".
func WriteReportFile(report *models.SyncReport, path string, format string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close report file: %w", cerr)
		}
	}()

	w := bufio.NewWriter(file)
	err = writeReport(report, w, format)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

func writeReport(report *models.SyncReport, w io.Writer, format string) error {
	switch format {
	case "json":
		jf := NewJSONFormatter(w, report.OperationID)
		for _, op := range report.Operations {
			ev := models.NewEvent(op.Outcome.EventKind(), op.Entry.Name)
			ev.Err = op.Error
			if op.Error != nil {
				ev.Kind = models.EventFileError
			}
			if err := jf.Event(ev); err != nil {
				return err
			}
		}
		return jf.Complete(report)
	default:
		return writeReportHuman(report, w)
	}
}

func writeReportHuman(report *models.SyncReport, w io.Writer) error {
	fmt.Fprintf(w, "Sync Report\n")
	fmt.Fprintf(w, "===========\n\n")
	fmt.Fprintf(w, "Run: %s\n", report.OperationID)
	fmt.Fprintf(w, "Source: %s\n", report.SourcePath)
	fmt.Fprintf(w, "Destination: %s\n", report.DestPath)
	fmt.Fprintf(w, "Dry Run: %v\n", report.DryRun)
	fmt.Fprintf(w, "Status: %s\n\n", report.Status)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Outcome", "Action", "Bytes", "Error"})
	table.SetBorder(false)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, op := range report.Operations {
		errText := ""
		if op.Error != nil {
			errText = causeOf(op.Error).Error()
		}
		table.Append([]string{
			op.Entry.Name,
			string(op.Outcome),
			string(op.Action),
			strconv.FormatInt(op.BytesCopied, 10),
			errText,
		})
	}
	table.Render()

	fmt.Fprintln(w)
	WriteSummary(w, report)
	return nil
}
