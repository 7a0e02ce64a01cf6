package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/sdejongh/filesync/pkg/config"
	"github.com/sdejongh/filesync/pkg/logging"
	"github.com/sdejongh/filesync/pkg/models"
	"github.com/sdejongh/filesync/pkg/output"
	"github.com/sdejongh/filesync/pkg/sync"
)

// runSync performs one synchronization and returns the process exit code
func runSync(ctx context.Context, cfg *config.Config, sourcePath, destPath string, f *Flags, stdout, stderr io.Writer) int {
	operation := cfg.Operation(uuid.New().String(), sourcePath, destPath)

	logger, err := createLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stdout, "Error: failed to create logger: %v\n", err)
		return 1
	}
	defer logger.Close()
	logger = logger.WithFields(logging.Fields{"run_id": operation.ID})

	formatter := createFormatter(cfg.Output, operation.ID, stdout, stderr)

	report, err := sync.Run(ctx, operation, formatter, logger)
	if err != nil {
		logger.Error(ctx, "Sync did not complete", err, nil)
	}

	if cfg.Output.Summary && report.Status != models.StatusFailed {
		output.WriteSummary(stderr, report)
	}

	if f.ReportFile != "" {
		if werr := output.WriteReportFile(report, f.ReportFile, f.ReportFormat); werr != nil {
			fmt.Fprintf(stderr, "Error: failed to write report: %v\n", werr)
			logger.Error(ctx, "Failed to write report file", werr, logging.Fields{"path": f.ReportFile})
		}
	}

	return report.Status.ExitCode()
}

// createFormatter picks the status formatter for the configured output
func createFormatter(cfg config.OutputConfig, runID string, stdout, stderr io.Writer) output.Formatter {
	var formatter output.Formatter
	switch cfg.Format {
	case "json":
		formatter = output.NewJSONFormatter(stdout, runID)
	default:
		formatter = output.NewHumanFormatter(stdout, cfg.Verbose, cfg.Quiet)
	}

	if cfg.Progress && output.IsTerminal(stderr) {
		formatter = output.NewProgressFormatter(formatter, stderr)
	}
	return formatter
}

// createLogger creates a logger based on configuration
func createLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	return logging.New(logging.Config{
		File:   cfg.File,
		Format: cfg.Format,
		Level:  cfg.Level,
	})
}
