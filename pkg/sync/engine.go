package sync

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/sdejongh/filesync/pkg/compare"
	"github.com/sdejongh/filesync/pkg/errclass"
	"github.com/sdejongh/filesync/pkg/logging"
	"github.com/sdejongh/filesync/pkg/models"
	"github.com/sdejongh/filesync/pkg/output"
	"github.com/sdejongh/filesync/pkg/ratelimit"
	"github.com/sdejongh/filesync/pkg/storage"
)

// Engine synchronizes the regular files of one directory into another.
// Files are handled one at a time in name order.
type Engine struct {
	source     storage.Backend
	dest       storage.Backend
	comparator compare.Comparator
	formatter  output.Formatter
	logger     logging.Logger
	operation  *models.SyncOperation
	limiter    *ratelimit.Limiter
	now        func() time.Time
}

// NewEngine creates a new sync engine
func NewEngine(
	source, dest storage.Backend,
	comparator compare.Comparator,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.SyncOperation,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		source:     source,
		dest:       dest,
		comparator: comparator,
		formatter:  formatter,
		logger:     logger,
		operation:  operation,
		limiter:    ratelimit.NewLimiter(operation.BandwidthLimit),
		now:        time.Now,
	}
}

// Run executes the sync operation.
// Per-file failures are reported and the run moves on; the returned error is
// only set when the run could not list the source or was cancelled.
func (e *Engine) Run(ctx context.Context) (*models.SyncReport, error) {
	report := &models.SyncReport{
		OperationID: e.operation.ID,
		SourcePath:  e.operation.SourcePath,
		DestPath:    e.operation.DestPath,
		DryRun:      e.operation.DryRun,
		StartTime:   e.now(),
		Status:      models.StatusSuccess,
	}

	e.logger.Info(ctx, "Starting sync", logging.Fields{
		"source":  e.source.Root(),
		"dest":    e.dest.Root(),
		"dry_run": e.operation.DryRun,
	})

	listing, err := ListSourceFiles(ctx, e.source, e.operation.ExcludePatterns)
	if err != nil {
		return e.abort(ctx, report, err)
	}

	report.Stats.FilesScanned = len(listing.Files)
	report.Stats.FilesExcluded = listing.Excluded
	report.Operations = make([]models.FileOperation, 0, len(listing.Files))

	e.formatter.Start(len(listing.Files), listing.TotalBytes)

	start := models.NewEvent(models.EventStart, "")
	start.Path = e.source.Root()
	start.Target = e.dest.Root()
	e.emit(start)

	for _, entry := range listing.Files {
		if ctx.Err() != nil {
			return e.abort(ctx, report, ctx.Err())
		}

		op := e.syncFile(ctx, entry)
		report.Operations = append(report.Operations, op)
		report.Stats.Record(op)

		if op.Error != nil {
			if ctx.Err() != nil {
				return e.abort(ctx, report, ctx.Err())
			}
			report.Errors = append(report.Errors, models.SyncError{
				FileName:  entry.Name,
				Operation: op.Action,
				Error:     op.Error.Error(),
				Timestamp: e.now(),
			})
		}
	}

	if len(report.Errors) > 0 {
		report.Status = models.StatusPartial
	}

	e.emit(models.NewEvent(models.EventComplete, ""))
	e.finish(report)

	e.logger.Info(ctx, "Sync completed", logging.Fields{
		"status":  report.Status,
		"copied":  report.Stats.FilesCopied,
		"updated": report.Stats.FilesUpdated,
		"errors":  report.Stats.FilesErrored,
	})

	e.formatter.Complete(report)
	return report, nil
}

// syncFile classifies one file and applies the resulting action
func (e *Engine) syncFile(ctx context.Context, entry models.FileEntry) models.FileOperation {
	started := e.now()
	op := models.FileOperation{Entry: entry}

	outcome, err := Classify(ctx, e.source, e.dest, e.comparator, entry, e.operation.ModTimeWindow)
	if err != nil {
		op.Error = errclass.ErrPerFileIO.WithPath(entry.Name).Wrap(err)
		op.Duration = e.now().Sub(started)
		e.fileError(ctx, op)
		return op
	}

	op.Outcome = outcome
	op.Action = outcome.Action()
	e.logger.Debug(ctx, "File classified", logging.Fields{
		"file":    entry.Name,
		"outcome": outcome,
	})
	e.emit(models.NewEvent(outcome.EventKind(), entry.Name))

	if op.Action != models.ActionSkip && !e.operation.DryRun {
		n, err := copyFile(ctx, e.source, e.dest, entry.Name, e.limiter)
		if err != nil {
			op.Error = errclass.ErrPerFileIO.WithPath(entry.Name).Wrap(err)
			op.Duration = e.now().Sub(started)
			e.fileError(ctx, op)
			return op
		}
		op.BytesCopied = n

		copied := models.NewEvent(models.EventCopied, entry.Name)
		copied.Path = filepath.Join(e.source.Root(), entry.Name)
		copied.Target = filepath.Join(e.dest.Root(), entry.Name)
		e.emit(copied)
	}

	op.Duration = e.now().Sub(started)
	return op
}

func (e *Engine) fileError(ctx context.Context, op models.FileOperation) {
	e.logger.Error(ctx, "Failed to sync file", op.Error, logging.Fields{
		"file":   op.Entry.Name,
		"action": op.Action,
	})
	ev := models.NewEvent(models.EventFileError, op.Entry.Name)
	ev.Err = op.Error
	e.emit(ev)
}

// abort ends a run that cannot continue
func (e *Engine) abort(ctx context.Context, report *models.SyncReport, err error) (*models.SyncReport, error) {
	report.Status = models.StatusFailed
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		report.Status = models.StatusCancelled
	}
	e.finish(report)

	e.logger.Error(ctx, "Sync aborted", err, logging.Fields{"status": report.Status})
	e.formatter.Error(err)
	return report, err
}

func (e *Engine) finish(report *models.SyncReport) {
	report.EndTime = e.now()
	report.Duration = report.EndTime.Sub(report.StartTime)
}

// emit forwards ev to the formatter. Output failures do not stop the run.
func (e *Engine) emit(ev models.SyncEvent) {
	if err := e.formatter.Event(ev); err != nil {
		e.logger.Warn(context.Background(), "Failed to write event", logging.Fields{
			"event": ev.Kind,
			"error": err.Error(),
		})
	}
}
