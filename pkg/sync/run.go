package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/sdejongh/filesync/pkg/compare"
	"github.com/sdejongh/filesync/pkg/logging"
	"github.com/sdejongh/filesync/pkg/models"
	"github.com/sdejongh/filesync/pkg/output"
	"github.com/sdejongh/filesync/pkg/resolve"
	"github.com/sdejongh/filesync/pkg/storage"
)

// Run resolves the directories of op and synchronizes them on the local filesystem.
// Resolution failures are reported through formatter and returned with a
// failed report.
func Run(ctx context.Context, op *models.SyncOperation, formatter output.Formatter, logger logging.Logger) (*models.SyncReport, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	failed := func(err error) (*models.SyncReport, error) {
		now := time.Now()
		logger.Error(ctx, "Sync failed before processing files", err, logging.Fields{
			"source": op.SourcePath,
			"dest":   op.DestPath,
		})
		formatter.Error(err)
		return &models.SyncReport{
			OperationID: op.ID,
			SourcePath:  op.SourcePath,
			DestPath:    op.DestPath,
			DryRun:      op.DryRun,
			StartTime:   now,
			EndTime:     now,
			Status:      models.StatusFailed,
		}, err
	}

	if err := op.Validate(); err != nil {
		return failed(err)
	}
	if err := ValidatePatterns(op.ExcludePatterns); err != nil {
		return failed(err)
	}

	resolved, err := resolve.Resolve(op.SourcePath, op.DestPath)
	if err != nil {
		return failed(err)
	}
	if resolved.DestinationCreated {
		logger.Info(ctx, "Created destination directory", logging.Fields{"path": op.DestPath})
		ev := models.NewEvent(models.EventDestinationCreated, "")
		ev.Path = op.DestPath
		formatter.Event(ev)
	}

	source, err := storage.NewLocal(resolved.SourcePath)
	if err != nil {
		return failed(fmt.Errorf("failed to open source: %w", err))
	}
	defer source.Close()

	dest, err := storage.NewLocal(resolved.DestPath)
	if err != nil {
		return failed(fmt.Errorf("failed to open destination: %w", err))
	}
	defer dest.Close()

	comparator, err := compare.New(op.ComparisonMethod, op.BufferSize)
	if err != nil {
		return failed(err)
	}

	report, err := NewEngine(source, dest, comparator, formatter, logger, op).Run(ctx)
	if report != nil {
		report.DestinationCreated = resolved.DestinationCreated
	}
	return report, err
}
