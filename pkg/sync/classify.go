package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/sdejongh/filesync/pkg/compare"
	"github.com/sdejongh/filesync/pkg/models"
	"github.com/sdejongh/filesync/pkg/storage"
)

// Classify decides what happens to one regular source file.
//
// A missing destination file is new. Otherwise equal content wins over
// timestamps, and the source only counts as newer when its mtime is later
// than the destination's by more than window. Equal mtimes leave the
// destination alone.
func Classify(
	ctx context.Context,
	source, dest storage.Backend,
	comparator compare.Comparator,
	entry models.FileEntry,
	window time.Duration,
) (models.Outcome, error) {
	exists, err := dest.Exists(ctx, entry.Name)
	if err != nil {
		return "", fmt.Errorf("failed to check destination: %w", err)
	}
	if !exists {
		return models.OutcomeNewFile, nil
	}

	destInfo, err := dest.Stat(ctx, entry.Name)
	if err != nil {
		return "", fmt.Errorf("failed to stat destination: %w", err)
	}
	if !destInfo.IsRegular {
		return "", fmt.Errorf("destination entry %s is not a regular file", entry.Name)
	}

	result, err := comparator.Compare(ctx, source, dest, entry.Name)
	if err != nil {
		return "", fmt.Errorf("failed to compare: %w", err)
	}
	if result.Result == compare.Same {
		return models.OutcomeIdentical, nil
	}

	if entry.ModTime.Sub(destInfo.ModTime) > window {
		return models.OutcomeSourceNewer, nil
	}
	return models.OutcomeDestinationNewer, nil
}
