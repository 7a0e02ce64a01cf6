package sync

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sdejongh/filesync/pkg/models"
	"github.com/sdejongh/filesync/pkg/storage"
)

// Listing is the ordered set of regular files found in a source directory
type Listing struct {
	Files      []models.FileEntry
	Excluded   int
	TotalBytes int64
}

// ListSourceFiles returns the regular files directly inside backend's root,
// sorted by byte-wise name comparison. Directories and other entry kinds are
// dropped, as are files matching one of the exclude patterns.
func ListSourceFiles(ctx context.Context, backend storage.Backend, excludes []string) (*Listing, error) {
	infos, err := backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list source directory: %w", err)
	}

	listing := &Listing{Files: make([]models.FileEntry, 0, len(infos))}
	for _, info := range infos {
		entry := toEntry(info)
		if !entry.IsRegular() {
			continue
		}
		if shouldExclude(entry.Name, excludes) {
			listing.Excluded++
			continue
		}
		listing.Files = append(listing.Files, entry)
		listing.TotalBytes += entry.Size
	}

	sortEntries(listing.Files)
	return listing, nil
}

func toEntry(info storage.FileInfo) models.FileEntry {
	kind := models.KindOther
	if info.IsRegular {
		kind = models.KindRegular
	}
	return models.FileEntry{
		Name:        info.Name,
		Kind:        kind,
		Size:        info.Size,
		ModTime:     info.ModTime,
		Permissions: info.Permissions,
	}
}

// sortEntries orders entries by name using ordinal byte comparison
func sortEntries(entries []models.FileEntry) {
	slices.SortFunc(entries, func(a, b models.FileEntry) int {
		return strings.Compare(a.Name, b.Name)
	})
}
