package compare

import (
	"context"
	"fmt"
	"sync"

	"github.com/sdejongh/filesync/pkg/models"
	"github.com/sdejongh/filesync/pkg/storage"
)

// Result represents the outcome of comparing two files
type Result string

const (
	// Same indicates files have identical content
	Same Result = "same"
	// Different indicates file contents differ
	Different Result = "different"
)

// Comparison holds the result of comparing two same-named files
type Comparison struct {
	Name   string
	Result Result
	Reason string
}

// Comparator decides whether two existing, same-named files have equal content
type Comparator interface {
	// Compare compares source/name against dest/name
	Compare(ctx context.Context, source, dest storage.Backend, name string) (*Comparison, error)

	// Name returns the name of the comparison method
	Name() string
}

// New returns the comparator for method
func New(method models.ComparisonMethod, bufferSize int) (Comparator, error) {
	switch method {
	case models.CompareBinary, "":
		return NewBinaryComparator(bufferSize), nil
	case models.CompareHash:
		return NewHashComparator(bufferSize), nil
	default:
		return nil, fmt.Errorf("unsupported comparison method: %s (use: binary, hash)", method)
	}
}

func newBufferPool(bufferSize int) *sync.Pool {
	return &sync.Pool{
		New: func() interface{} {
			buf := make([]byte, bufferSize)
			return &buf
		},
	}
}

// sizeMismatch stats both files and reports a Different comparison when their sizes differ
func sizeMismatch(ctx context.Context, source, dest storage.Backend, name string) (*Comparison, int64, error) {
	sourceInfo, err := source.Stat(ctx, name)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to stat source: %w", err)
	}

	destInfo, err := dest.Stat(ctx, name)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to stat destination: %w", err)
	}

	if sourceInfo.Size != destInfo.Size {
		return &Comparison{
			Name:   name,
			Result: Different,
			Reason: fmt.Sprintf("size mismatch: source=%d, dest=%d", sourceInfo.Size, destInfo.Size),
		}, sourceInfo.Size, nil
	}

	return nil, sourceInfo.Size, nil
}
