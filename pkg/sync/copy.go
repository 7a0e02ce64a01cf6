package sync

import (
	"context"
	"fmt"
	"io"

	"github.com/sdejongh/filesync/pkg/ratelimit"
	"github.com/sdejongh/filesync/pkg/storage"
)

// countingReader wraps an io.Reader to count transferred bytes
type countingReader struct {
	reader io.Reader
	read   int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.read += int64(n)
	return n, err
}

// copyFile copies source/name over dest/name, carrying the source
// modification time and permissions. It returns the number of bytes read.
// A nil limiter copies at full speed.
func copyFile(ctx context.Context, source, dest storage.Backend, name string, limiter *ratelimit.Limiter) (int64, error) {
	// Fresh metadata so the size check matches what is actually read
	sourceInfo, err := source.Stat(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("failed to get source metadata: %w", err)
	}

	reader, err := source.Read(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("failed to read source: %w", err)
	}
	defer reader.Close()

	cr := &countingReader{reader: ratelimit.NewReader(ctx, reader, limiter)}
	if err := dest.Write(ctx, name, cr, sourceInfo.Size, sourceInfo); err != nil {
		return cr.read, fmt.Errorf("failed to write destination: %w", err)
	}

	return cr.read, nil
}
