package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sdejongh/filesync/pkg/storage"
)

// BinaryComparator compares files byte-by-byte.
// It reports the offset of the first differing byte.
type BinaryComparator struct {
	bufferSize int
	bufferPool *sync.Pool
}

// NewBinaryComparator creates a new byte-by-byte comparator
func NewBinaryComparator(bufferSize int) *BinaryComparator {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &BinaryComparator{
		bufferSize: bufferSize,
		bufferPool: newBufferPool(bufferSize),
	}
}

// Compare compares two files byte-by-byte
func (c *BinaryComparator) Compare(ctx context.Context, source, dest storage.Backend, name string) (*Comparison, error) {
	// Quick check: if sizes differ, files are different
	if diff, _, err := sizeMismatch(ctx, source, dest, name); err != nil || diff != nil {
		return diff, err
	}

	sourceReader, err := source.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceReader.Close()

	destReader, err := dest.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open destination file: %w", err)
	}
	defer destReader.Close()

	sourceBufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(sourceBufPtr)
	sourceBuf := *sourceBufPtr

	destBufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(destBufPtr)
	destBuf := *destBufPtr

	var bytesCompared int64
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// ReadFull so short reads on either side do not look like a mismatch
		sourceN, sourceErr := io.ReadFull(sourceReader, sourceBuf)
		destN, destErr := io.ReadFull(destReader, destBuf)

		if sourceErr != nil && !isEOF(sourceErr) {
			return nil, fmt.Errorf("failed to read source: %w", sourceErr)
		}
		if destErr != nil && !isEOF(destErr) {
			return nil, fmt.Errorf("failed to read destination: %w", destErr)
		}

		n := min(sourceN, destN)
		if !bytes.Equal(sourceBuf[:n], destBuf[:n]) {
			offset := bytesCompared
			for i := 0; i < n; i++ {
				if sourceBuf[i] != destBuf[i] {
					offset += int64(i)
					break
				}
			}
			return &Comparison{
				Name:   name,
				Result: Different,
				Reason: fmt.Sprintf("binary content differs at byte offset %d", offset),
			}, nil
		}
		bytesCompared += int64(n)

		if sourceN != destN {
			return &Comparison{
				Name:   name,
				Result: Different,
				Reason: fmt.Sprintf("length differs after %d bytes", bytesCompared),
			}, nil
		}

		if sourceErr != nil || destErr != nil {
			// Either side hit EOF; the other must have as well
			if isEOF(sourceErr) != isEOF(destErr) {
				return &Comparison{
					Name:   name,
					Result: Different,
					Reason: fmt.Sprintf("length differs after %d bytes", bytesCompared),
				}, nil
			}
			break
		}
	}

	return &Comparison{
		Name:   name,
		Result: Same,
		Reason: fmt.Sprintf("binary content matches (%d bytes)", bytesCompared),
	}, nil
}

// Name returns the comparator name
func (c *BinaryComparator) Name() string {
	return "binary"
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
