package compare

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/sdejongh/filesync/pkg/storage"
)

// HashComparator compares files using their SHA-256 digests
type HashComparator struct {
	bufferSize int
	bufferPool *sync.Pool
}

// NewHashComparator creates a new hash-based comparator
func NewHashComparator(bufferSize int) *HashComparator {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &HashComparator{
		bufferSize: bufferSize,
		bufferPool: newBufferPool(bufferSize),
	}
}

// Compare compares two files using SHA-256 hash
func (c *HashComparator) Compare(ctx context.Context, source, dest storage.Backend, name string) (*Comparison, error) {
	if diff, _, err := sizeMismatch(ctx, source, dest, name); err != nil || diff != nil {
		return diff, err
	}

	sourceHash, err := c.ComputeHash(ctx, source, name)
	if err != nil {
		return nil, fmt.Errorf("failed to hash source: %w", err)
	}

	destHash, err := c.ComputeHash(ctx, dest, name)
	if err != nil {
		return nil, fmt.Errorf("failed to hash destination: %w", err)
	}

	if sourceHash != destHash {
		return &Comparison{
			Name:   name,
			Result: Different,
			Reason: "content hashes differ",
		}, nil
	}

	return &Comparison{
		Name:   name,
		Result: Same,
		Reason: "content hashes match",
	}, nil
}

// ComputeHash returns the hex-encoded SHA-256 digest of a file
func (c *HashComparator) ComputeHash(ctx context.Context, backend storage.Backend, name string) (string, error) {
	reader, err := backend.Read(ctx, name)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	bufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(bufPtr)

	hasher := sha256.New()
	if _, err := io.CopyBuffer(hasher, &contextReader{ctx: ctx, r: reader}, *bufPtr); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Name returns the comparator name
func (c *HashComparator) Name() string {
	return "hash"
}

// contextReader stops reading once ctx is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
