// Package ratelimit throttles copy throughput.
package ratelimit

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

// minBurst keeps reads of a typical copy buffer from being split too finely
const minBurst = 64 * 1024

// Limiter caps the byte rate shared by every reader wrapped with it
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter returns a limiter allowing bytesPerSecond, or nil when the
// rate is not positive (no limiting).
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	// One second of data, but never less than minBurst
	burst := bytesPerSecond
	if burst < minBurst {
		burst = minBurst
	}

	return &Limiter{limiter: rate.NewLimiter(rate.Limit(bytesPerSecond), int(burst))}
}

// Burst returns the largest single read the limiter admits
func (l *Limiter) Burst() int {
	return l.limiter.Burst()
}

// BytesPerSecond returns the configured rate
func (l *Limiter) BytesPerSecond() int64 {
	return int64(l.limiter.Limit())
}

// ParseBandwidth parses a human-readable rate such as "10M", "512KiB" or
// "1G" into bytes per second. An empty string or "0" disables limiting.
func ParseBandwidth(s string) (int64, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid bandwidth %q: %w", s, err)
	}
	return int64(n), nil
}

// Reader wraps an io.Reader with bandwidth limiting
type Reader struct {
	reader  io.Reader
	limiter *Limiter
	ctx     context.Context
}

// NewReader wraps reader; a nil limiter returns reader unchanged
func NewReader(ctx context.Context, reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{reader: reader, limiter: limiter, ctx: ctx}
}

// Read reserves len(p) bytes, capped at the burst size, before reading
func (r *Reader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}

	if burst := r.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}
	if err := r.limiter.limiter.WaitN(r.ctx, len(p)); err != nil {
		return 0, err
	}

	return r.reader.Read(p)
}
