package logging

import (
	"context"
)

// Level represents log severity
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger defines the diagnostic logging interface.
// Diagnostic logs never share a stream with the sync status lines.
type Logger interface {
	// Debug logs a debug message
	Debug(ctx context.Context, msg string, fields Fields)

	// Info logs an info message
	Info(ctx context.Context, msg string, fields Fields)

	// Warn logs a warning message
	Warn(ctx context.Context, msg string, fields Fields)

	// Error logs an error message
	Error(ctx context.Context, msg string, err error, fields Fields)

	// WithFields returns a logger with additional fields
	WithFields(fields Fields) Logger

	// Close flushes and closes the logger
	Close() error
}

// Config selects where and how diagnostics are written
type Config struct {
	// File is the log file path; "" disables logging and "-" writes to stderr
	File   string
	Format string
	Level  string
}

// New builds the logger described by cfg
func New(cfg Config) (Logger, error) {
	format := FormatText
	if cfg.Format == string(FormatJSON) {
		format = FormatJSON
	}

	switch cfg.File {
	case "":
		return NewNullLogger(), nil
	case "-":
		return NewStreamLogger(stderr, format, ParseLevel(cfg.Level)), nil
	default:
		logger, err := NewFileLogger(FileLoggerConfig{
			Path:       cfg.File,
			Format:     format,
			Level:      ParseLevel(cfg.Level),
			MaxSize:    10 * 1024 * 1024, // 10 MB
			MaxBackups: 5,
		})
		if err != nil {
			return nil, err
		}
		return logger, nil
	}
}
