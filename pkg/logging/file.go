package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

var stderr io.Writer = os.Stderr

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of backup files to keep
	MaxBackups int
}

// sink is the destination shared by a logger and its WithFields children
type sink struct {
	mu          sync.Mutex
	config      FileLoggerConfig
	file        *os.File
	writer      io.Writer
	currentSize int64
	now         func() time.Time
}

// FileLogger implements Logger, writing to a rotated file or a plain stream
type FileLogger struct {
	sink   *sink
	fields Fields
}

// NewFileLogger creates a new file logger
func NewFileLogger(config FileLoggerConfig) (*FileLogger, error) {
	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	return &FileLogger{
		sink: &sink{
			config:      config,
			file:        file,
			writer:      file,
			currentSize: info.Size(),
			now:         time.Now,
		},
	}, nil
}

// NewStreamLogger creates a logger writing to w without rotation
func NewStreamLogger(w io.Writer, format Format, level Level) *FileLogger {
	return &FileLogger{
		sink: &sink{
			config: FileLoggerConfig{Format: format, Level: level},
			writer: w,
			now:    time.Now,
		},
	}
}

// Debug logs a debug message
func (l *FileLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *FileLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *FileLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *FileLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger with additional fields sharing the same output
func (l *FileLogger) WithFields(fields Fields) Logger {
	return &FileLogger{
		sink:   l.sink,
		fields: merge(l.fields, fields),
	}
}

// Close closes the log file, if any
func (l *FileLogger) Close() error {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		s.writer = io.Discard
		return err
	}
	return nil
}

func (l *FileLogger) log(level Level, msg string, err error, fields Fields) {
	s := l.sink
	if level < s.config.Level {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil && s.config.MaxSize > 0 && s.currentSize >= s.config.MaxSize {
		s.rotate()
	}

	allFields := merge(l.fields, fields)
	timestamp := s.now().UTC()

	var line []byte
	var formatErr error
	if s.config.Format == FormatJSON {
		line, formatErr = formatJSON(timestamp, level, msg, err, allFields)
	} else {
		line = formatText(timestamp, level, msg, err, allFields)
	}
	if formatErr != nil {
		return
	}

	n, _ := s.writer.Write(line)
	s.currentSize += int64(n)
}

func merge(base, extra Fields) Fields {
	merged := make(Fields, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// formatJSON formats a log entry as a JSON line
func formatJSON(ts time.Time, level Level, msg string, err error, fields Fields) ([]byte, error) {
	entry := map[string]interface{}{
		"timestamp": ts.Format(time.RFC3339),
		"level":     levelString(level),
		"message":   msg,
	}

	if err != nil {
		entry["error"] = err.Error()
	}

	for k, v := range fields {
		if _, reserved := entry[k]; reserved {
			continue
		}
		entry[k] = v
	}

	data, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		return nil, jsonErr
	}

	return append(data, '\n'), nil
}

// formatText formats a log entry as plain text with fields sorted by key
func formatText(ts time.Time, level Level, msg string, err error, fields Fields) []byte {
	line := fmt.Sprintf("%s [%s] %s", ts.Format("2006-01-02T15:04:05.000Z"), levelString(level), msg)

	if err != nil {
		line += fmt.Sprintf(" error=%q", err.Error())
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		line += fmt.Sprintf(" %s=%v", k, fields[k])
	}

	return []byte(line + "\n")
}

// rotate rotates the log file
func (s *sink) rotate() {
	s.file.Close()

	for i := s.config.MaxBackups - 1; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", s.config.Path, i)
		newPath := fmt.Sprintf("%s.%d", s.config.Path, i+1)
		os.Rename(oldPath, newPath)
	}

	os.Rename(s.config.Path, s.config.Path+".1")

	if s.config.MaxBackups > 0 {
		os.Remove(fmt.Sprintf("%s.%d", s.config.Path, s.config.MaxBackups+1))
	}

	file, err := os.OpenFile(s.config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		s.file = nil
		s.writer = io.Discard
		return
	}

	s.file = file
	s.writer = file
	s.currentSize = 0
}

// levelString returns the string representation of a log level
func levelString(level Level) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return DebugLevel
	case "info", "INFO":
		return InfoLevel
	case "warn", "WARN", "warning", "WARNING":
		return WarnLevel
	case "error", "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// LevelString returns level as string (exported version)
func LevelString(level Level) string {
	return levelString(level)
}
