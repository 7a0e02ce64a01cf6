package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sdejongh/filesync/pkg/models"
	"github.com/sdejongh/filesync/pkg/ratelimit"
)

// Config represents the application configuration
type Config struct {
	Sync        SyncConfig        `yaml:"sync"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SyncConfig holds sync-related settings
type SyncConfig struct {
	Comparison models.ComparisonMethod `yaml:"comparison"`
	// ModTimeWindow is how much later a source file must be to replace the destination
	ModTimeWindow time.Duration `yaml:"modtime_window"`
	Exclude       []string      `yaml:"exclude"`
	DryRun        bool          `yaml:"dry_run"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	BufferSize int `yaml:"buffer_size"`
	// BandwidthLimit is a human-readable rate such as "10M"; empty means unlimited
	BandwidthLimit string `yaml:"bandwidth_limit"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Progress bar on stderr
	Summary  bool   `yaml:"summary"`  // Statistics table on stderr
	Verbose  bool   `yaml:"verbose"`
	Quiet    bool   `yaml:"quiet"` // Only errors and the completion line
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	File   string `yaml:"file"`   // Log file path, "-" for stderr, empty disables logging
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Sync: SyncConfig{
			Comparison: models.CompareBinary,
		},
		Performance: PerformanceConfig{
			BufferSize: 65536,
		},
		Output: OutputConfig{
			Format: "human",
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Sync.Comparison {
	case models.CompareBinary, models.CompareHash:
	default:
		return &models.ValidationError{
			Field:   "sync.comparison",
			Message: "must be 'binary' or 'hash'",
		}
	}

	if c.Sync.ModTimeWindow < 0 {
		return &models.ValidationError{
			Field:   "sync.modtime_window",
			Message: "must not be negative",
		}
	}

	for _, pattern := range c.Sync.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return &models.ValidationError{
				Field:   "sync.exclude",
				Message: fmt.Sprintf("invalid pattern %q", pattern),
			}
		}
	}

	if c.Performance.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	if _, err := ratelimit.ParseBandwidth(c.Performance.BandwidthLimit); err != nil {
		return &models.ValidationError{
			Field:   "performance.bandwidth_limit",
			Message: err.Error(),
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	if c.Output.Verbose && c.Output.Quiet {
		return &models.ValidationError{
			Field:   "output.quiet",
			Message: "cannot be combined with verbose",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}

// Operation builds the sync operation for a source and destination pair.
// c must have passed Validate.
func (c *Config) Operation(id, sourcePath, destPath string) *models.SyncOperation {
	bandwidth, _ := ratelimit.ParseBandwidth(c.Performance.BandwidthLimit)
	return &models.SyncOperation{
		ID:               id,
		SourcePath:       sourcePath,
		DestPath:         destPath,
		ComparisonMethod: c.Sync.Comparison,
		ModTimeWindow:    c.Sync.ModTimeWindow,
		ExcludePatterns:  append([]string(nil), c.Sync.Exclude...),
		DryRun:           c.Sync.DryRun,
		BufferSize:       c.Performance.BufferSize,
		BandwidthLimit:   bandwidth,
		CreatedAt:        time.Now(),
	}
}
