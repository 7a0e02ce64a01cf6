package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sdejongh/filesync/pkg/config"
	"github.com/sdejongh/filesync/pkg/models"
)

// loadConfig reads the config file and applies explicitly set flags on top
func loadConfig(cmd *cobra.Command, f *Flags) (*config.Config, error) {
	cfg, err := config.Load(f.ConfigFile)
	if err != nil {
		return nil, err
	}

	if err := applyFlagsToConfig(cmd, cfg, f); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	return cfg, nil
}

// applyFlagsToConfig overrides config values with flags given on the command line
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config, f *Flags) error {
	changed := cmd.Flags().Changed

	if changed("comparison") {
		cfg.Sync.Comparison = models.ComparisonMethod(f.Comparison)
	}
	if changed("modtime-window") {
		window, err := time.ParseDuration(f.ModTimeWindow)
		if err != nil {
			return fmt.Errorf("invalid --modtime-window: %w", err)
		}
		cfg.Sync.ModTimeWindow = window
	}
	if changed("dry-run") {
		cfg.Sync.DryRun = f.DryRun
	}
	if changed("exclude") {
		cfg.Sync.Exclude = append(cfg.Sync.Exclude, f.Exclude...)
	}
	if changed("buffer-size") {
		cfg.Performance.BufferSize = f.BufferSize
	}
	if changed("bandwidth") {
		cfg.Performance.BandwidthLimit = f.Bandwidth
	}

	if changed("output") {
		cfg.Output.Format = f.Output
	}
	if changed("progress") {
		cfg.Output.Progress = f.Progress
	}
	if changed("summary") {
		cfg.Output.Summary = f.Summary
	}
	if changed("verbose") {
		cfg.Output.Verbose = f.Verbose
	}
	if changed("quiet") {
		cfg.Output.Quiet = f.Quiet
	}

	if changed("log-file") {
		cfg.Logging.File = f.LogFile
	}
	if changed("log-format") {
		cfg.Logging.Format = f.LogFormat
	}
	if changed("log-level") {
		cfg.Logging.Level = f.LogLevel
	}

	return nil
}
