package cli

import (
	"github.com/spf13/cobra"
)

// Flags holds command-line flag values
type Flags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool

	Comparison    string
	ModTimeWindow string
	DryRun        bool
	Exclude       []string
	BufferSize    int
	Bandwidth     string

	Output       string
	Progress     bool
	Summary      bool
	ReportFile   string
	ReportFormat string

	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

// addFlags registers every flag on cmd, bound to f
func addFlags(cmd *cobra.Command, f *Flags) {
	flags := cmd.Flags()

	flags.StringVar(&f.ConfigFile, "config", "", "config file (default is $HOME/.config/file_sync/config.yaml)")
	flags.BoolVarP(&f.Verbose, "verbose", "v", false, "print the run header and every copy")
	flags.BoolVarP(&f.Quiet, "quiet", "q", false, "only print errors and the completion line")

	flags.StringVar(&f.Comparison, "comparison", "binary", "content comparison method: binary (byte-exact, default), hash (SHA-256 digest)")
	flags.StringVar(&f.ModTimeWindow, "modtime-window", "0s", "how much newer a source file must be to replace the destination (e.g. \"2s\")")
	flags.BoolVar(&f.DryRun, "dry-run", false, "classify files without writing anything")
	flags.StringSliceVar(&f.Exclude, "exclude", []string{}, "file name glob patterns to ignore")
	flags.IntVar(&f.BufferSize, "buffer-size", 65536, "read buffer size in bytes")
	flags.StringVarP(&f.Bandwidth, "bandwidth", "b", "", "copy bandwidth limit (e.g., \"10M\", \"1G\")")

	flags.StringVarP(&f.Output, "output", "o", "human", "output format: human, json")
	flags.BoolVar(&f.Progress, "progress", false, "show a progress bar on stderr when it is a terminal")
	flags.BoolVar(&f.Summary, "summary", false, "print a statistics table on stderr after the run")
	flags.StringVar(&f.ReportFile, "report-file", "", "write a per-file report to this path")
	flags.StringVar(&f.ReportFormat, "report-format", "human", "report file format: human, json")

	flags.StringVar(&f.LogFile, "log-file", "", "write diagnostic logs to file (\"-\" for stderr)")
	flags.StringVar(&f.LogFormat, "log-format", "text", "log format: text, json")
	flags.StringVar(&f.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
}
