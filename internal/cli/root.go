package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sdejongh/filesync/pkg/errclass"
)

// UsageLine is printed when the command is not given exactly two directories
const UsageLine = "Usage: file_sync <source_directory> <destination_directory>"

// Execute runs file_sync with args and returns the process exit code.
// Status lines go to stdout; progress bars, summaries and stderr logs go to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var flags Flags
	exitCode := 0

	cmd := &cobra.Command{
		Use:   "file_sync <source_directory> <destination_directory>",
		Short: "One-way synchronization of the files in a directory",
		Long: `file_sync copies the regular files found directly inside a source directory
into a destination directory. Files missing from the destination are copied,
files that changed and are newer in the source replace their destination copy,
and everything else is left alone. Subdirectories are ignored.

Use -- before the directories when a name starts with a dash:
  file_sync -- -source -dest`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errclass.ErrUsage.WithMessagef("expected 2 arguments, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				fmt.Fprintf(stdout, "Error: %v\n", err)
				exitCode = 1
				return nil
			}
			exitCode = runSync(cmd.Context(), cfg, args[0], args[1], &flags, stdout, stderr)
			return nil
		},
	}
	cmd.SetVersionTemplate(versionTemplate)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	addFlags(cmd, &flags)

	// Only argument and flag parsing errors reach this point
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errclass.ErrUsage) {
			fmt.Fprintf(stdout, "Error: %v\n", err)
		}
		fmt.Fprintln(stdout, UsageLine)
		return 1
	}

	return exitCode
}
