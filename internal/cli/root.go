package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/apodwall/apodwall/pkg/errors"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the apodwall CLI and returns an error if any command fails.
//
// Invoking the binary with no arguments performs one fetch-and-render pass;
// `run` is the explicit form. Logging defaults to info level and --verbose
// (-v) raises it to debug. The logger is attached to the context and
// accessible to all commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:           "apodwall",
		Short:         "apodwall saves today's captioned astronomy picture",
		Long:          `apodwall fetches NASA's Astronomy Picture of the Day, draws its explanation onto the image inside a readable bottom band, and places the result at the configured save directory, translating Windows-style paths when running inside WSL.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), verbose)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("apodwall %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd(&verbose))
	root.AddCommand(newComposeCmd())
	root.AddCommand(newPathsCmd())

	// Errors are silenced on the commands and printed exactly once here.
	// The caller maps the returned error to an exit code.
	if err := root.ExecuteContext(ctx); err != nil {
		if !stderrors.Is(err, context.Canceled) {
			printError("%s", errors.UserMessage(err))
		}
		return err
	}
	return nil
}
