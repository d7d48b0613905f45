package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/apodwall/apodwall/internal/config"
	"github.com/apodwall/apodwall/internal/pipeline"
	"github.com/apodwall/apodwall/pkg/apod"
	"github.com/apodwall/apodwall/pkg/caption/fonts"
	"github.com/apodwall/apodwall/pkg/destination"
	"github.com/apodwall/apodwall/pkg/errors"
)

func newRunCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Fetch today's picture, caption it, and save it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), *verbose)
		},
	}
}

// runOnce performs the single fetch → compose → deliver pass.
//
// The run log always receives the structured record (start, stage timings,
// outcome). It is opened before the configuration is loaded so that a
// configuration failure is recorded too. The terminal gets either the same
// stream (--verbose) or a spinner with a one-line summary. A non-image day
// is a success: logged as a skip, exit code zero, no file written.
func runOnce(ctx context.Context, verbose bool) error {
	logPath := config.LogPath()

	var sink io.Writer = io.Discard
	logFile, lfErr := openRunLog(logPath)
	if lfErr == nil {
		defer logFile.Close()
		sink = logFile
	}

	level := charmlog.InfoLevel
	out := sink
	if verbose {
		level = charmlog.DebugLevel
		out = io.MultiWriter(os.Stderr, sink)
	}
	logger := newLogger(out, level)
	if lfErr != nil {
		fmt.Fprintf(os.Stderr, "warning: run log unavailable at %s: %v\n", logPath, lfErr)
	}

	cfg, err := config.Load()
	if err != nil {
		return fail(logger, err)
	}

	logger.Info("run started", "date", cfg.EffectiveDate())

	var rules destination.Rules
	if cfg.RulesFile != "" {
		if rules, err = destination.LoadRules(cfg.RulesFile); err != nil {
			return fail(logger, err)
		}
	}
	resolver := destination.NewResolver(rules)

	loader, err := fonts.Discover()
	if err != nil {
		return fail(logger, err)
	}
	logger.Debug("using font", "path", loader.Path)

	opts := []apod.Option{
		apod.WithTimeout(cfg.Timeout),
		apod.WithAttempts(cfg.RetryAttempts),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, apod.WithBaseURL(cfg.BaseURL))
	}
	client := apod.NewClient(cfg.APIKey, opts...)

	runner := pipeline.NewRunner(client, loader, resolver, logger, cfg.SaveDir, cfg.Date)

	var spin *Spinner
	if !verbose {
		spin = newSpinner(ctx, "fetching today's picture...")
		spin.Start()
	}

	result, err := runner.Run(ctx)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return fail(logger, err)
	}

	if result.Skipped {
		logger.Info("run finished", "outcome", "skipped", "media_type", result.MediaType)
		printInfo("nothing to do today (media_type=%s)", result.MediaType)
		return nil
	}

	logger.Info("run finished", "outcome", "success", "path", result.OutputPath)
	printSuccess("%s", result.Title)
	printFile(result.OutputPath)
	return nil
}

// fail records a failed run in the log. Execute prints the returned error
// once, so nothing is written to the terminal here.
func fail(logger *charmlog.Logger, err error) error {
	logger.Error("run failed", "code", errors.GetCode(err), "error", err)
	return err
}
