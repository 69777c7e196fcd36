package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mtfind/internal/logging"
	"github.com/yaklabco/mtfind/internal/ui/pretty"
	"github.com/yaklabco/mtfind/pkg/config"
	"github.com/yaklabco/mtfind/pkg/pattern"
	"github.com/yaklabco/mtfind/pkg/reporter"
	"github.com/yaklabco/mtfind/pkg/runner"
	"github.com/yaklabco/mtfind/pkg/source"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// findFlags carries the flag values of the root command.
type findFlags struct {
	jobs     int
	strategy string
	format   string
}

const rootLongDescription = `mtfind finds every occurrence of a fixed-length wildcard pattern in
line-oriented input and prints, for each match, the line number, the column,
and the matched text, preceded by a line with the total match count.

INPUT is a file to search, or '-' to read standard input. PATTERN is a
sequence of 7-bit ASCII symbols in which '?' matches any single symbol.`

const rootExamples = `  mtfind input.txt "?ad"
      Finds words like "bad", "mad", "sad", " ad"; '?' also matches
      whitespace and separators.

  mtfind input.txt "??"
      Splits every line into pairs of symbols.

  mtfind input.txt "wor:d"
      Finds "wor:d"; punctuation needs no escaping.

  cat input.txt | mtfind - "wor:d"
      Same as above, reading from standard input.`

// NewRootCommand creates the root mtfind command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	flags := &findFlags{}

	rootCmd := &cobra.Command{
		Use:     "mtfind INPUT PATTERN",
		Short:   "A parallel wildcard pattern finder for line-oriented text",
		Long:    rootLongDescription,
		Example: rootExamples,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, args, configPath, color, debug, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Find flags.
	rootCmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	rootCmd.Flags().StringVar(&flags.strategy, "strategy", "auto",
		"execution strategy: auto, divide, roundrobin")
	rootCmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	// Flag parse failures are usage errors for exit-code purposes.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrUsage, err)
	})

	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

func runFind(cmd *cobra.Command, args []string, configPath, color string, debug bool, flags *findFlags) error {
	logger := logging.Default()

	// Bare invocation prints the help page and succeeds.
	if len(args) == 0 {
		return cmd.Help()
	}

	if len(args) < 2 {
		return fmt.Errorf("%w: expected INPUT and PATTERN arguments", ErrUsage)
	}
	for _, extra := range args[2:] {
		logger.Warn("redundant parameter skipped", "parameter", extra)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := config.Load(workDir, configPath)
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	// CLI flags override the configuration file.
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if cmd.Flags().Changed("strategy") {
		strat, err := config.ParseStrategy(flags.strategy)
		if err != nil {
			return errors.Join(ErrUsage, err)
		}
		cfg.Strategy = strat
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = flags.format
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = color
	}
	if err := cfg.Validate(); err != nil {
		return errors.Join(ErrConfig, err)
	}

	pat, err := pattern.Parse(args[1])
	if err != nil {
		return errors.Join(ErrPattern, err)
	}

	format, err := reporter.ParseFormat(cfg.Format)
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer: cmd.OutOrStdout(),
		Format: format,
		Color:  cfg.Color,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	opts := runner.Options{
		Input:    args[0],
		Pattern:  pat,
		Jobs:     cfg.Jobs,
		Strategy: cfg.Strategy,
		Stdin:    cmd.InOrStdin(),
	}

	result, err := runner.Run(ctx, opts, rep.Count, rep.Finding)
	if err != nil {
		// An empty input has nothing to search; the original tool treats
		// this as success after a notice.
		if errors.Is(err, source.ErrEmptyFile) {
			logger.Warn("input file is empty", logging.FieldInput, args[0])
			return nil
		}
		return err
	}

	if err := rep.Flush(); err != nil {
		return err
	}

	if debug {
		styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, os.Stderr))
		jobs := cfg.Jobs
		if jobs <= 0 {
			jobs = runtime.NumCPU()
		}
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatSummaryOneLine(result, jobs))
	}

	return nil
}
