package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pyconferences/conftool/pkg/cli"
	"github.com/pyconferences/conftool/pkg/dataset/lint"
	"github.com/pyconferences/conftool/pkg/telemetry/logging"
	"github.com/pyconferences/conftool/pkg/telemetry/metrics"
	"github.com/pyconferences/conftool/pkg/watch"
)

var lintFlags struct {
	format      string
	context     int
	metricsFile string
	watch       bool
}

var lintCmd = &cobra.Command{
	Use:   "lint [file...]",
	Short: "Validate data files",
	Long: `Validate conference data files against the column rules.

Every row of every file is checked and every failure is reported: empty
subjects, malformed dates, unknown country codes and rows with too many or too
few fields. Files that pass print nothing. The exit status is 1 when any file
fails.

Without arguments the files matching data.pattern in the data directory are
checked.

Examples:
  # Lint every data file
  conftool lint

  # Lint specific files, with two lines of source around each failure
  conftool lint 2024.csv 2025.csv --context 2

  # JSON output for CI/CD
  conftool lint --format json

  # Write Prometheus metrics for the node exporter textfile collector
  conftool lint --metrics-file /var/lib/node_exporter/conftool.prom

  # Re-run whenever a data file changes
  conftool lint --watch`,
	RunE: lintFiles,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVar(&lintFlags.format, "format", "", "output format: text, json (default from lint.format)")
	lintCmd.Flags().IntVar(&lintFlags.context, "context", -1, "source lines to show around each failure (default from lint.context_lines)")
	lintCmd.Flags().StringVar(&lintFlags.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	lintCmd.Flags().BoolVarP(&lintFlags.watch, "watch", "w", false, "re-run when data files change")
}

// linter runs lint passes and reports them.
type linter struct {
	runner      *lint.Runner
	collector   *metrics.Collector
	format      cli.OutputFormat
	showContext bool
	out         io.Writer
	logger      *logging.Logger
}

func lintFiles(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	cfg := e.cfg

	format := cfg.Lint.Format
	if lintFlags.format != "" {
		format = lintFlags.format
	}
	outFormat, err := cli.ParseOutputFormat(format)
	if err != nil {
		return err
	}

	contextLines := cfg.Lint.ContextLines
	if lintFlags.context >= 0 {
		contextLines = lintFlags.context
	}

	s, err := cfg.BuildSchema()
	if err != nil {
		return cli.NewConfigError("schema", err.Error())
	}

	metricsCfg := cfg.Telemetry.Metrics
	if lintFlags.metricsFile != "" {
		metricsCfg.Textfile = lintFlags.metricsFile
		metricsCfg.Enabled = true
	}
	collector := metrics.NewCollector(&metricsCfg, nil)

	opts := []lint.Option{
		lint.WithLogger(e.logger.Slog()),
		lint.WithContextLines(contextLines),
	}
	if collector.Enabled() {
		opts = append(opts, lint.WithRecorder(collector))
	}

	l := &linter{
		runner:      lint.NewRunner(s, opts...),
		collector:   collector,
		format:      outFormat,
		showContext: contextLines > 0,
		out:         cmd.OutOrStdout(),
		logger:      e.logger,
	}

	ctx, stop := cli.SetupSignalHandler(commandContext(cmd, "lint"))
	defer stop()

	paths, err := e.dataFiles(args)
	if err != nil {
		return err
	}

	report, err := l.run(ctx, paths)
	if err != nil {
		return err
	}

	if lintFlags.watch {
		return l.watch(ctx, e, args)
	}

	if !report.Passed() {
		return cli.NewFailedError("lint",
			fmt.Sprintf("%d of %d files failed", len(report.Failing()), len(report.Files)))
	}
	return nil
}

// run lints paths once under a fresh run ID and writes the report.
func (l *linter) run(ctx context.Context, paths []string) (*lint.RunReport, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)

	report := l.runner.Run(ctx, paths)

	formatter := cli.NewFormatter(l.format, runID)
	if text, ok := formatter.(*cli.TextFormatter); ok {
		text.ShowContext = l.showContext
	}
	if err := formatter.FormatTo(l.out, report); err != nil {
		return nil, cli.NewCommandError("lint", fmt.Errorf("failed to write report: %w", err))
	}

	if textfile := l.collector.Textfile(); textfile != "" {
		if err := l.collector.WriteTextfile(textfile); err != nil {
			return nil, cli.NewCommandError("lint", err)
		}
		l.logger.DebugContext(ctx, "Metrics written", "path", textfile)
	}
	return report, nil
}

// watch re-runs the lint on every change until ctx is canceled.
func (l *linter) watch(ctx context.Context, e *env, args []string) error {
	w, err := watch.New(&watch.Config{
		Dir:              e.cfg.Data.Dir,
		Pattern:          e.cfg.Data.Pattern,
		Exclude:          e.cfg.Data.Exclude,
		DebounceInterval: 200 * time.Millisecond,
		SkipHidden:       true,
	}, e.logger.Slog())
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	defer func() { _ = w.Stop() }()

	err = w.Watch(ctx, func(ctx context.Context, changed []string) error {
		l.logger.InfoContext(ctx, "Re-running lint", "changed", changed)
		paths, err := e.dataFiles(args)
		if err != nil {
			return err
		}
		_, err = l.run(ctx, paths)
		return err
	})
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	return nil
}
