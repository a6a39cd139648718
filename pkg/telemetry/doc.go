// Package telemetry groups the observability packages used by conftool.
//
// # Components
//
//   - logging: structured logging on log/slog, with run, command and file
//     fields taken from the context
//   - metrics: Prometheus lint metrics on a private registry, written to a
//     node exporter textfile after each run
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "console"})
//	if err != nil {
//		return err
//	}
//	ctx = logging.WithRunID(ctx, runID)
//	logger.InfoContext(ctx, "Run finished", "files", 12)
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	runner := lint.NewRunner(schema, lint.WithRecorder(collector))
//	report := runner.Run(ctx, paths)
//	err = collector.WriteTextfile(cfg.Telemetry.Metrics.Textfile)
package telemetry
