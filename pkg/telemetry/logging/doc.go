// Package logging provides structured logging for conftool.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging in JSON, text and console formats
//   - Context-aware logging that carries the run ID and the file being processed
//   - Configurable log levels (debug, info, warn, error)
//
// Logs are diagnostics, not results: they go to stderr by default so that lint
// reports and exported data on stdout stay machine-readable.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "text",
//	})
//	if err != nil {
//	    return err
//	}
//
//	ctx := logging.WithRunID(ctx, runID)
//	ctx = logging.WithFile(ctx, "2024.csv")
//	logger.InfoContext(ctx, "File validated", "rows", 42)
//	// level=INFO msg="File validated" run_id=... file=2024.csv rows=42
//
// Libraries that take a *slog.Logger get the same behaviour through Slog().
package logging
