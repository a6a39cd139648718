/*
Package cli provides command-line helpers for the conftool command.

Output Formatting:

Lint reports are written as styled text or JSON:

	format, err := cli.ParseOutputFormat(flagFormat)
	if err != nil {
		return err
	}
	formatter := cli.NewFormatter(format, runID)
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

The text report is empty when every file passes.

Errors and Exit Codes:

Commands return ConfigError for bad flags or configuration, CommandError when
an operation could not complete, and FailedError when they ran to completion
and found problems. ExitCode maps each to the process exit status.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
