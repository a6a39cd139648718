package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyconferences/conftool/pkg/cli"
	"github.com/pyconferences/conftool/pkg/dataset/format"
)

var formatFlags struct {
	check bool
}

var formatCmd = &cobra.Command{
	Use:   "format [file...]",
	Short: "Normalize data files",
	Long: `Normalize conference data files in place.

Values are trimmed, rows without a Subject are dropped and rows are sorted by
Start Date, End Date and Subject. The header order is kept. Files with rows of
the wrong shape are left untouched; fix them first (see conftool lint).

Examples:
  # Format every data file
  conftool format

  # Report files that are not formatted, without changing them (for CI)
  conftool format --check`,
	RunE: formatFiles,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().BoolVar(&formatFlags.check, "check", false, "report files that would change and exit 1 without writing")
}

func formatFiles(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd, "format")

	paths, err := e.dataFiles(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var changed, failed int
	for _, path := range paths {
		res, err := format.File(path, formatFlags.check)
		if err != nil {
			failed++
			e.logger.ErrorContext(ctx, "Format failed", "file", path, "error", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			continue
		}
		if !res.Changed {
			continue
		}
		changed++
		if formatFlags.check {
			fmt.Fprintf(out, "would reformat %s\n", res.Path)
		} else {
			fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
		if res.Dropped > 0 {
			e.logger.InfoContext(ctx, "Dropped rows without a subject", "file", res.Path, "rows", res.Dropped)
		}
	}

	e.logger.InfoContext(ctx, "Format finished",
		"files", len(paths), "changed", changed, "failed", failed, "check", formatFlags.check)

	switch {
	case failed > 0:
		return cli.NewFailedError("format", fmt.Sprintf("%d of %d files could not be formatted", failed, len(paths)))
	case formatFlags.check && changed > 0:
		return cli.NewFailedError("format", fmt.Sprintf("%d of %d files would be reformatted", changed, len(paths)))
	}
	return nil
}
