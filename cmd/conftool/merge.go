package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pyconferences/conftool/pkg/cli"
	"github.com/pyconferences/conftool/pkg/dataset/merge"
)

var mergeFlags struct {
	output string
}

var mergeCmd = &cobra.Command{
	Use:   "merge [file...]",
	Short: "Combine the per-year files into the aggregate",
	Long: `Combine the per-year data files into the aggregate file.

The aggregate's columns are the union of the input headers, and its rows are
sorted by Subject, then Start Date. The aggregate itself is never read as an
input.

Examples:
  # Rebuild conferences.csv from every per-year file
  conftool merge

  # Write the aggregate somewhere else
  conftool merge --output /tmp/all.csv`,
	RunE: mergeFiles,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&mergeFlags.output, "output", "o", "", "aggregate file to write (default: data.aggregate in the data directory)")
}

func mergeFiles(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd, "merge")

	out := mergeFlags.output
	if out == "" {
		out = filepath.Join(e.cfg.Data.Dir, e.cfg.Data.Aggregate)
	}

	paths, err := e.dataFiles(args, e.cfg.Data.Aggregate)
	if err != nil {
		return err
	}

	res, err := merge.Merge(paths, out)
	if err != nil {
		return cli.NewCommandError("merge", err)
	}

	e.logger.InfoContext(ctx, "Merge finished",
		"output", res.Path, "files", res.Files, "rows", res.Rows, "columns", len(res.Columns))
	fmt.Fprintf(cmd.OutOrStdout(), "merged %d rows from %d files into %s\n", res.Rows, res.Files, res.Path)
	return nil
}
