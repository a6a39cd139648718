package main

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pyconferences/conftool/pkg/cli"
	"github.com/pyconferences/conftool/pkg/dataset/merge"
)

var splitFlags struct {
	input  string
	output string
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split the aggregate into per-year files",
	Long: `Split the aggregate file into one data file per year.

The year is the leading four digits of Start Date. Rows without a Subject are
dropped, trailing slashes are stripped from every value and each year's rows
are sorted by Start Date, End Date and Subject. Existing per-year files are
overwritten.

Examples:
  # Split conferences.csv into 2023.csv, 2024.csv, ...
  conftool split

  # Split another aggregate into a scratch directory
  conftool split --input /tmp/all.csv --output /tmp/years`,
	Args: cobra.NoArgs,
	RunE: splitFile,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().StringVarP(&splitFlags.input, "input", "i", "", "aggregate file to split (default: data.aggregate in the data directory)")
	splitCmd.Flags().StringVarP(&splitFlags.output, "output", "o", "", "directory for the per-year files (default: the data directory)")
}

func splitFile(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd, "split")

	in := splitFlags.input
	if in == "" {
		in = filepath.Join(e.cfg.Data.Dir, e.cfg.Data.Aggregate)
	}
	dir := splitFlags.output
	if dir == "" {
		dir = e.cfg.Data.Dir
	}

	res, err := merge.Split(in, dir)
	if err != nil {
		return cli.NewCommandError("split", err)
	}

	e.logger.InfoContext(ctx, "Split finished",
		"input", in, "years", len(res.Years), "rows", res.Rows, "dropped", res.Dropped)

	out := cmd.OutOrStdout()
	for _, year := range slices.Sorted(maps.Keys(res.Years)) {
		fmt.Fprintf(out, "wrote %s\n", res.Years[year])
	}
	return nil
}
