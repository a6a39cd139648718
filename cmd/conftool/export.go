package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyconferences/conftool/pkg/cli"
	"github.com/pyconferences/conftool/pkg/dataset/export"
)

var exportFlags struct {
	jsonPath string
	icsPath  string
	prodID   string
	noJSON   bool
	noICS    bool
}

var exportCmd = &cobra.Command{
	Use:   "export [file...]",
	Short: "Write the JSON and iCalendar feeds",
	Long: `Write the conference list as JSON and as an iCalendar file.

Every data file is read in name order. Blank rows and rows with neither a
Subject nor a Start Date are skipped, and files named after a year add a
"year" field. Conferences are sorted by Start Date, then Subject. Each
conference with a valid Start Date becomes one all-day calendar event.

Examples:
  # Write conferences.json and conferences.ics
  conftool export

  # Only the calendar, to a custom path
  conftool export --no-json --ics site/static/conferences.ics`,
	RunE: exportFiles,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFlags.jsonPath, "json", "", "JSON output path (default from export.json_path)")
	exportCmd.Flags().StringVar(&exportFlags.icsPath, "ics", "", "iCalendar output path (default from export.ics_path)")
	exportCmd.Flags().StringVar(&exportFlags.prodID, "prod-id", "", "calendar PRODID (default from export.prod_id)")
	exportCmd.Flags().BoolVar(&exportFlags.noJSON, "no-json", false, "skip the JSON export")
	exportCmd.Flags().BoolVar(&exportFlags.noICS, "no-ics", false, "skip the iCalendar export")
}

func exportFiles(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd, "export")
	cfg := e.cfg.Export

	jsonPath := firstNonEmpty(exportFlags.jsonPath, cfg.JSONPath)
	icsPath := firstNonEmpty(exportFlags.icsPath, cfg.ICSPath)
	prodID := firstNonEmpty(exportFlags.prodID, cfg.ProdID)
	if !exportFlags.noJSON && !exportFlags.noICS && jsonPath == icsPath {
		return cli.NewConfigError("export", "json and ics outputs must be different files")
	}

	paths, err := e.dataFiles(args)
	if err != nil {
		return err
	}

	confs, err := export.Load(paths)
	if err != nil {
		return cli.NewCommandError("export", err)
	}
	e.logger.InfoContext(ctx, "Conferences loaded", "files", len(paths), "conferences", len(confs))

	out := cmd.OutOrStdout()
	if !exportFlags.noJSON {
		err := writeFile(jsonPath, func(f *os.File) error {
			return export.WriteJSON(f, confs)
		})
		if err != nil {
			return cli.NewCommandError("export", err)
		}
		fmt.Fprintf(out, "wrote %d conferences to %s\n", len(confs), jsonPath)
	}

	if !exportFlags.noICS {
		cal := &export.Calendar{ProdID: prodID}
		var events int
		err := writeFile(icsPath, func(f *os.File) error {
			var err error
			events, err = cal.Write(f, confs)
			return err
		})
		if err != nil {
			return cli.NewCommandError("export", err)
		}
		if skipped := len(confs) - events; skipped > 0 {
			e.logger.WarnContext(ctx, "Conferences without a valid start date left out of the calendar", "count", skipped)
		}
		fmt.Fprintf(out, "wrote %d events to %s\n", events, icsPath)
	}
	return nil
}

// writeFile creates path and passes it to write, closing it afterwards.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
