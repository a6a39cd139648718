// Conftool checks and maintains the Python conference dataset.
//
// The dataset is a set of comma-delimited files, one per year plus an
// aggregate, with one conference per row. Conftool validates every row against
// the column rules and keeps the files tidy:
//
//	# Validate every data file; exit status 1 if any file fails
//	conftool lint
//
//	# Validate and keep validating as files change
//	conftool lint --watch
//
//	# Trim values, drop rows without a subject, sort rows
//	conftool format
//
//	# Rebuild conferences.csv from the per-year files, and back
//	conftool merge
//	conftool split
//
//	# Write conferences.json and conferences.ics for the website
//	conftool export
//
// Settings are read from conftool.yaml when present; see --config.
package main

import "os"

func main() {
	os.Exit(Execute())
}
