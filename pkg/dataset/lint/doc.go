// Package lint runs a schema over data files and collects every rejection.
//
// A Runner reads each file once, applies every validator of every schema column
// to every row, and appends each rejection to the file's report. Rejections are
// values, never control flow: a failing row does not stop the file, and a failing
// file does not stop the run. Only a file that cannot be decoded, or whose header
// lacks a schema column, is cut short, and then only that file.
//
// Files are processed one at a time in lexicographic path order, so that two runs
// over the same data produce identical reports.
//
//	runner := lint.NewRunner(schema.Conferences(), lint.WithLogger(logger.Slog()))
//	report := runner.Run(ctx, paths)
//	if !report.Passed() {
//		for _, file := range report.Failing() {
//			...
//		}
//	}
package lint
