package lint

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"slices"
	"time"

	dserrors "github.com/pyconferences/conftool/pkg/dataset/errors"
	"github.com/pyconferences/conftool/pkg/dataset/schema"
	"github.com/pyconferences/conftool/pkg/dataset/table"
	"github.com/pyconferences/conftool/pkg/telemetry/logging"
	"github.com/pyconferences/conftool/pkg/telemetry/metrics"
)

// Recorder receives lint measurements. *metrics.Collector implements it.
type Recorder interface {
	RecordFile(result string, rows int, duration time.Duration)
	RecordFailure(field, validator string)
	RecordRun(files int, passed bool, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordFile(string, int, time.Duration) {}
func (nopRecorder) RecordFailure(string, string)          {}
func (nopRecorder) RecordRun(int, bool, time.Duration)    {}

// Runner validates data files against a schema.
type Runner struct {
	schema       *schema.Schema
	logger       *slog.Logger
	recorder     Recorder
	contextLines int
	now          func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for progress and diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorder sets where measurements are sent.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithContextLines attaches n source lines on each side of every failure.
func WithContextLines(n int) Option {
	return func(r *Runner) {
		r.contextLines = n
	}
}

// NewRunner returns a Runner for s. s is expected to have passed Validate.
func NewRunner(s *schema.Schema, opts ...Option) *Runner {
	r := &Runner{
		schema:   s,
		logger:   slog.New(slog.DiscardHandler),
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ValidateFile checks every row of path against every column of the schema and
// returns all rejections. A file that cannot be opened or decoded gets a single
// malformed failure and the rows after the decode error are not checked.
func (r *Runner) ValidateFile(path string) *FileReport {
	return r.validateFile(logging.WithFile(context.Background(), path), path)
}

func (r *Runner) validateFile(ctx context.Context, path string) *FileReport {
	start := r.now()
	report := &FileReport{Path: path}
	result := metrics.ResultFail

	defer func() {
		report.Duration = r.now().Sub(start)
		if report.Passed() {
			result = metrics.ResultPass
		}
		r.recorder.RecordFile(result, report.Rows, report.Duration)
		for _, f := range report.Failures {
			r.recorder.RecordFailure(f.Field, failureLabel(f))
		}
	}()

	rd, err := table.Open(path)
	if err != nil {
		result = metrics.ResultMalformed
		r.addMalformed(ctx, report, path, err)
		return report
	}
	defer rd.Close()

	if r.checkHeader(ctx, report, path, rd.Header()) {
		result = metrics.ResultMalformed
		return report
	}

	for {
		row, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			result = metrics.ResultMalformed
			r.addMalformed(ctx, report, path, err)
			break
		}
		report.Rows++
		r.validateRow(report, path, row)
	}

	r.logger.DebugContext(ctx, "File validated",
		"rows", report.Rows,
		"failures", len(report.Failures))
	return report
}

func (r *Runner) validateRow(report *FileReport, path string, row *table.Row) {
	for _, col := range r.schema.Columns {
		for _, v := range col.Validators {
			e := v.Validate(col.Field, row)
			if e == nil {
				continue
			}
			e.Location.File = path
			if r.contextLines > 0 {
				dserrors.WithContext(e, r.contextLines)
			}
			report.add(e)
		}
	}
}

func (r *Runner) addMalformed(ctx context.Context, report *FileReport, path string, err error) {
	var dsErr *dserrors.Error
	if !stderrors.As(err, &dsErr) {
		dsErr = dserrors.Malformed(path, 0, "%v", err)
	}
	if dsErr.Location.File == "" {
		dsErr.Location.File = path
	}
	report.add(dsErr)
	r.logger.WarnContext(ctx, "File aborted", "error", dsErr.Message)
}

// checkHeader records a configuration failure for every schema column the header
// lacks and every header column the schema does not declare. It reports whether
// any was found, in which case the rows cannot be checked.
func (r *Runner) checkHeader(ctx context.Context, report *FileReport, path string, h *table.Header) bool {
	missing := r.missingColumns(h)
	for _, field := range missing {
		e := dserrors.Configuration(field, "column is missing from the header")
		e.Location.File = path
		e.Location.Line = 1
		e.Suggestion = dserrors.SuggestField(field, h.Names())
		report.add(e)
	}

	unexpected := r.unexpectedColumns(h)
	for _, name := range unexpected {
		e := dserrors.Configuration(name, "column is not declared by the schema")
		e.Location.File = path
		e.Location.Line = 1
		e.Suggestion = dserrors.SuggestField(name, r.schema.Fields())
		report.add(e)
	}

	if len(missing) == 0 && len(unexpected) == 0 {
		return false
	}
	r.logger.WarnContext(ctx, "Header does not match the schema",
		"missing", missing,
		"unexpected", unexpected)
	return true
}

func (r *Runner) missingColumns(h *table.Header) []string {
	var missing []string
	for _, field := range r.schema.Fields() {
		if !h.Has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

func (r *Runner) unexpectedColumns(h *table.Header) []string {
	declared := make(map[string]bool, len(r.schema.Columns))
	for _, field := range r.schema.Fields() {
		declared[field] = true
	}
	var unexpected []string
	for _, name := range h.Names() {
		if !declared[name] && !slices.Contains(unexpected, name) {
			unexpected = append(unexpected, name)
		}
	}
	return unexpected
}

// Run validates every file in paths, in lexicographic order, and never stops at a
// failing file. ctx is checked between files; a canceled run reports the files
// done so far and is marked Canceled.
func (r *Runner) Run(ctx context.Context, paths []string) *RunReport {
	start := r.now()
	sorted := slices.Clone(paths)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	report := &RunReport{Files: make([]*FileReport, 0, len(sorted))}

	for _, path := range sorted {
		if ctx.Err() != nil {
			report.Canceled = true
			r.logger.WarnContext(ctx, "Run canceled",
				"checked", len(report.Files),
				"remaining", len(sorted)-len(report.Files))
			break
		}

		fileCtx := logging.WithFile(ctx, path)
		report.Files = append(report.Files, r.validateFile(fileCtx, path))
	}

	report.Duration = r.now().Sub(start)
	r.recorder.RecordRun(len(report.Files), report.Passed(), report.Duration)
	r.logger.InfoContext(ctx, "Run finished",
		"files", len(report.Files),
		"failing", len(report.Failing()),
		"failures", report.FailureCount(),
		"duration", report.Duration)
	return report
}

// failureLabel is the validator label used for metrics. File-level failures have
// no validator and are labelled by kind.
func failureLabel(f Failure) string {
	if f.Validator != "" {
		return f.Validator
	}
	return string(f.Kind)
}
