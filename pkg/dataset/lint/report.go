package lint

import (
	"time"

	dserrors "github.com/pyconferences/conftool/pkg/dataset/errors"
)

// Failure is one rejection recorded against a data file.
type Failure struct {
	// Row is the 1-based data row, 0 for file-level failures.
	Row int `json:"row,omitempty"`

	// Line is the source line the row starts on, 0 if unknown.
	Line int `json:"line,omitempty"`

	// Field is the column the rejection applies to.
	Field string `json:"field,omitempty"`

	// Validator is the rule that rejected the value.
	Validator string `json:"validator,omitempty"`

	Kind       dserrors.Kind `json:"kind"`
	Reason     string        `json:"reason"`
	Suggestion string        `json:"suggestion,omitempty"`

	// Context holds the numbered source lines around Line, when requested.
	Context string `json:"-"`
}

func newFailure(err *dserrors.Error) Failure {
	return Failure{
		Row:        err.Location.Row,
		Line:       err.Location.Line,
		Field:      err.Location.Field,
		Validator:  err.Rule,
		Kind:       err.Kind,
		Reason:     err.Message,
		Suggestion: err.Suggestion,
		Context:    err.Context,
	}
}

// Message returns the one-line reason, with the suggestion appended if any.
func (f Failure) Message() string {
	if f.Suggestion == "" {
		return f.Reason
	}
	return f.Reason + " (" + f.Suggestion + ")"
}

// FileReport accumulates the failures of one data file.
type FileReport struct {
	Path     string        `json:"path"`
	Rows     int           `json:"rows"`
	Failures []Failure     `json:"failures,omitempty"`
	Duration time.Duration `json:"-"`
}

// Passed reports whether the file has no failures.
func (r *FileReport) Passed() bool {
	return len(r.Failures) == 0
}

// Malformed reports whether validation of the file was aborted.
func (r *FileReport) Malformed() bool {
	for _, f := range r.Failures {
		if f.Kind == dserrors.KindMalformed || f.Kind == dserrors.KindConfiguration {
			return true
		}
	}
	return false
}

func (r *FileReport) add(err *dserrors.Error) {
	r.Failures = append(r.Failures, newFailure(err))
}

// RunReport holds the file reports of one run, in path order.
type RunReport struct {
	Files    []*FileReport `json:"files"`
	Duration time.Duration `json:"-"`

	// Canceled is set when the run stopped before every file was checked.
	Canceled bool `json:"canceled,omitempty"`
}

// Passed reports whether every file passed. A canceled run never passes.
func (r *RunReport) Passed() bool {
	if r.Canceled {
		return false
	}
	for _, f := range r.Files {
		if !f.Passed() {
			return false
		}
	}
	return true
}

// Failing returns the reports of files with at least one failure, in path order.
func (r *RunReport) Failing() []*FileReport {
	var failing []*FileReport
	for _, f := range r.Files {
		if !f.Passed() {
			failing = append(failing, f)
		}
	}
	return failing
}

// FailureCount returns the number of failures across all files.
func (r *RunReport) FailureCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Failures)
	}
	return n
}
