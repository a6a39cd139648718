package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pyconferences/conftool/pkg/dataset/lint"
)

// OutputFormat represents the output format for lint reports.
type OutputFormat string

const (
	// FormatText is the human-readable report (default).
	FormatText OutputFormat = "text"
	// FormatJSON is a machine-readable report.
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat returns the format named s.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", NewConfigError("format", fmt.Sprintf("unknown output format %q (want text or json)", s))
	}
}

// Formatter writes a run report.
type Formatter interface {
	FormatTo(w io.Writer, report *lint.RunReport) error
}

// NewFormatter creates a formatter for format. runID is included in JSON reports.
func NewFormatter(format OutputFormat, runID string) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true, RunID: runID}
	default:
		return &TextFormatter{}
	}
}

// TextFormatter lists each failing file followed by one line per failure.
// Nothing is written for a passing run.
type TextFormatter struct {
	// ShowContext prints the source lines captured with each failure.
	ShowContext bool
}

type textStyles struct {
	file    lipgloss.Style
	loc     lipgloss.Style
	field   lipgloss.Style
	context lipgloss.Style
	summary lipgloss.Style
}

func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		file:    r.NewStyle().Bold(true),
		loc:     r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		field:   r.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
		context: r.NewStyle().Foreground(lipgloss.Color("#6B7280")).PaddingLeft(4),
		summary: r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
	}
}

// FormatTo writes the text report to w.
func (f *TextFormatter) FormatTo(w io.Writer, report *lint.RunReport) error {
	if report.Passed() {
		return nil
	}
	styles := newTextStyles(w)

	var b strings.Builder
	for _, file := range report.Failing() {
		b.WriteString(styles.file.Render(file.Path))
		b.WriteByte('\n')
		for _, failure := range file.Failures {
			b.WriteString("  ")
			b.WriteString(styles.loc.Render(location(failure)))
			if failure.Field != "" {
				b.WriteByte(' ')
				b.WriteString(styles.field.Render(failure.Field + ":"))
			}
			b.WriteByte(' ')
			b.WriteString(failure.Message())
			b.WriteByte('\n')

			if f.ShowContext && failure.Context != "" {
				b.WriteString(styles.context.Render(strings.TrimRight(failure.Context, "\n")))
				b.WriteByte('\n')
			}
		}
	}

	b.WriteString(styles.summary.Render(summary(report)))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

func location(f lint.Failure) string {
	switch {
	case f.Row > 0 && f.Line > 0:
		return fmt.Sprintf("row %d (line %d)", f.Row, f.Line)
	case f.Row > 0:
		return fmt.Sprintf("row %d", f.Row)
	case f.Line > 0:
		return fmt.Sprintf("line %d", f.Line)
	default:
		return "file"
	}
}

func summary(report *lint.RunReport) string {
	failing := len(report.Failing())
	s := fmt.Sprintf("%s in %d of %d %s",
		plural(report.FailureCount(), "failure", "failures"),
		failing, len(report.Files), pluralWord(len(report.Files), "file", "files"))
	if report.Canceled {
		s += " (run canceled)"
	}
	return s
}

func plural(n int, one, many string) string {
	return fmt.Sprintf("%d %s", n, pluralWord(n, one, many))
}

func pluralWord(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// JSONFormatter writes the report as a JSON document.
type JSONFormatter struct {
	Indent bool
	RunID  string
}

type jsonReport struct {
	RunID      string             `json:"run_id,omitempty"`
	Passed     bool               `json:"passed"`
	Canceled   bool               `json:"canceled,omitempty"`
	Failures   int                `json:"failures"`
	DurationMS int64              `json:"duration_ms"`
	Files      []*lint.FileReport `json:"files"`
}

// FormatTo writes the JSON report to w.
func (f *JSONFormatter) FormatTo(w io.Writer, report *lint.RunReport) error {
	files := report.Files
	if files == nil {
		files = []*lint.FileReport{}
	}
	doc := jsonReport{
		RunID:      f.RunID,
		Passed:     report.Passed(),
		Canceled:   report.Canceled,
		Failures:   report.FailureCount(),
		DurationMS: report.Duration.Milliseconds(),
		Files:      files,
	}

	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(doc)
}
