package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	dserrors "github.com/pyconferences/conftool/pkg/dataset/errors"
	"github.com/pyconferences/conftool/pkg/dataset/schema"
	"github.com/pyconferences/conftool/pkg/dataset/validator"
)

const header = "Subject,Start Date,End Date,Country\n"

// scenarioSchema is the four-column schema used by the end-to-end scenarios.
func scenarioSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.FromSpec([]schema.ColumnSpec{
		{Field: "Subject", Rules: []validator.RuleSpec{{Rule: validator.RuleNotEmpty}, {Rule: validator.RuleRowShape}}},
		{Field: "Start Date", Rules: []validator.RuleSpec{{Rule: validator.RuleIsoDate}}},
		{Field: "End Date", Rules: []validator.RuleSpec{{Rule: validator.RuleIsoDate}}},
		{Field: "Country", Rules: []validator.RuleSpec{{Rule: validator.RuleInSet, Set: validator.SetISO3166Alpha3}}},
	})
	if err != nil {
		t.Fatalf("FromSpec() error = %v", err)
	}
	return s
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name          string
		row           string
		wantPass      bool
		wantField     string
		wantValidator string
		wantReason    string
	}{
		{
			name:     "A well-formed row",
			row:      "PyCon,2024-05-01,2024-05-03,USA\n",
			wantPass: true,
		},
		{
			name:          "B overflow",
			row:           "PyCon,2024-05-01,2024-05-03,USA,Extra\n",
			wantField:     "Subject",
			wantValidator: validator.RuleRowShape,
			wantReason:    "expected 4 fields, got 5",
		},
		{
			name:          "C empty subject",
			row:           ",2024-05-01,2024-05-03,USA\n",
			wantField:     "Subject",
			wantValidator: validator.RuleNotEmpty,
			wantReason:    "value must not be empty",
		},
		{
			name:          "D unknown country",
			row:           "PyCon,2024-05-01,2024-05-03,ZZZ\n",
			wantField:     "Country",
			wantValidator: validator.RuleInSet,
			wantReason:    `"ZZZ" is not a valid`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "2024.csv", header+tt.row)
			report := NewRunner(scenarioSchema(t)).ValidateFile(path)

			if report.Passed() != tt.wantPass {
				t.Fatalf("Passed() = %v, want %v; failures: %+v", report.Passed(), tt.wantPass, report.Failures)
			}
			if report.Rows != 1 {
				t.Errorf("Rows = %d, want 1", report.Rows)
			}
			if tt.wantPass {
				if len(report.Failures) != 0 {
					t.Errorf("expected empty report, got %+v", report.Failures)
				}
				return
			}

			if len(report.Failures) != 1 {
				t.Fatalf("expected exactly one failure, got %+v", report.Failures)
			}
			f := report.Failures[0]
			if f.Field != tt.wantField || f.Validator != tt.wantValidator {
				t.Errorf("failure on %s/%s, want %s/%s", f.Field, f.Validator, tt.wantField, tt.wantValidator)
			}
			if !strings.Contains(f.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want it to contain %q", f.Reason, tt.wantReason)
			}
			if f.Row != 1 || f.Line != 2 {
				t.Errorf("failure at row %d line %d, want row 1 line 2", f.Row, f.Line)
			}
		})
	}
}

func TestRowShapeCounts(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		reason string
	}{
		{"one extra", "PyCon,2024-05-01,2024-05-03,USA,x\n", "expected 4 fields, got 5"},
		{"three extra", "PyCon,2024-05-01,2024-05-03,USA,x,y,z\n", "expected 4 fields, got 7"},
		{"one missing", "PyCon,2024-05-01,2024-05-03\n", "expected 4 fields, got 3"},
		{"three missing", "PyCon\n", "expected 4 fields, got 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "2024.csv", header+tt.row)
			report := NewRunner(scenarioSchema(t)).ValidateFile(path)

			var shape []Failure
			for _, f := range report.Failures {
				if f.Kind == dserrors.KindRowShape {
					shape = append(shape, f)
				}
			}
			if len(shape) != 1 {
				t.Fatalf("expected one row shape failure, got %+v", report.Failures)
			}
			if shape[0].Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", shape[0].Reason, tt.reason)
			}
		})
	}
}

func TestShortRowReportsAbsentFields(t *testing.T) {
	path := writeFile(t, t.TempDir(), "2024.csv", header+"PyCon,2024-05-01\n")
	report := NewRunner(scenarioSchema(t)).ValidateFile(path)

	got := make([]string, 0, len(report.Failures))
	for _, f := range report.Failures {
		got = append(got, f.Field+"/"+f.Validator)
	}
	want := []string{"Subject/row_shape", "End Date/iso_date", "Country/in_set"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("failures = %v, want %v", got, want)
	}
}

func TestEveryFailureIsCollected(t *testing.T) {
	content := header +
		",2024-05-01,2024-05-03,USA\n" +
		"PyCon,2024-13-01,2024-05-03,ZZZ\n" +
		"PyCon,2024-05-01,2024-05-03,USA\n" +
		"PyCon,2024-05-01,2024-02-30,USA,x\n"
	path := writeFile(t, t.TempDir(), "2024.csv", content)
	report := NewRunner(scenarioSchema(t)).ValidateFile(path)

	if report.Rows != 4 {
		t.Errorf("Rows = %d, want 4", report.Rows)
	}

	type key struct {
		row   int
		field string
	}
	var got []key
	for _, f := range report.Failures {
		got = append(got, key{f.Row, f.Field})
	}
	want := []key{
		{1, "Subject"},
		{2, "Start Date"},
		{2, "Country"},
		{4, "Subject"},
		{4, "End Date"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("failures = %v, want %v", got, want)
	}
}

func TestMalformedFiles(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantRows int
		wantLine int
	}{
		{"empty file", "", 0, 0},
		{"invalid UTF-8", header + "Py\xffCon,2024-05-01,2024-05-03,USA\n", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "2024.csv", tt.content)
			report := NewRunner(scenarioSchema(t)).ValidateFile(path)

			if report.Passed() || !report.Malformed() {
				t.Fatalf("expected a malformed report, got %+v", report)
			}
			last := report.Failures[len(report.Failures)-1]
			if last.Kind != dserrors.KindMalformed {
				t.Errorf("Kind = %s, want malformed", last.Kind)
			}
			if last.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", last.Line, tt.wantLine)
			}
			if report.Rows != tt.wantRows {
				t.Errorf("Rows = %d, want %d", report.Rows, tt.wantRows)
			}
		})
	}
}

func TestMissingFile(t *testing.T) {
	report := NewRunner(scenarioSchema(t)).ValidateFile(filepath.Join(t.TempDir(), "nope.csv"))
	if len(report.Failures) != 1 || report.Failures[0].Kind != dserrors.KindMalformed {
		t.Errorf("expected a single malformed failure, got %+v", report.Failures)
	}
}

func TestMissingHeaderColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "2024.csv",
		"Subject,Start date,End Date\nPyCon,2024-05-01,2024-05-03\n")
	report := NewRunner(scenarioSchema(t)).ValidateFile(path)

	if len(report.Failures) != 3 {
		t.Fatalf("expected two missing columns and one unexpected, got %+v", report.Failures)
	}
	first := report.Failures[0]
	if first.Kind != dserrors.KindConfiguration || first.Field != "Start Date" {
		t.Errorf("unexpected failure %+v", first)
	}
	if first.Suggestion != "Did you mean 'Start date'?" {
		t.Errorf("Suggestion = %q", first.Suggestion)
	}
	if report.Failures[1].Field != "Country" {
		t.Errorf("second failure on %q, want Country", report.Failures[1].Field)
	}
	if third := report.Failures[2]; third.Field != "Start date" || third.Suggestion != "Did you mean 'Start Date'?" {
		t.Errorf("third failure = %+v, want undeclared Start date", third)
	}
	if report.Rows != 0 {
		t.Errorf("rows were validated despite the header mismatch")
	}
}

func TestUnexpectedHeaderColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "2024.csv",
		"Subject,Start Date,End Date,Country,Notes\nPyCon,2024-05-01,2024-05-03,USA,hello\n")
	report := NewRunner(scenarioSchema(t)).ValidateFile(path)

	if report.Passed() {
		t.Fatal("expected the undeclared column to fail the file")
	}
	if len(report.Failures) != 1 {
		t.Fatalf("expected one failure, got %+v", report.Failures)
	}
	f := report.Failures[0]
	if f.Kind != dserrors.KindConfiguration || f.Field != "Notes" || f.Line != 1 {
		t.Errorf("failure = %+v, want a configuration failure on Notes at line 1", f)
	}
	if !strings.Contains(f.Message(), "not declared") {
		t.Errorf("Message() = %q", f.Message())
	}
}

func TestBareQuoteDoesNotStopFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "2024.csv", header+
		"PyCon 5\" Edition,2024-05-01,2024-05-03,USA\n"+
		",2024-13-01,2024-05-03,ZZZ\n")
	report := NewRunner(scenarioSchema(t)).ValidateFile(path)

	if report.Malformed() {
		t.Fatalf("bare quote made the file malformed: %+v", report.Failures)
	}
	if report.Rows != 2 {
		t.Errorf("Rows = %d, want 2", report.Rows)
	}

	var got []string
	for _, f := range report.Failures {
		got = append(got, fmt.Sprintf("%d:%s:%s", f.Row, f.Field, f.Validator))
	}
	want := []string{
		"2:Subject:" + validator.RuleNotEmpty,
		"2:Start Date:" + validator.RuleIsoDate,
		"2:Country:" + validator.RuleInSet,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("failures = %v, want %v", got, want)
	}
}

func TestContextLines(t *testing.T) {
	path := writeFile(t, t.TempDir(), "2024.csv",
		header+"PyCon,2024-05-01,2024-05-03,USA\n,2024-05-01,2024-05-03,USA\n")
	report := NewRunner(scenarioSchema(t), WithContextLines(1)).ValidateFile(path)

	if len(report.Failures) != 1 {
		t.Fatalf("expected one failure, got %+v", report.Failures)
	}
	ctx := report.Failures[0].Context
	if !strings.Contains(ctx, "-> 3 | ,2024-05-01") || !strings.Contains(ctx, "   2 | PyCon") {
		t.Errorf("unexpected context:\n%s", ctx)
	}
}

func TestRunOrderAndNoShortCircuit(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "2023.csv", header+"PyCon,2023-05-01,2023-05-03,USA\n")
	bad := writeFile(t, dir, "2024.csv", header+",2024-05-01,2024-05-03,USA\n")
	broken := writeFile(t, dir, "2025.csv", "")
	alsoBad := writeFile(t, dir, "2022.csv", header+"PyCon,2022-05-01,2022-05-03,ZZZ\n")

	report := NewRunner(scenarioSchema(t)).Run(context.Background(), []string{broken, bad, good, alsoBad, good})

	var order []string
	for _, f := range report.Files {
		order = append(order, filepath.Base(f.Path))
	}
	if want := []string{"2022.csv", "2023.csv", "2024.csv", "2025.csv"}; !reflect.DeepEqual(order, want) {
		t.Errorf("file order = %v, want %v", order, want)
	}

	if report.Passed() {
		t.Error("run passed despite failing files")
	}
	var failing []string
	for _, f := range report.Failing() {
		failing = append(failing, filepath.Base(f.Path))
	}
	if want := []string{"2022.csv", "2024.csv", "2025.csv"}; !reflect.DeepEqual(failing, want) {
		t.Errorf("Failing() = %v, want %v", failing, want)
	}
	if report.FailureCount() != 3 {
		t.Errorf("FailureCount() = %d, want 3", report.FailureCount())
	}
}

func TestRunPasses(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "2023.csv", header+"PyCon,2023-05-01,2023-05-03,USA\n")
	b := writeFile(t, dir, "2024.csv", header+"EuroPython,2024-07-08,2024-07-14,CZE\n")

	report := NewRunner(scenarioSchema(t)).Run(context.Background(), []string{a, b})
	if !report.Passed() || len(report.Failing()) != 0 {
		t.Errorf("expected a passing run, got %+v", report.Failing())
	}
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "2024.csv", header+",2024-05-01,2024-05-03,USA\nPyCon,2024-5-1,x,ZZ,extra\n"),
		writeFile(t, dir, "2023.csv", header+"PyCon\n"),
	}
	runner := NewRunner(scenarioSchema(t))

	first := runner.Run(context.Background(), paths)
	second := runner.Run(context.Background(), paths)

	if len(first.Files) != len(second.Files) {
		t.Fatalf("file counts differ: %d vs %d", len(first.Files), len(second.Files))
	}
	for i := range first.Files {
		if !reflect.DeepEqual(first.Files[i].Failures, second.Files[i].Failures) {
			t.Errorf("reports for %s differ:\n%+v\n%+v",
				first.Files[i].Path, first.Files[i].Failures, second.Files[i].Failures)
		}
	}
}

func TestRunCanceled(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "2023.csv", header+"PyCon,2023-05-01,2023-05-03,USA\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := NewRunner(scenarioSchema(t)).Run(ctx, []string{a})
	if !report.Canceled || len(report.Files) != 0 {
		t.Errorf("expected a canceled run with no files, got %+v", report)
	}
	if report.Passed() {
		t.Error("a canceled run must not pass")
	}
}

type fakeRecorder struct {
	files    map[string]int
	rows     int
	failures map[string]int
	runs     int
	passed   bool
}

func (f *fakeRecorder) RecordFile(result string, rows int, _ time.Duration) {
	f.files[result]++
	f.rows += rows
}

func (f *fakeRecorder) RecordFailure(field, validator string) {
	f.failures[field+"/"+validator]++
}

func (f *fakeRecorder) RecordRun(_ int, passed bool, _ time.Duration) {
	f.runs++
	f.passed = passed
}

func TestRunRecordsMetrics(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "2023.csv", header+"PyCon,2023-05-01,2023-05-03,USA\nPyCon,2023-06-01,2023-06-03,FRA\n"),
		writeFile(t, dir, "2024.csv", header+",2024-05-01,2024-05-03,ZZZ\n"),
		writeFile(t, dir, "2025.csv", ""),
	}
	rec := &fakeRecorder{files: map[string]int{}, failures: map[string]int{}}

	NewRunner(scenarioSchema(t), WithRecorder(rec)).Run(context.Background(), paths)

	if rec.files["pass"] != 1 || rec.files["fail"] != 1 || rec.files["malformed"] != 1 {
		t.Errorf("files = %v", rec.files)
	}
	if rec.rows != 3 {
		t.Errorf("rows = %d, want 3", rec.rows)
	}
	want := map[string]int{"Subject/not_empty": 1, "Country/in_set": 1, "/malformed": 1}
	if !reflect.DeepEqual(rec.failures, want) {
		t.Errorf("failures = %v, want %v", rec.failures, want)
	}
	if rec.runs != 1 || rec.passed {
		t.Errorf("runs = %d passed = %v", rec.runs, rec.passed)
	}
}

func TestConferenceSchemaOnFullFile(t *testing.T) {
	content := "Subject,Start Date,End Date,Location,Country,Venue,Tutorial Deadline,Talk Deadline,Website URL,Proposal URL,Sponsorship URL\n" +
		"PyCon US,2024-05-15,2024-05-23,Pittsburgh,USA,David L. Lawrence Convention Center,,2023-12-18,https://us.pycon.org/2024/,,\n" +
		"\"PyCon APAC, Japan\",2024-10-27,2024-10-28,Tokyo,JPN,,,2024-07-15,https://apac.pycon.org,,\n"
	path := writeFile(t, t.TempDir(), "2024.csv", content)

	report := NewRunner(schema.Conferences()).ValidateFile(path)
	if !report.Passed() {
		t.Errorf("expected pass, got %+v", report.Failures)
	}
	if report.Rows != 2 {
		t.Errorf("Rows = %d, want 2", report.Rows)
	}
}
