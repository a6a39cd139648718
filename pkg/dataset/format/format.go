// Package format normalizes data files: values are trimmed, rows without a
// Subject are dropped and the remaining rows are sorted by Start Date, End Date
// and Subject. The header order is kept.
package format

import (
	"bytes"
	"cmp"
	"fmt"
	"os"
	"slices"
	"strings"

	dserrors "github.com/pyconferences/conftool/pkg/dataset/errors"
	"github.com/pyconferences/conftool/pkg/dataset/schema"
	"github.com/pyconferences/conftool/pkg/dataset/table"
)

// Result describes what formatting did, or would do, to one file.
type Result struct {
	Path    string `json:"path"`
	Rows    int    `json:"rows"`
	Dropped int    `json:"dropped"`
	Changed bool   `json:"changed"`
}

// Normalize returns the normalized rows of t. Every row must have exactly one
// value per header column; a row that does not is reported as a row shape error,
// since padding or truncating it would hide the defect from lint.
func Normalize(t *table.Table) (rows [][]string, dropped int, err error) {
	h := t.Header
	for _, required := range []string{schema.FieldSubject, schema.FieldStartDate, schema.FieldEndDate} {
		if !h.Has(required) {
			e := dserrors.Malformed(t.Path, 1, "header has no %q column", required)
			e.Suggestion = dserrors.SuggestField(required, h.Names())
			return nil, 0, e
		}
	}

	subject := h.Index(schema.FieldSubject)
	start := h.Index(schema.FieldStartDate)
	end := h.Index(schema.FieldEndDate)

	rows = make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if len(row.Raw) != h.Len() {
			return nil, 0, &dserrors.Error{
				Kind:     dserrors.KindRowShape,
				Message:  fmt.Sprintf("expected %d fields, got %d; fix the row before formatting", h.Len(), len(row.Raw)),
				Location: dserrors.Location{File: t.Path, Line: row.Line, Row: row.Index},
			}
		}

		values := make([]string, len(row.Raw))
		for i, v := range row.Raw {
			values[i] = strings.TrimSpace(v)
		}
		if values[subject] == "" {
			dropped++
			continue
		}
		rows = append(rows, values)
	}

	slices.SortStableFunc(rows, func(a, b []string) int {
		return cmp.Or(
			cmp.Compare(a[start], b[start]),
			cmp.Compare(a[end], b[end]),
			cmp.Compare(a[subject], b[subject]),
		)
	})
	return rows, dropped, nil
}

// File normalizes the file at path. With check set the file is left untouched and
// the result only reports whether it would change.
func File(path string, check bool) (*Result, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	t, err := table.Read(path)
	if err != nil {
		return nil, err
	}

	rows, dropped, err := Normalize(t)
	if err != nil {
		return nil, err
	}

	formatted, err := table.Encode(t.Header.Names(), rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", path, err)
	}

	res := &Result{
		Path:    path,
		Rows:    len(rows),
		Dropped: dropped,
		Changed: !bytes.Equal(original, formatted),
	}
	if !res.Changed || check {
		return res, nil
	}

	if err := table.Write(path, t.Header.Names(), rows); err != nil {
		return nil, err
	}
	return res, nil
}
