// Package merge combines per-year data files into one aggregate file and splits an
// aggregate back into per-year files.
package merge

import (
	"cmp"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	dserrors "github.com/pyconferences/conftool/pkg/dataset/errors"
	"github.com/pyconferences/conftool/pkg/dataset/schema"
	"github.com/pyconferences/conftool/pkg/dataset/table"
)

// MergeResult describes a written aggregate.
type MergeResult struct {
	Path    string   `json:"path"`
	Files   int      `json:"files"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// Merge reads every file in paths, except out itself, and writes their rows to
// out. The columns of out are the union of the input headers in order of first
// appearance; a file without a column contributes empty values for it. Rows are
// sorted by Subject, then Start Date.
func Merge(paths []string, out string) (*MergeResult, error) {
	sorted := slices.Clone(paths)
	slices.Sort(sorted)

	var (
		columns []string
		index   = make(map[string]int)
		tables  []*table.Table
	)

	for _, path := range sorted {
		if filepath.Clean(path) == filepath.Clean(out) {
			continue
		}
		t, err := table.Read(path)
		if err != nil {
			return nil, err
		}
		if err := checkShape(t); err != nil {
			return nil, err
		}
		for _, name := range t.Header.Names() {
			if _, ok := index[name]; !ok {
				index[name] = len(columns)
				columns = append(columns, name)
			}
		}
		tables = append(tables, t)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("no data files to merge into %s", out)
	}
	for _, required := range []string{schema.FieldSubject, schema.FieldStartDate} {
		if _, ok := index[required]; !ok {
			return nil, dserrors.Malformed(out, 0, "no input file has a %q column", required)
		}
	}

	var rows [][]string
	for _, t := range tables {
		names := t.Header.Names()
		for _, row := range t.Rows {
			values := make([]string, len(columns))
			for i, name := range names {
				values[index[name]] = row.Raw[i]
			}
			rows = append(rows, values)
		}
	}

	subject, start := index[schema.FieldSubject], index[schema.FieldStartDate]
	slices.SortStableFunc(rows, func(a, b []string) int {
		return cmp.Or(
			cmp.Compare(a[subject], b[subject]),
			cmp.Compare(a[start], b[start]),
		)
	})

	if err := table.Write(out, columns, rows); err != nil {
		return nil, err
	}
	return &MergeResult{Path: out, Files: len(tables), Rows: len(rows), Columns: columns}, nil
}

// SplitResult describes the per-year files written by Split.
type SplitResult struct {
	// Years maps each year to the file written for it.
	Years map[string]string `json:"years"`

	Rows    int `json:"rows"`
	Dropped int `json:"dropped"`
}

// Split partitions the aggregate file into one file per year under dir, named
// <year>.csv. The year is the leading four digits of Start Date. Rows without a
// Subject are dropped, trailing slashes are stripped from every value, and each
// year's rows are sorted by Start Date, End Date and Subject.
func Split(aggregate, dir string) (*SplitResult, error) {
	t, err := table.Read(aggregate)
	if err != nil {
		return nil, err
	}
	if err := checkShape(t); err != nil {
		return nil, err
	}

	h := t.Header
	for _, required := range []string{schema.FieldSubject, schema.FieldStartDate, schema.FieldEndDate} {
		if !h.Has(required) {
			e := dserrors.Malformed(aggregate, 1, "header has no %q column", required)
			e.Suggestion = dserrors.SuggestField(required, h.Names())
			return nil, e
		}
	}
	subject := h.Index(schema.FieldSubject)
	start := h.Index(schema.FieldStartDate)
	end := h.Index(schema.FieldEndDate)

	res := &SplitResult{Years: make(map[string]string)}
	byYear := make(map[string][][]string)

	for _, row := range t.Rows {
		if strings.TrimSpace(row.Raw[subject]) == "" {
			res.Dropped++
			continue
		}

		year, ok := leadingYear(row.Raw[start])
		if !ok {
			return nil, &dserrors.Error{
				Kind:    dserrors.KindField,
				Message: fmt.Sprintf("cannot take a year from Start Date %q", row.Raw[start]),
				Location: dserrors.Location{
					File:  aggregate,
					Line:  row.Line,
					Row:   row.Index,
					Field: schema.FieldStartDate,
				},
			}
		}

		values := make([]string, len(row.Raw))
		for i, v := range row.Raw {
			values[i] = strings.TrimRight(v, "/")
		}
		byYear[year] = append(byYear[year], values)
		res.Rows++
	}

	for _, year := range slices.Sorted(maps.Keys(byYear)) {
		rows := byYear[year]
		slices.SortStableFunc(rows, func(a, b []string) int {
			return cmp.Or(
				cmp.Compare(a[start], b[start]),
				cmp.Compare(a[end], b[end]),
				cmp.Compare(a[subject], b[subject]),
			)
		})

		path := filepath.Join(dir, year+".csv")
		if err := table.Write(path, h.Names(), rows); err != nil {
			return nil, err
		}
		res.Years[year] = path
	}

	return res, nil
}

// leadingYear returns the first four characters of s when they are digits.
func leadingYear(s string) (string, bool) {
	if len(s) < 4 {
		return "", false
	}
	for _, c := range s[:4] {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	return s[:4], true
}

func checkShape(t *table.Table) error {
	for _, row := range t.Rows {
		if len(row.Raw) != t.Header.Len() {
			return &dserrors.Error{
				Kind:     dserrors.KindRowShape,
				Message:  fmt.Sprintf("expected %d fields, got %d", t.Header.Len(), len(row.Raw)),
				Location: dserrors.Location{File: t.Path, Line: row.Line, Row: row.Index},
			}
		}
	}
	return nil
}
