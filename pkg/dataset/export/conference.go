package export

import (
	"bytes"
	"cmp"
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pyconferences/conftool/pkg/dataset/schema"
	"github.com/pyconferences/conftool/pkg/dataset/table"
)

// FieldYear is the field added to conferences read from a file named after a year.
const FieldYear = "year"

// Field is one named value of a conference.
type Field struct {
	Name  string
	Value string
}

// Conference is one exported record. Fields keep the order of the source header,
// followed by year when known.
type Conference struct {
	Fields []Field
}

// Get returns the value of the named field, or "".
func (c Conference) Get(name string) string {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// MarshalJSON encodes the conference as an object with keys in field order.
func (c Conference) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range c.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, f.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Load reads the conferences of every file in paths, in lexicographic order.
// Values are trimmed. Rows whose values are all empty, and rows with neither a
// Subject nor a Start Date, are skipped. The result is sorted by Start Date, then
// Subject.
func Load(paths []string) ([]Conference, error) {
	sorted := slices.Clone(paths)
	slices.Sort(sorted)

	confs := make([]Conference, 0)
	for _, path := range sorted {
		t, err := table.Read(path)
		if err != nil {
			return nil, err
		}
		year, hasYear := yearFromFileName(path)
		names := t.Header.Names()

		for _, row := range t.Rows {
			values := row.Record.Values()
			if !slices.ContainsFunc(values, func(v string) bool { return v != "" }) {
				continue
			}
			if row.Record.String(schema.FieldSubject) == "" && row.Record.String(schema.FieldStartDate) == "" {
				continue
			}

			c := Conference{Fields: make([]Field, 0, len(names)+1)}
			for i, name := range names {
				c.Fields = append(c.Fields, Field{Name: name, Value: strings.TrimSpace(values[i])})
			}
			if hasYear {
				c.Fields = append(c.Fields, Field{Name: FieldYear, Value: year})
			}
			confs = append(confs, c)
		}
	}

	slices.SortStableFunc(confs, func(a, b Conference) int {
		return cmp.Or(
			cmp.Compare(a.Get(schema.FieldStartDate), b.Get(schema.FieldStartDate)),
			cmp.Compare(a.Get(schema.FieldSubject), b.Get(schema.FieldSubject)),
		)
	})
	return confs, nil
}

// yearFromFileName returns the base name of path without its extension when it
// is four digits, e.g. "2024" for "data/2024.csv".
func yearFromFileName(path string) (string, bool) {
	base := filepath.Base(path)
	name := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if len(name) != 4 {
		return "", false
	}
	for _, c := range name {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	return name, true
}
