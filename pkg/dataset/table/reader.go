package table

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	dserrors "github.com/pyconferences/conftool/pkg/dataset/errors"
)

const byteOrderMark = "\ufeff"

// Row is one data line of a file.
type Row struct {
	// Index is the 1-based data row number; the header is not counted.
	Index int

	// Line is the source line the row starts on.
	Line int

	// Raw holds the values exactly as split from the line. len(Raw) is the raw
	// field count used for shape checks.
	Raw []string

	// Record is the field-name view of Raw under the file header.
	Record Record
}

// Header returns the header of the file the row came from.
func (r *Row) Header() *Header {
	return r.Record.Header()
}

// Reader yields the rows of one delimited file, once, in file order.
type Reader struct {
	name   string
	csv    *csv.Reader
	closer io.Closer
	header *Header
	rows   int
	err    error
}

// Open opens path and reads its header.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	r, err := NewReader(path, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader reads the header from src. name is used in error locations. A source
// without a header line fails with a malformed error.
func NewReader(name string, src io.Reader) (*Reader, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	// A quote inside an unquoted field is kept as text.
	cr.LazyQuotes = true

	r := &Reader{name: name, csv: cr}

	names, err := cr.Read()
	if err == io.EOF {
		return nil, dserrors.Malformed(name, 0, "file is empty, expected a header row")
	}
	if err != nil {
		return nil, r.decodeError(err)
	}
	if len(names) > 0 {
		names[0] = strings.TrimPrefix(names[0], byteOrderMark)
	}
	if err := r.checkEncoding(names, 1); err != nil {
		return nil, err
	}

	r.header = NewHeader(names)
	return r, nil
}

// Name returns the file name used in error locations.
func (r *Reader) Name() string {
	return r.name
}

// Header returns the file header.
func (r *Reader) Header() *Header {
	return r.header
}

// Next returns the next row, or io.EOF after the last one. Once a decode error has
// been returned every later call returns it again.
func (r *Reader) Next() (*Row, error) {
	if r.err != nil {
		return nil, r.err
	}

	raw, err := r.csv.Read()
	if err == io.EOF {
		r.err = io.EOF
		return nil, io.EOF
	}
	if err != nil {
		r.err = r.decodeError(err)
		return nil, r.err
	}

	line, _ := r.csv.FieldPos(0)
	if err := r.checkEncoding(raw, line); err != nil {
		r.err = err
		return nil, err
	}

	r.rows++
	return &Row{
		Index:  r.rows,
		Line:   line,
		Raw:    raw,
		Record: NewRecord(r.header, raw),
	}, nil
}

// Close releases the underlying file, if the reader opened one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func (r *Reader) checkEncoding(values []string, line int) error {
	for i, v := range values {
		if !utf8.ValidString(v) {
			return dserrors.Malformed(r.name, line, "field %d is not valid UTF-8", i+1)
		}
	}
	return nil
}

func (r *Reader) decodeError(err error) error {
	var parseErr *csv.ParseError
	if stderrors.As(err, &parseErr) {
		return dserrors.Malformed(r.name, parseErr.Line, "cannot decode line: %v", parseErr.Err)
	}
	return dserrors.Malformed(r.name, 0, "cannot read file: %v", err)
}

// Table is a whole file held in memory.
type Table struct {
	Path   string
	Header *Header
	Rows   []*Row
}

// Read loads every row of path.
func Read(path string) (*Table, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	t := &Table{Path: path, Header: r.Header()}
	for {
		row, err := r.Next()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, row)
	}
}
