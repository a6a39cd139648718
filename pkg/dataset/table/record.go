package table

import "strings"

// Value is one field of a Record. Present is false when the row ended before the
// field's column.
type Value struct {
	Text    string
	Present bool
}

// IsBlank reports whether the value is absent or only whitespace.
func (v Value) IsBlank() bool {
	return !v.Present || strings.TrimSpace(v.Text) == ""
}

// Header is the ordered list of column names of a file.
type Header struct {
	names []string
	index map[string]int
}

// NewHeader builds a Header. When a name repeats, lookups resolve to its last column.
func NewHeader(names []string) *Header {
	h := &Header{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
	}
	for i, name := range h.names {
		h.index[name] = i
	}
	return h
}

// Names returns a copy of the column names in order.
func (h *Header) Names() []string {
	return append([]string(nil), h.names...)
}

// Len returns the number of declared columns.
func (h *Header) Len() int {
	return len(h.names)
}

// Has reports whether the header declares the column.
func (h *Header) Has(name string) bool {
	_, ok := h.index[name]
	return ok
}

// Index returns the position of the column, or -1.
func (h *Header) Index(name string) int {
	if i, ok := h.index[name]; ok {
		return i
	}
	return -1
}

// Record is the ordered field-name to value view of one row.
type Record struct {
	header *Header
	raw    []string
}

// NewRecord builds a Record for raw values under header.
func NewRecord(header *Header, raw []string) Record {
	return Record{header: header, raw: raw}
}

// Get returns the value of the named column. Columns the header does not declare, and
// columns past the end of a short row, are returned with Present set to false.
func (r Record) Get(name string) Value {
	i := r.header.Index(name)
	if i < 0 || i >= len(r.raw) {
		return Value{}
	}
	return Value{Text: r.raw[i], Present: true}
}

// String returns the named value, or "" when absent.
func (r Record) String(name string) string {
	return r.Get(name).Text
}

// Header returns the header the record was read under.
func (r Record) Header() *Header {
	return r.header
}

// Overflow returns the values beyond the last declared column.
func (r Record) Overflow() []string {
	if len(r.raw) <= r.header.Len() {
		return nil
	}
	return append([]string(nil), r.raw[r.header.Len():]...)
}

// Missing returns the declared columns the row did not reach, in header order.
func (r Record) Missing() []string {
	if len(r.raw) >= r.header.Len() {
		return nil
	}
	return r.header.Names()[len(r.raw):]
}

// Present returns the number of declared columns that carry a value.
func (r Record) Present() int {
	return min(len(r.raw), r.header.Len())
}

// Values returns the declared columns' values in header order, absent ones as "".
func (r Record) Values() []string {
	values := make([]string, r.header.Len())
	copy(values, r.raw)
	return values
}
