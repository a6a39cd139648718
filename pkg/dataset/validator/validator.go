package validator

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	dserrors "github.com/pyconferences/conftool/pkg/dataset/errors"
	"github.com/pyconferences/conftool/pkg/dataset/table"
)

// Rule names used in configuration and reports.
const (
	RuleNotEmpty = "not_empty"
	RuleIsoDate  = "iso_date"
	RuleInSet    = "in_set"
	RuleIgnore   = "ignore"
	RuleRowShape = "row_shape"
)

// isoDateLayout is the only accepted date form.
const isoDateLayout = "2006-01-02"

const missingMessage = "field is missing from the row"

// Validator checks one field of a row.
type Validator interface {
	// Name returns the rule name reported with rejections.
	Name() string

	// Validate returns nil when the field is accepted.
	Validate(field string, row *table.Row) *dserrors.Error
}

// RowScoped marks validators that check the whole row rather than one field. They
// are registered on a single column so that they run once per row.
type RowScoped interface {
	Validator
	rowScoped()
}

func reject(rule, field string, row *table.Row, format string, args ...any) *dserrors.Error {
	return &dserrors.Error{
		Kind:    dserrors.KindField,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
		Location: dserrors.Location{
			Line:  row.Line,
			Row:   row.Index,
			Field: field,
		},
	}
}

// NotEmpty rejects values that are blank after trimming, or absent.
type NotEmpty struct{}

func (NotEmpty) Name() string { return RuleNotEmpty }

func (NotEmpty) Validate(field string, row *table.Row) *dserrors.Error {
	v := row.Record.Get(field)
	if !v.Present {
		return reject(RuleNotEmpty, field, row, missingMessage)
	}
	if v.IsBlank() {
		return reject(RuleNotEmpty, field, row, "value must not be empty")
	}
	return nil
}

// IsoDate accepts YYYY-MM-DD dates that exist on the calendar.
type IsoDate struct {
	AllowEmpty bool
}

func (IsoDate) Name() string { return RuleIsoDate }

func (d IsoDate) Validate(field string, row *table.Row) *dserrors.Error {
	v := row.Record.Get(field)
	if !v.Present {
		return reject(RuleIsoDate, field, row, missingMessage)
	}
	if v.Text == "" {
		if d.AllowEmpty {
			return nil
		}
		return reject(RuleIsoDate, field, row, "value must be a YYYY-MM-DD date, got an empty string")
	}
	if !IsISODate(v.Text) {
		return reject(RuleIsoDate, field, row, "%q is not a valid YYYY-MM-DD date", v.Text)
	}
	return nil
}

// IsISODate reports whether s is exactly a YYYY-MM-DD calendar date.
func IsISODate(s string) bool {
	if len(s) != len(isoDateLayout) {
		return false
	}
	_, err := time.Parse(isoDateLayout, s)
	return err == nil
}

// InSet accepts values that are members of a fixed reference set.
type InSet struct {
	// SetName names the set in rejection messages, e.g. "ISO 3166-1 alpha-3 code".
	SetName string

	// Members is the reference set. Matching is exact and case-sensitive.
	Members map[string]struct{}

	AllowEmpty bool

	sorted []string
}

// NewInSet builds an InSet over members.
func NewInSet(setName string, members []string, allowEmpty bool) *InSet {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return &InSet{
		SetName:    setName,
		Members:    set,
		AllowEmpty: allowEmpty,
		sorted:     slices.Sorted(maps.Keys(set)),
	}
}

func (*InSet) Name() string { return RuleInSet }

func (s *InSet) Validate(field string, row *table.Row) *dserrors.Error {
	v := row.Record.Get(field)
	if !v.Present {
		return reject(RuleInSet, field, row, missingMessage)
	}
	if v.Text == "" && s.AllowEmpty {
		return nil
	}
	if _, ok := s.Members[v.Text]; ok {
		return nil
	}

	setName := s.SetName
	if setName == "" {
		setName = "allowed value"
	}
	err := reject(RuleInSet, field, row, "%q is not a valid %s", v.Text, setName)
	if s.sorted == nil {
		s.sorted = slices.Sorted(maps.Keys(s.Members))
	}
	err.Suggestion = dserrors.SuggestValue(v.Text, s.sorted)
	return err
}

// Ignore accepts every value. It documents that a column is unchecked while still
// listing it in the schema.
type Ignore struct{}

func (Ignore) Name() string { return RuleIgnore }

func (Ignore) Validate(string, *table.Row) *dserrors.Error { return nil }

// RowShape rejects rows whose raw field count differs from the header length.
// For long rows the reported count is the raw count; for short rows it is the
// number of values present.
type RowShape struct{}

func (RowShape) Name() string { return RuleRowShape }

func (RowShape) rowScoped() {}

func (RowShape) Validate(field string, row *table.Row) *dserrors.Error {
	expected := row.Header().Len()
	got := len(row.Raw)
	if got == expected {
		return nil
	}
	if got < expected {
		got = row.Record.Present()
	}

	err := reject(RuleRowShape, field, row, "expected %d fields, got %d", expected, got)
	err.Kind = dserrors.KindRowShape
	if overflow := row.Record.Overflow(); len(overflow) > 0 {
		err.Suggestion = fmt.Sprintf("unexpected trailing values %q; quote values that contain commas", overflow)
	} else if missing := row.Record.Missing(); len(missing) > 0 {
		err.Suggestion = fmt.Sprintf("missing %s", strings.Join(missing, ", "))
	}
	return err
}
