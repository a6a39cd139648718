// Package schema declares which columns a data file must carry and the validators
// each column's values must pass.
package schema

import (
	"fmt"
	"strings"

	dserrors "github.com/pyconferences/conftool/pkg/dataset/errors"
	"github.com/pyconferences/conftool/pkg/dataset/validator"
)

// Conference column names.
const (
	FieldSubject          = "Subject"
	FieldStartDate        = "Start Date"
	FieldEndDate          = "End Date"
	FieldLocation         = "Location"
	FieldCountry          = "Country"
	FieldVenue            = "Venue"
	FieldTutorialDeadline = "Tutorial Deadline"
	FieldTalkDeadline     = "Talk Deadline"
	FieldWebsiteURL       = "Website URL"
	FieldProposalURL      = "Proposal URL"
	FieldSponsorshipURL   = "Sponsorship URL"
)

// Column is one schema entry: a field and the validators its value must pass, in
// order.
type Column struct {
	Field      string
	Validators []validator.Validator
}

// Schema is an ordered list of columns.
type Schema struct {
	Columns []Column
}

// Conferences returns the schema of the conference data files.
func Conferences() *Schema {
	s, err := FromSpec(ConferencesSpec())
	if err != nil {
		panic(fmt.Sprintf("schema: built-in conference schema is invalid: %v", err))
	}
	return s
}

// Fields returns the column names in schema order.
func (s *Schema) Fields() []string {
	fields := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		fields[i] = c.Field
	}
	return fields
}

// Validate checks that the schema itself is usable. It returns an
// *errors.ErrorList of configuration errors, or nil.
func (s *Schema) Validate() error {
	errs := dserrors.NewErrorList()

	if len(s.Columns) == 0 {
		errs.Add(dserrors.Configuration("", "schema declares no columns"))
		return errs.ToError()
	}

	seen := make(map[string]bool, len(s.Columns))
	var rowScoped []string

	for i, c := range s.Columns {
		if strings.TrimSpace(c.Field) == "" {
			errs.Add(dserrors.Configuration(fmt.Sprintf("#%d", i+1), "column name must not be blank"))
			continue
		}
		if seen[c.Field] {
			errs.Add(dserrors.Configuration(c.Field, "column is declared more than once"))
		}
		seen[c.Field] = true

		if len(c.Validators) == 0 {
			errs.Add(dserrors.Configuration(c.Field, "column has no validators, use ignore to leave it unchecked"))
		}
		for j, v := range c.Validators {
			if v == nil {
				errs.Add(dserrors.Configuration(c.Field, "validator %d is nil", j+1))
				continue
			}
			if _, ok := v.(validator.RowScoped); ok {
				rowScoped = append(rowScoped, c.Field)
			}
		}
	}

	switch {
	case len(rowScoped) == 0:
		errs.Add(dserrors.Configuration("", "no column carries the row_shape rule"))
	case len(rowScoped) > 1:
		errs.Add(dserrors.Configuration(strings.Join(rowScoped, ", "),
			"row_shape must be registered exactly once, found %d registrations", len(rowScoped)))
	}

	return errs.ToError()
}

// ColumnSpec is the declarative form of a column, as written in configuration.
type ColumnSpec struct {
	Field string               `yaml:"field" json:"field"`
	Rules []validator.RuleSpec `yaml:"rules" json:"rules"`
}

// FromSpec builds and validates a schema from its declarative form. Every problem
// is reported, not only the first.
func FromSpec(specs []ColumnSpec) (*Schema, error) {
	errs := dserrors.NewErrorList()
	s := &Schema{}

	for _, spec := range specs {
		col := Column{Field: spec.Field}
		for _, rule := range spec.Rules {
			v, err := validator.Build(spec.Field, rule)
			if err != nil {
				errs.Add(err)
				continue
			}
			col.Validators = append(col.Validators, v)
		}
		s.Columns = append(s.Columns, col)
	}

	if errs.HasErrors() {
		return nil, errs
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ConferencesSpec returns the declarative form of the conference schema. It is the
// default when configuration declares no schema.
func ConferencesSpec() []ColumnSpec {
	return []ColumnSpec{
		{FieldSubject, []validator.RuleSpec{{Rule: validator.RuleNotEmpty}, {Rule: validator.RuleRowShape}}},
		{FieldStartDate, []validator.RuleSpec{{Rule: validator.RuleIsoDate}}},
		{FieldEndDate, []validator.RuleSpec{{Rule: validator.RuleIsoDate}}},
		{FieldLocation, []validator.RuleSpec{{Rule: validator.RuleIgnore}}},
		{FieldCountry, []validator.RuleSpec{{Rule: validator.RuleInSet, Set: validator.SetISO3166Alpha3, AllowEmpty: true}}},
		{FieldVenue, []validator.RuleSpec{{Rule: validator.RuleIgnore}}},
		{FieldTutorialDeadline, []validator.RuleSpec{{Rule: validator.RuleIsoDate, AllowEmpty: true}}},
		{FieldTalkDeadline, []validator.RuleSpec{{Rule: validator.RuleIsoDate, AllowEmpty: true}}},
		{FieldWebsiteURL, []validator.RuleSpec{{Rule: validator.RuleIgnore}}},
		{FieldProposalURL, []validator.RuleSpec{{Rule: validator.RuleIgnore}}},
		{FieldSponsorshipURL, []validator.RuleSpec{{Rule: validator.RuleIgnore}}},
	}
}
