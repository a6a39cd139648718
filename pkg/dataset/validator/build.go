package validator

import (
	"slices"
	"sort"

	"github.com/pyconferences/conftool/pkg/dataset/countries"
	dserrors "github.com/pyconferences/conftool/pkg/dataset/errors"
)

// SetISO3166Alpha3 is the name of the built-in country code reference set.
const SetISO3166Alpha3 = "iso3166_alpha3"

// referenceSets maps set names usable from configuration to their members and the
// label used in rejection messages.
var referenceSets = map[string]struct {
	label   string
	members func() []string
}{
	SetISO3166Alpha3: {"ISO 3166-1 alpha-3 country code", countries.Codes},
}

// RuleSpec is the declarative form of a validator, as written in configuration.
type RuleSpec struct {
	// Rule is one of not_empty, iso_date, in_set, ignore, row_shape.
	Rule string `yaml:"rule" json:"rule"`

	// AllowEmpty accepts "" for iso_date and in_set.
	AllowEmpty bool `yaml:"allow_empty,omitempty" json:"allow_empty,omitempty"`

	// Set names a built-in reference set for in_set.
	Set string `yaml:"set,omitempty" json:"set,omitempty"`

	// Values is an inline reference set for in_set.
	Values []string `yaml:"values,omitempty" json:"values,omitempty"`
}

// Rules returns the known rule names, sorted.
func Rules() []string {
	return []string{RuleIgnore, RuleInSet, RuleIsoDate, RuleNotEmpty, RuleRowShape}
}

// Build turns a RuleSpec into a Validator. field is only used to locate errors.
func Build(field string, spec RuleSpec) (Validator, *dserrors.Error) {
	if spec.AllowEmpty && spec.Rule != RuleIsoDate && spec.Rule != RuleInSet {
		return nil, dserrors.Configuration(field, "rule %q does not take allow_empty", spec.Rule)
	}
	if (spec.Set != "" || len(spec.Values) > 0) && spec.Rule != RuleInSet {
		return nil, dserrors.Configuration(field, "rule %q does not take a reference set", spec.Rule)
	}

	switch spec.Rule {
	case RuleNotEmpty:
		return NotEmpty{}, nil
	case RuleIsoDate:
		return IsoDate{AllowEmpty: spec.AllowEmpty}, nil
	case RuleIgnore:
		return Ignore{}, nil
	case RuleRowShape:
		return RowShape{}, nil
	case RuleInSet:
		return buildInSet(field, spec)
	case "":
		return nil, dserrors.Configuration(field, "rule name is required")
	default:
		err := dserrors.Configuration(field, "unknown rule %q", spec.Rule)
		err.Suggestion = dserrors.SuggestValue(spec.Rule, Rules())
		return nil, err
	}
}

func buildInSet(field string, spec RuleSpec) (Validator, *dserrors.Error) {
	switch {
	case spec.Set != "" && len(spec.Values) > 0:
		return nil, dserrors.Configuration(field, "in_set takes either set or values, not both")

	case spec.Set != "":
		ref, ok := referenceSets[spec.Set]
		if !ok {
			names := make([]string, 0, len(referenceSets))
			for name := range referenceSets {
				names = append(names, name)
			}
			sort.Strings(names)
			err := dserrors.Configuration(field, "unknown reference set %q", spec.Set)
			err.Suggestion = dserrors.SuggestValue(spec.Set, names)
			return nil, err
		}
		return NewInSet(ref.label, ref.members(), spec.AllowEmpty), nil

	case len(spec.Values) > 0:
		if slices.Contains(spec.Values, "") {
			return nil, dserrors.Configuration(field, "in_set values must not contain an empty string, use allow_empty")
		}
		return NewInSet("value", spec.Values, spec.AllowEmpty), nil

	default:
		return nil, dserrors.Configuration(field, "in_set requires set or values")
	}
}
