package validator

import (
	"testing"

	dserrors "github.com/pyconferences/conftool/pkg/dataset/errors"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		spec     RuleSpec
		wantName string
		wantErr  bool
	}{
		{"not empty", RuleSpec{Rule: "not_empty"}, RuleNotEmpty, false},
		{"iso date", RuleSpec{Rule: "iso_date", AllowEmpty: true}, RuleIsoDate, false},
		{"ignore", RuleSpec{Rule: "ignore"}, RuleIgnore, false},
		{"row shape", RuleSpec{Rule: "row_shape"}, RuleRowShape, false},
		{"country set", RuleSpec{Rule: "in_set", Set: "iso3166_alpha3", AllowEmpty: true}, RuleInSet, false},
		{"inline values", RuleSpec{Rule: "in_set", Values: []string{"online", "hybrid"}}, RuleInSet, false},
		{"missing rule", RuleSpec{}, "", true},
		{"unknown rule", RuleSpec{Rule: "not_emtpy"}, "", true},
		{"allow empty on not empty", RuleSpec{Rule: "not_empty", AllowEmpty: true}, "", true},
		{"set on iso date", RuleSpec{Rule: "iso_date", Set: "iso3166_alpha3"}, "", true},
		{"in set without members", RuleSpec{Rule: "in_set"}, "", true},
		{"in set with both", RuleSpec{Rule: "in_set", Set: "iso3166_alpha3", Values: []string{"x"}}, "", true},
		{"unknown set", RuleSpec{Rule: "in_set", Set: "iso3166_alpha2"}, "", true},
		{"empty value in set", RuleSpec{Rule: "in_set", Values: []string{"a", ""}}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Build("Country", tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Build() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if err.Kind != dserrors.KindConfiguration {
					t.Errorf("Kind = %s, want configuration", err.Kind)
				}
				if err.Location.Field != "Country" {
					t.Errorf("Field = %q, want Country", err.Location.Field)
				}
				return
			}
			if v.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", v.Name(), tt.wantName)
			}
		})
	}
}

func TestBuildSuggestsRule(t *testing.T) {
	_, err := Build("Subject", RuleSpec{Rule: "not_emtpy"})
	if err == nil || err.Suggestion != "Did you mean 'not_empty'?" {
		t.Errorf("Build() = %v", err)
	}
}

func TestBuildCountrySet(t *testing.T) {
	v, err := Build("Country", RuleSpec{Rule: "in_set", Set: SetISO3166Alpha3})
	if err != nil {
		t.Fatal(err)
	}
	if rej := v.Validate("Country", row("PyCon", "", "", "CZE")); rej != nil {
		t.Errorf("CZE rejected: %v", rej)
	}
	rej := v.Validate("Country", row("PyCon", "", "", "ZZZ"))
	if rej == nil || rej.Message != `"ZZZ" is not a valid ISO 3166-1 alpha-3 country code` {
		t.Errorf("ZZZ rejection = %v", rej)
	}
}
