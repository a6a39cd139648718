// Package errors provides the error taxonomy for dataset reading and validation.
//
// Every problem found in a data file is an *Error carrying a Kind, a human-readable
// message and the Location (file, line, row, field) it was found at. Validation never
// stops at the first problem: errors are accumulated in an ErrorList and reported
// together.
//
// # Kinds
//
// KindField: a single validator rejected a single field value
//
// KindRowShape: a row has more or fewer fields than the header declares
//
// KindMalformed: the file has no header or cannot be decoded; validation of that
// file stops, other files are still checked
//
// KindConfiguration: the schema or a validator is malformed; reported before any
// file is read
//
// # Basic Usage
//
// Accumulate rejections while walking a file:
//
//	list := errors.NewErrorList()
//	list.Add(&errors.Error{
//	    Kind:     errors.KindField,
//	    Rule:     "not_empty",
//	    Message:  "value must not be empty",
//	    Location: errors.Location{File: "2024.csv", Line: 3, Row: 2, Field: "Subject"},
//	})
//
//	if list.HasErrors() {
//	    return list.ToError()
//	}
//
// # Error Format
//
//	[field] Subject: value must not be empty
//	  --> 2024.csv:3 (row 2)
//	  |
//	  ->  3 | ,2024-05-01,2024-05-03,USA
//	  |
//	  = suggestion: ...
//
// # Suggestions
//
// SuggestValue uses Levenshtein distance to propose the closest member of a reference
// set when a value is not in it, e.g. "Did you mean 'USA'?" for "UAS".
package errors
