// Package validator provides the per-field checks applied to every data row.
//
// Each validator approves or rejects one field value with the whole row as context.
// A rejection is returned as an *errors.Error; nil means the value was accepted.
// Validators never stop a pass: the runner collects every rejection.
//
// # Validators
//
// NotEmpty: rejects blank and absent values
//
// IsoDate: accepts YYYY-MM-DD calendar dates, and "" when AllowEmpty is set
//
// InSet: accepts members of a reference set (case-sensitive), and "" when AllowEmpty
// is set
//
// Ignore: accepts everything; documents that a column is deliberately unchecked
//
// RowShape: row-scoped; rejects rows whose raw field count differs from the header
//
// Empty handling is always explicit. A value that is absent because the row ended
// early is never treated as empty: NotEmpty, IsoDate and InSet reject it even with
// AllowEmpty set, which is how short rows surface on the columns they lost.
//
// # Building From Configuration
//
//	v, err := validator.Build(validator.RuleSpec{Rule: "iso_date", AllowEmpty: true})
//	if err != nil {
//	    return err // *errors.Error of kind configuration
//	}
package validator
