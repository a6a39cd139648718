package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes a dataset error.
type Kind string

const (
	KindField         Kind = "field"         // Validator rejected a field value
	KindRowShape      Kind = "row_shape"     // Row has the wrong number of fields
	KindMalformed     Kind = "malformed"     // File has no header or cannot be decoded
	KindConfiguration Kind = "configuration" // Schema or validator is malformed
)

// Location identifies where in the dataset an error was found.
type Location struct {
	File  string // Path to the data file
	Line  int    // Source line number (1-based, 0 if unknown)
	Row   int    // Data row index (1-based, header excluded, 0 if not row-scoped)
	Field string // Column name, empty if not field-scoped
}

// String returns "file:line" with the row appended when known.
func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	s := l.File
	if l.Line > 0 {
		s = fmt.Sprintf("%s:%d", s, l.Line)
	}
	if l.Row > 0 {
		s = fmt.Sprintf("%s (row %d)", s, l.Row)
	}
	return s
}

// IsValid returns true if the location points at a line of a file.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}

// Error is a single dataset problem with location, context and an optional suggestion.
type Error struct {
	Kind       Kind     `json:"kind"`
	Rule       string   `json:"rule,omitempty"` // Name of the validator that rejected the value
	Message    string   `json:"message"`
	Location   Location `json:"-"`
	Context    string   `json:"-"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	if e.Location.Field != "" {
		sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", e.Kind, e.Location.Field, e.Message))
	} else {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Kind, e.Message))
	}

	if e.Location.File != "" {
		sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.String()))
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// Reason returns the one-line rejection reason, including the suggestion if any.
func (e *Error) Reason() string {
	if e.Suggestion == "" {
		return e.Message
	}
	return e.Message + " (" + e.Suggestion + ")"
}

// Malformed returns a KindMalformed error for file.
func Malformed(file string, line int, format string, args ...any) *Error {
	return &Error{
		Kind:     KindMalformed,
		Message:  fmt.Sprintf(format, args...),
		Location: Location{File: file, Line: line},
	}
}

// Configuration returns a KindConfiguration error for the named field.
func Configuration(field, format string, args ...any) *Error {
	return &Error{
		Kind:     KindConfiguration,
		Message:  fmt.Sprintf(format, args...),
		Location: Location{Field: field},
	}
}

// ErrorList accumulates errors instead of failing on the first one.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// Merge appends every error of other, in order.
func (el *ErrorList) Merge(other *ErrorList) {
	if other == nil {
		return
	}
	el.Errors = append(el.Errors, other.Errors...)
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}
	if el.Count() == 1 {
		return el.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}
