package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	dserrors "github.com/pyconferences/conftool/pkg/dataset/errors"
	"github.com/pyconferences/conftool/pkg/dataset/schema"
	"github.com/pyconferences/conftool/pkg/telemetry/logging"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "data.pattern").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateData(&cfg.Data)...)
	errs = append(errs, validateLint(&cfg.Lint)...)
	errs = append(errs, validateExport(&cfg.Export)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	errs = append(errs, validateSchema(cfg.Schema)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateData(cfg *DataConfig) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(cfg.Dir) == "" {
		errs = append(errs, FieldError{Field: "data.dir", Message: "must not be blank"})
	}
	if _, err := filepath.Match(cfg.Pattern, ""); err != nil {
		errs = append(errs, FieldError{
			Field:   "data.pattern",
			Message: fmt.Sprintf("invalid glob %q: %v", cfg.Pattern, err),
		})
	}
	if strings.ContainsRune(cfg.Aggregate, filepath.Separator) || strings.ContainsRune(cfg.Aggregate, '/') {
		errs = append(errs, FieldError{
			Field:   "data.aggregate",
			Message: "must be a file name inside data.dir, not a path",
		})
	}
	for i, name := range cfg.Exclude {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("data.exclude[%d]", i),
				Message: "must not be blank",
			})
		}
	}

	return errs
}

func validateLint(cfg *LintConfig) []FieldError {
	var errs []FieldError

	switch cfg.Format {
	case "text", "json":
	default:
		errs = append(errs, FieldError{
			Field:   "lint.format",
			Message: fmt.Sprintf("must be one of text, json; got %q", cfg.Format),
		})
	}
	if cfg.ContextLines < 0 {
		errs = append(errs, FieldError{Field: "lint.context_lines", Message: "must not be negative"})
	}

	return errs
}

func validateExport(cfg *ExportConfig) []FieldError {
	var errs []FieldError

	if cfg.JSONPath == cfg.ICSPath {
		errs = append(errs, FieldError{
			Field:   "export.ics_path",
			Message: "must differ from export.json_path",
		})
	}
	if strings.ContainsAny(cfg.ProdID, "\r\n") {
		errs = append(errs, FieldError{Field: "export.prod_id", Message: "must be a single line"})
	}

	return errs
}

var metricNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	if !logging.ValidLevel(cfg.Logging.Level) {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", cfg.Logging.Level),
		})
	}
	if !logging.ValidFormat(cfg.Logging.Format) {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be one of json, text, console; got %q", cfg.Logging.Format),
		})
	}

	if !metricNamePattern.MatchString(cfg.Metrics.Namespace) {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.namespace",
			Message: fmt.Sprintf("%q is not a valid metric name prefix", cfg.Metrics.Namespace),
		})
	}
	if !metricNamePattern.MatchString(cfg.Metrics.Subsystem) {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.subsystem",
			Message: fmt.Sprintf("%q is not a valid metric name part", cfg.Metrics.Subsystem),
		})
	}

	return errs
}

// validateSchema builds the declared schema and reports each configuration error
// it produces under the schema field it belongs to.
func validateSchema(specs []schema.ColumnSpec) []FieldError {
	if len(specs) == 0 {
		return nil
	}

	_, err := schema.FromSpec(specs)
	if err == nil {
		return nil
	}

	var list *dserrors.ErrorList
	if !errors.As(err, &list) {
		return []FieldError{{Field: "schema", Message: err.Error()}}
	}

	errs := make([]FieldError, 0, list.Count())
	for _, e := range list.Errors {
		field := "schema"
		if e.Location.Field != "" {
			field = fmt.Sprintf("schema[%s]", e.Location.Field)
		}
		errs = append(errs, FieldError{Field: field, Message: e.Reason()})
	}
	return errs
}
