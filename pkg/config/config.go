package config

import "github.com/pyconferences/conftool/pkg/dataset/schema"

// Config represents the complete conftool configuration.
type Config struct {
	// Data locates the conference data files.
	Data DataConfig `yaml:"data"`

	// Lint contains defaults for the lint command.
	Lint LintConfig `yaml:"lint"`

	// Export contains the JSON and iCalendar export settings.
	Export ExportConfig `yaml:"export"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Schema optionally replaces the built-in conference schema. Each entry names a
	// column and the rules its values must pass.
	Schema []schema.ColumnSpec `yaml:"schema"`
}

// DataConfig describes where the data files live.
type DataConfig struct {
	// Dir is the directory holding the data files.
	// Default: "."
	Dir string `yaml:"dir"`

	// Pattern is the glob, relative to Dir, that selects data files.
	// Default: "*.csv"
	Pattern string `yaml:"pattern"`

	// Aggregate is the file name of the all-years file written by merge and
	// read by split.
	// Default: "conferences.csv"
	Aggregate string `yaml:"aggregate"`

	// Exclude lists file names that match Pattern but are not data files.
	Exclude []string `yaml:"exclude"`
}

// LintConfig contains lint command defaults.
type LintConfig struct {
	// Format is the report format.
	// Options: "text", "json"
	// Default: "text"
	Format string `yaml:"format"`

	// ContextLines is the number of source lines shown around each failure in
	// text reports. 0 disables context.
	// Default: 0
	ContextLines int `yaml:"context_lines"`
}

// ExportConfig contains export command settings.
type ExportConfig struct {
	// JSONPath is where the JSON export is written.
	// Default: "conferences.json"
	JSONPath string `yaml:"json_path"`

	// ICSPath is where the iCalendar export is written.
	// Default: "conferences.ics"
	ICSPath string `yaml:"ics_path"`

	// ProdID is the PRODID of the generated calendar.
	// Default: "-//Python Conferences//EN"
	ProdID string `yaml:"prod_id"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Textfile is the path of the Prometheus textfile written after a lint run.
	// Setting it enables metrics.
	Textfile string `yaml:"textfile"`

	// Namespace is the metric name prefix.
	// Default: "conftool"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "lint"
	Subsystem string `yaml:"subsystem"`
}

// BuildSchema returns the schema declared in the configuration, or the built-in
// conference schema when none is declared.
func (c *Config) BuildSchema() (*schema.Schema, error) {
	if len(c.Schema) == 0 {
		return schema.Conferences(), nil
	}
	return schema.FromSpec(c.Schema)
}
