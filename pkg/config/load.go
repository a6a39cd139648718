package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention CONFTOOL_SECTION_FIELD (e.g., CONFTOOL_DATA_DIR).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// Load resolves the configuration used by the CLI. An explicit path must exist.
// With an empty path, DefaultConfigPath is read if present and the defaults are
// used otherwise. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadConfigWithEnvOverrides(path)
	}

	cfg, err := LoadConfigWithEnvOverrides(DefaultConfigPath)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg = NewDefaultConfig()
	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// An empty document is a valid, all-defaults configuration.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format CONFTOOL_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Data overrides
	if val := os.Getenv("CONFTOOL_DATA_DIR"); val != "" {
		cfg.Data.Dir = val
	}
	if val := os.Getenv("CONFTOOL_DATA_PATTERN"); val != "" {
		cfg.Data.Pattern = val
	}
	if val := os.Getenv("CONFTOOL_DATA_AGGREGATE"); val != "" {
		cfg.Data.Aggregate = val
	}
	if val := os.Getenv("CONFTOOL_DATA_EXCLUDE"); val != "" {
		cfg.Data.Exclude = splitList(val)
	}

	// Lint overrides
	if val := os.Getenv("CONFTOOL_LINT_FORMAT"); val != "" {
		cfg.Lint.Format = val
	}
	if val := os.Getenv("CONFTOOL_LINT_CONTEXT_LINES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Lint.ContextLines = i
		}
	}

	// Export overrides
	if val := os.Getenv("CONFTOOL_EXPORT_JSON_PATH"); val != "" {
		cfg.Export.JSONPath = val
	}
	if val := os.Getenv("CONFTOOL_EXPORT_ICS_PATH"); val != "" {
		cfg.Export.ICSPath = val
	}
	if val := os.Getenv("CONFTOOL_EXPORT_PROD_ID"); val != "" {
		cfg.Export.ProdID = val
	}

	// Telemetry overrides
	if val := os.Getenv("CONFTOOL_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("CONFTOOL_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("CONFTOOL_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("CONFTOOL_TELEMETRY_METRICS_TEXTFILE"); val != "" {
		cfg.Telemetry.Metrics.Textfile = val
		cfg.Telemetry.Metrics.Enabled = true
	}
	if val := os.Getenv("CONFTOOL_TELEMETRY_METRICS_NAMESPACE"); val != "" {
		cfg.Telemetry.Metrics.Namespace = val
	}
}

// splitList splits a comma-separated environment value, dropping blanks.
func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
