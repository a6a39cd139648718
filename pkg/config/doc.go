// Package config provides configuration management for conftool.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in three ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("conftool.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("conftool.yaml")
//
//  3. The way the CLI does it, falling back to defaults when no file exists:
//     cfg, err := config.Load(flagValue)
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CONFTOOL_SECTION_FIELD.
// For example:
//
//   - CONFTOOL_DATA_DIR overrides data.dir
//   - CONFTOOL_DATA_EXCLUDE overrides data.exclude (comma-separated)
//   - CONFTOOL_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Schema
//
// The optional schema section replaces the built-in conference schema:
//
//	schema:
//	  - field: Subject
//	    rules:
//	      - rule: not_empty
//	      - rule: row_shape
//	  - field: Country
//	    rules:
//	      - rule: in_set
//	        set: iso3166_alpha3
//	        allow_empty: true
//
// A schema that cannot be built is reported as a validation error before any
// data file is read.
package config
