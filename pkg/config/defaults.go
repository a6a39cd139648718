package config

// Default values for configuration fields.
const (
	// Data defaults
	DefaultDataDir       = "."
	DefaultDataPattern   = "*.csv"
	DefaultDataAggregate = "conferences.csv"

	// Lint defaults
	DefaultLintFormat       = "text"
	DefaultLintContextLines = 0

	// Export defaults
	DefaultExportJSONPath = "conferences.json"
	DefaultExportICSPath  = "conferences.ics"
	DefaultExportProdID   = "-//Python Conferences//EN"

	// Telemetry defaults
	DefaultLoggingLevel     = "warn"
	DefaultLoggingFormat    = "console"
	DefaultMetricsNamespace = "conftool"
	DefaultMetricsSubsystem = "lint"

	// DefaultConfigPath is read when no --config flag is given. A missing file at
	// this path is not an error.
	DefaultConfigPath = "conftool.yaml"
)

// NewDefaultConfig returns a configuration with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every unset field of cfg with its default value.
func ApplyDefaults(cfg *Config) {
	applyDataDefaults(&cfg.Data)
	applyLintDefaults(&cfg.Lint)
	applyExportDefaults(&cfg.Export)
	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyDataDefaults(cfg *DataConfig) {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDataDir
	}
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultDataPattern
	}
	if cfg.Aggregate == "" {
		cfg.Aggregate = DefaultDataAggregate
	}
}

func applyLintDefaults(cfg *LintConfig) {
	if cfg.Format == "" {
		cfg.Format = DefaultLintFormat
	}
}

func applyExportDefaults(cfg *ExportConfig) {
	if cfg.JSONPath == "" {
		cfg.JSONPath = DefaultExportJSONPath
	}
	if cfg.ICSPath == "" {
		cfg.ICSPath = DefaultExportICSPath
	}
	if cfg.ProdID == "" {
		cfg.ProdID = DefaultExportProdID
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	if cfg.Metrics.Textfile != "" {
		cfg.Metrics.Enabled = true
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
