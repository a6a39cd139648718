package metrics

import (
	"time"

	"github.com/pyconferences/conftool/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LintMetrics tracks metrics related to dataset validation.
//
// Metrics (with the default namespace and subsystem):
//   - conftool_lint_files_total: Files validated, by result
//   - conftool_lint_rows_total: Data rows read
//   - conftool_lint_failures_total: Rejections, by field and validator
//   - conftool_lint_file_duration_seconds: Time spent validating one file
//   - conftool_lint_run_duration_seconds: Time spent on a whole run
//   - conftool_lint_last_run_passed: 1 if the last run passed, 0 otherwise
//   - conftool_lint_last_run_files: Files checked by the last run
type LintMetrics struct {
	filesTotal    *prometheus.CounterVec
	rowsTotal     prometheus.Counter
	failuresTotal *prometheus.CounterVec

	fileDuration prometheus.Histogram
	runDuration  prometheus.Histogram

	lastRunPassed prometheus.Gauge
	lastRunFiles  prometheus.Gauge
}

// NewLintMetrics creates and registers lint metrics with the provided registry.
func NewLintMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LintMetrics {
	lm := &LintMetrics{
		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_total",
				Help:      "Total number of data files validated",
			},
			[]string{"result"},
		),

		rowsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rows_total",
				Help:      "Total number of data rows read",
			},
		),

		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "failures_total",
				Help:      "Total number of rejected values",
			},
			[]string{"field", "validator"},
		),

		fileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "file_duration_seconds",
				Help:      "Duration of validating one data file in seconds",
				// 100µs to ~3s
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of a lint run over all data files in seconds",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
			},
		),

		lastRunPassed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_run_passed",
				Help:      "1 if every file passed in the last run, 0 otherwise",
			},
		),

		lastRunFiles: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_run_files",
				Help:      "Number of data files checked by the last run",
			},
		),
	}

	registry.MustRegister(
		lm.filesTotal,
		lm.rowsTotal,
		lm.failuresTotal,
		lm.fileDuration,
		lm.runDuration,
		lm.lastRunPassed,
		lm.lastRunFiles,
	)

	return lm
}

// RecordFile records a validated file.
func (lm *LintMetrics) RecordFile(result string, rows int, duration time.Duration) {
	lm.filesTotal.WithLabelValues(result).Inc()
	lm.rowsTotal.Add(float64(rows))
	lm.fileDuration.Observe(duration.Seconds())
}

// RecordFailure records one rejection.
func (lm *LintMetrics) RecordFailure(field, validator string) {
	lm.failuresTotal.WithLabelValues(field, validator).Inc()
}

// RecordRun records a finished run.
func (lm *LintMetrics) RecordRun(files int, passed bool, duration time.Duration) {
	lm.runDuration.Observe(duration.Seconds())
	lm.lastRunFiles.Set(float64(files))
	if passed {
		lm.lastRunPassed.Set(1)
	} else {
		lm.lastRunPassed.Set(0)
	}
}
