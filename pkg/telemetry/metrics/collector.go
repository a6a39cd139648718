package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/pyconferences/conftool/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// File results used as the "result" label.
const (
	ResultPass      = "pass"
	ResultFail      = "fail"
	ResultMalformed = "malformed"
)

// otherLabel replaces label values beyond the cardinality limit.
const otherLabel = "other"

// Collector owns the lint metrics and the private registry they are registered on.
// A disabled collector accepts every call and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	lintMetrics *LintMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a new private registry is used.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "conftool",
//		Subsystem: "lint",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		lintMetrics:        NewLintMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(1000),
	}
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// RecordFile records the outcome of validating one file.
//
// Parameters:
//   - result: ResultPass, ResultFail or ResultMalformed
//   - rows: number of data rows read
//   - duration: time spent on the file
func (c *Collector) RecordFile(result string, rows int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.lintMetrics.RecordFile(result, rows, duration)
}

// RecordFailure records one rejection by validator on field.
func (c *Collector) RecordFailure(field, validator string) {
	if !c.config.Enabled {
		return
	}

	labelSet := fmt.Sprintf("failure:%s:%s", field, validator)
	if !c.cardinalityLimiter.Allow(labelSet) {
		field = otherLabel
	}

	c.lintMetrics.RecordFailure(field, validator)
}

// RecordRun records a completed run over files data files.
func (c *Collector) RecordRun(files int, passed bool, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.lintMetrics.RecordRun(files, passed, duration)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Textfile returns the configured textfile path, or "" when metrics are
// disabled or not written to a file.
func (c *Collector) Textfile() string {
	if !c.config.Enabled {
		return ""
	}
	return c.config.Textfile
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// format, for the node exporter textfile collector. The file is replaced
// atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	return nil
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
