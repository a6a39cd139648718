// Package metrics provides Prometheus metrics collection for conftool.
//
// # Overview
//
// The metrics package counts what a lint run did: files validated by result,
// rows read, rejections by field and validator, and how long files and runs
// took. Metrics live on a private registry; conftool is a short-lived process,
// so instead of serving them it writes them to a file in the Prometheus text
// format for the node exporter textfile collector.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordFile(metrics.ResultFail, 120, 3*time.Millisecond)
//	collector.RecordFailure("Country", "in_set")
//	collector.RecordRun(12, false, 40*time.Millisecond)
//
//	if err := collector.WriteTextfile("conftool.prom"); err != nil {
//		return err
//	}
//
// # Cardinality
//
// Field labels come from the schema, which configuration can replace. The
// collector caps distinct (field, validator) pairs and folds the excess into
// field="other".
package metrics
