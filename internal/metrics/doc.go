// Package metrics records generation-pass and reference-resolution metrics.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default, so callers never check for nil; PrometheusRecorder is swapped
// in when monitoring.metrics.enabled is set, and HTTPHandler exposes its
// registry.
package metrics
