// Package metrics records build metrics for devlog.
//
// Components receive a Recorder and default to NoopRecorder, so metrics are
// optional and never need nil checks at call sites. The serve command swaps in
// a PrometheusRecorder and exposes it on /metrics.
package metrics
