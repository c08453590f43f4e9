// Package metrics records check metrics for watch mode.
//
// Components receive a Recorder and default to NoopRecorder, so nothing
// needs a nil check:
//
//	type Watcher struct {
//	    recorder metrics.Recorder
//	}
//
// When a metrics address is configured the daemon swaps in a
// PrometheusRecorder and serves its registry through HTTPHandler.
package metrics
