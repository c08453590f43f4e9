package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	checkDuration prom.Histogram
	checkOutcome  *prom.CounterVec
	checkTrigger  *prom.CounterVec
	missingDocs   prom.Gauge
	emitWrites    *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual check stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		checkDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "check_duration_seconds",
			Help:      "Total check duration",
			Buckets:   prom.DefBuckets,
		}),
		checkOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "check_outcomes_total",
			Help:      "Check outcomes by final status",
		}, []string{"outcome"}),
		checkTrigger: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "check_triggers_total",
			Help:      "Checks started, by trigger",
		}, []string{"trigger"}),
		missingDocs: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "missing_documents",
			Help:      "Sidebar references without a source document in the last check",
		}),
		emitWrites: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "emit_total",
			Help:      "Emitted configuration files, by whether the file changed",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.stageDuration, pr.checkDuration, pr.checkOutcome, pr.checkTrigger, pr.missingDocs, pr.emitWrites)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveCheckDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.checkDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCheckOutcome(outcome Outcome) {
	if p == nil {
		return
	}
	p.checkOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncCheckTrigger(trigger Trigger) {
	if p == nil {
		return
	}
	p.checkTrigger.WithLabelValues(string(trigger)).Inc()
}

func (p *PrometheusRecorder) SetMissingDocuments(n int) {
	if p == nil {
		return
	}
	p.missingDocs.Set(float64(n))
}

func (p *PrometheusRecorder) IncEmitWrite(written bool) {
	if p == nil {
		return
	}
	res := "unchanged"
	if written {
		res = "written"
	}
	p.emitWrites.WithLabelValues(res).Inc()
}
