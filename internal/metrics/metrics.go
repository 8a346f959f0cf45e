// Package metrics exposes Prometheus collectors for the ingestion pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "resumind"

const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

// PipelineMetrics is safe to use through a nil pointer, which records nothing.
type PipelineMetrics struct {
	runs     *prometheus.CounterVec
	stages   *prometheus.HistogramVec
	inflight prometheus.Gauge
	ai       *prometheus.CounterVec
}

func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Résumé submissions by variant and outcome.",
		}, []string{"variant", "outcome"}),
		stages: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Time spent in each pipeline stage.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"stage"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_inflight",
			Help:      "Submissions currently being processed.",
		}),
		ai: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_requests_total",
			Help:      "Derived AI requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.runs, m.stages, m.inflight, m.ai)
	}
	return m
}

func (m *PipelineMetrics) ObserveRun(variant, outcome string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(variant, outcome).Inc()
}

func (m *PipelineMetrics) ObserveStage(stage string, started time.Time) {
	if m == nil {
		return
	}
	m.stages.WithLabelValues(stage).Observe(time.Since(started).Seconds())
}

func (m *PipelineMetrics) Started() {
	if m == nil {
		return
	}
	m.inflight.Inc()
}

func (m *PipelineMetrics) Finished() {
	if m == nil {
		return
	}
	m.inflight.Dec()
}

func (m *PipelineMetrics) ObserveAI(kind string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailed
	}
	m.ai.WithLabelValues(kind, outcome).Inc()
}
