package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector agrupa las metricas del servicio sobre un registry propio.
type MetricsCollector struct {
	Registry *prometheus.Registry

	PipelineRunsTotal     *prometheus.CounterVec
	PipelineStageDuration *prometheus.HistogramVec

	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestDuration prometheus.Histogram

	SafetyViolationsTotal *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func NewMetricsCollector() *MetricsCollector {
	reg := prometheus.NewRegistry()

	m := &MetricsCollector{
		Registry: reg,

		PipelineRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "companion",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Pipeline runs by terminal outcome.",
		}, []string{"outcome"}),

		PipelineStageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "companion",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"stage"}),

		LLMRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "companion",
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Generation calls by status.",
		}, []string{"status"}),

		LLMRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "companion",
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Generation call duration in seconds.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),

		SafetyViolationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "companion",
			Subsystem: "safety",
			Name:      "violations_total",
			Help:      "Unsafe verdicts by checked context and severity.",
		}, []string{"context", "severity"}),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "companion",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		}, []string{"method", "path", "status_code"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "companion",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		m.PipelineRunsTotal,
		m.PipelineStageDuration,
		m.LLMRequestsTotal,
		m.LLMRequestDuration,
		m.SafetyViolationsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

// ObserveStage tolera un collector nil para que los tests no necesiten metricas.
func (m *MetricsCollector) ObserveStage(stage string, seconds float64) {
	if m == nil {
		return
	}
	m.PipelineStageDuration.WithLabelValues(stage).Observe(seconds)
}

func (m *MetricsCollector) RecordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.PipelineRunsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsCollector) RecordSafetyViolation(checkContext, severity string) {
	if m == nil {
		return
	}
	m.SafetyViolationsTotal.WithLabelValues(checkContext, severity).Inc()
}
