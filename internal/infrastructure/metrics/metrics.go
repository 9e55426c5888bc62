// Package metrics defines the Prometheus collectors of the automation pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Metrics holds the pipeline collectors. A nil *Metrics records nothing.
type Metrics struct {
	PipelineRuns     *prometheus.CounterVec
	StageDuration    *prometheus.HistogramVec
	QuotaDenied      *prometheus.CounterVec
	CalendarFailures prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. Passing a fresh registry isolates tests.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PipelineRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minuteme_pipeline_runs_total",
				Help: "Automation runs by terminal status",
			},
			[]string{"status"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "minuteme_stage_duration_seconds",
				Help:    "Duration of each pipeline stage",
				Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 180, 600, 1800},
			},
			[]string{"stage"},
		),
		QuotaDenied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minuteme_quota_denied_total",
				Help: "Requests refused because a tier limit was reached",
			},
			[]string{"kind"},
		),
		CalendarFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "minuteme_calendar_failures_total",
				Help: "Calendar event insertions that failed",
			},
		),
		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveStage records how long a stage took
func (m *Metrics) ObserveStage(stage string, started time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(started).Seconds())
}

// RunFinished counts a terminal pipeline outcome
func (m *Metrics) RunFinished(status string) {
	if m == nil {
		return
	}
	m.PipelineRuns.WithLabelValues(status).Inc()
}

// QuotaDeniedFor counts a refused consumption
func (m *Metrics) QuotaDeniedFor(kind string) {
	if m == nil {
		return
	}
	m.QuotaDenied.WithLabelValues(kind).Inc()
}

// CalendarFailed counts a failed event insertion
func (m *Metrics) CalendarFailed() {
	if m == nil {
		return
	}
	m.CalendarFailures.Inc()
}
