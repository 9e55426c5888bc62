package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAndHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RunFinished(StatusSuccess)
	m.RunFinished(StatusFailed)
	m.RunFinished(StatusFailed)
	m.QuotaDeniedFor("automation")
	m.CalendarFailed()
	m.ObserveStage("minutes", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PipelineRuns.WithLabelValues(StatusFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuotaDenied.WithLabelValues("automation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalendarFailures))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "minuteme_stage_duration_seconds")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RunFinished(StatusSuccess)
		m.QuotaDeniedFor("meeting")
		m.CalendarFailed()
		m.ObserveStage("agenda", time.Now())
	})
}
