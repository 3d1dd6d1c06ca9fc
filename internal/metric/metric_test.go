package metric

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlcep/internal/temporal"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "MissingTime", Outcome(temporal.MissingTime))
	assert.Equal(t, "InvalidTime", Outcome(errors.Wrap(temporal.InvalidTime, "parse")))
	assert.Equal(t, "internal", Outcome(errors.New("boom")))
}

func TestObserveParse(t *testing.T) {
	m := New()
	m.ObserveParse(time.Now(), nil)
	m.ObserveParse(time.Now(), nil)
	m.ObserveParse(time.Now(), temporal.MissingSummary)
	m.ObserveEncode()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.parses.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.parses.WithLabelValues("MissingSummary")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.appended))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `nlcep_parse_total{outcome="ok"} 2`)
	assert.Contains(t, rec.Body.String(), "nlcep_parse_duration_seconds_count 3")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveParse(time.Now(), nil)
		m.ObserveEncode()
	})
}
