package metric

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nlcep/internal/temporal"
)

// OutcomeOK labels successful parses.
const OutcomeOK = "ok"

// Metrics holds the parser counters exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	parses   *prometheus.CounterVec
	duration prometheus.Histogram
	appended prometheus.Counter
}

// New registers a fresh set of collectors on their own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		parses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nlcep_parse_total",
			Help: "Parse requests by outcome (ok or the parse error code).",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nlcep_parse_duration_seconds",
			Help:    "Time spent parsing one input.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		appended: factory.NewCounter(prometheus.CounterOpts{
			Name: "nlcep_ics_events_encoded_total",
			Help: "Events rendered as iCalendar.",
		}),
	}
}

// Outcome maps a parse result to its label value.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var pe temporal.ParseError
	if errors.As(err, &pe) {
		return pe.Code()
	}
	return "internal"
}

// ObserveParse records one parse that started at start.
func (m *Metrics) ObserveParse(start time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(time.Since(start).Seconds())
	m.parses.WithLabelValues(Outcome(err)).Inc()
}

// ObserveEncode counts an iCalendar rendering.
func (m *Metrics) ObserveEncode() {
	if m == nil {
		return
	}
	m.appended.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
