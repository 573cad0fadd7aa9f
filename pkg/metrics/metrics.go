package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for identifier lookups and MARC extraction.
type Metrics struct {
	// Lookups by kind and outcome (valid, invalid)
	Lookups *prometheus.CounterVec

	LookupLatency *prometheus.HistogramVec

	// MARC records by outcome (parsed, rejected)
	MARCRecords *prometheus.CounterVec
}

// New registers the gateway metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "stdnum_lookups_total",
			Help: "Total identifier lookups by kind and outcome",
		}, []string{"kind", "outcome"}),

		LookupLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stdnum_lookup_duration_seconds",
			Help:    "Duration of identifier validation and normalization by kind",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"kind"}),

		MARCRecords: f.NewCounterVec(prometheus.CounterOpts{
			Name: "stdnum_marc_records_total",
			Help: "Total MARC records submitted for identifier extraction by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveLookup records one lookup. An empty kind is reported as "unknown".
func (m *Metrics) ObserveLookup(kind, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	m.Lookups.WithLabelValues(kind, outcome).Inc()
	m.LookupLatency.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) IncrementMARCRecord(outcome string) {
	if m != nil {
		m.MARCRecords.WithLabelValues(outcome).Inc()
	}
}
