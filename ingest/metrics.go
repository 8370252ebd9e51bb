package ingest

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vegasq/inspectcat/model"
)

// Metrics counts conversion outcomes. A nil *Metrics records nothing.
type Metrics struct {
	written *prometheus.CounterVec
	skipped *prometheus.CounterVec
}

// NewMetrics creates the conversion counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		written: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "inspectcat",
				Name:      "records_written_total",
				Help:      "Records written to a dataset, by entity.",
			},
			[]string{"entity"},
		),
		skipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "inspectcat",
				Name:      "records_skipped_total",
				Help:      "Source rows skipped during conversion, by entity and failure kind.",
			},
			[]string{"entity", "kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.written, m.skipped)
	}
	return m
}

func (m *Metrics) recordWritten(entity string) {
	if m == nil {
		return
	}
	m.written.WithLabelValues(entity).Inc()
}

func (m *Metrics) recordSkipped(entity string, kind model.Kind) {
	if m == nil {
		return
	}
	m.skipped.WithLabelValues(entity, string(kind)).Inc()
}
