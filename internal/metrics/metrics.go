// Package metrics records extraction outcomes with Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"securexid/internal/port"
)

// Metrics provides observability for the extraction service.
type Metrics struct {
	// Extractions by classified type and detected side
	Extractions *prometheus.CounterVec

	// How many fields each extraction populated, by type
	FieldsPopulated *prometheus.HistogramVec

	// Wall time of one extraction call
	Duration prometheus.Histogram
}

// New creates a Metrics instance with its collectors registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Extractions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "securexid_extractions_total",
			Help: "Total extractions by document type and side",
		}, []string{"document_type", "side"}),

		FieldsPopulated: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "securexid_extraction_fields_populated",
			Help:    "Number of fields populated per extraction by document type",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		}, []string{"document_type"}),

		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "securexid_extraction_duration_seconds",
			Help:    "Duration of one extraction call",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
	}
}

// RecordExtraction implements port.ExtractionRecorder.
func (m *Metrics) RecordExtraction(obs port.ExtractionObservation) {
	if m == nil {
		return
	}
	dt := string(obs.DocumentType)
	m.Extractions.WithLabelValues(dt, string(obs.Side)).Inc()
	m.FieldsPopulated.WithLabelValues(dt).Observe(float64(obs.PopulatedFields))
	m.ObserveDuration(obs.Duration)
}

// ObserveDuration records the duration of one extraction.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m != nil {
		m.Duration.Observe(d.Seconds())
	}
}
