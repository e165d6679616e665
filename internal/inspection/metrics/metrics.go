package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the inspection module.
// Tracks inspection/detail creation counts and recording path duration.
type Metrics struct {
	InspectionsCreated prometheus.Counter
	DetailsRecorded    prometheus.Counter
	DetailsRejected    prometheus.Counter
	AddDetailDuration  prometheus.Histogram
}

// New creates a Metrics instance with all inspection module metrics registered.
func New() *Metrics {
	return &Metrics{
		InspectionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vigia_inspections_created_total",
			Help: "Total number of inspections created",
		}),
		DetailsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vigia_inspection_details_recorded_total",
			Help: "Total number of inspection details recorded",
		}),
		DetailsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vigia_inspection_details_rejected_total",
			Help: "Total number of details rejected by reference validation",
		}),
		AddDetailDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vigia_inspection_add_detail_duration_seconds",
			Help:    "Duration of AddDetail operations (reference resolution path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementInspectionsCreated records a successful inspection creation.
func (m *Metrics) IncrementInspectionsCreated() {
	if m != nil {
		m.InspectionsCreated.Inc()
	}
}

// IncrementDetailsRecorded records a successfully persisted detail.
func (m *Metrics) IncrementDetailsRecorded() {
	if m != nil {
		m.DetailsRecorded.Inc()
	}
}

// IncrementDetailsRejected records a detail turned away by reference checks.
func (m *Metrics) IncrementDetailsRejected() {
	if m != nil {
		m.DetailsRejected.Inc()
	}
}

// ObserveAddDetail records the duration of an AddDetail operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAddDetail(start time.Time) {
	if m != nil {
		m.AddDetailDuration.Observe(time.Since(start).Seconds())
	}
}
