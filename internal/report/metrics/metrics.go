package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the report module.
type Metrics struct {
	// Full pending report scan latency
	PendingScanDuration prometheus.Histogram

	// Entries returned per pending report
	PendingEntries prometheus.Histogram

	// Details skipped because their references no longer resolve
	OrphanedDetails prometheus.Counter
}

// New creates a new Metrics instance with all report module metrics registered.
func New() *Metrics {
	return &Metrics{
		PendingScanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vigia_report_pending_scan_duration_seconds",
			Help:    "Duration of full pending report scans",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		PendingEntries: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vigia_report_pending_entries",
			Help:    "Number of entries returned per pending report",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		}),
		OrphanedDetails: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vigia_report_orphaned_details_total",
			Help: "Details skipped during report scans because their item or condition no longer resolves",
		}),
	}
}

// ObservePendingScan records the duration and size of a pending report scan.
func (m *Metrics) ObservePendingScan(start time.Time, entries int) {
	if m != nil {
		m.PendingScanDuration.Observe(time.Since(start).Seconds())
		m.PendingEntries.Observe(float64(entries))
	}
}

// IncrementOrphanedDetails records a detail omitted for a dangling reference.
func (m *Metrics) IncrementOrphanedDetails() {
	if m != nil {
		m.OrphanedDetails.Inc()
	}
}
