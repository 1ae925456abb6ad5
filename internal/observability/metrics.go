package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// reconciliation run.
type Metrics struct {
	MessagesScanned prometheus.Counter
	ReportsReceived prometheus.Counter
	ReportsMissing  prometheus.Counter
	DatesProcessed  prometheus.Counter
	LedgerErrors    prometheus.Counter
	RunActive       prometheus.Gauge

	DateProcessingDuration prometheus.Histogram
	WindowSize             prometheus.Histogram
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mail_monitor",
			Name:      "messages_scanned_total",
			Help:      "Total mailbox messages pulled into receipt windows.",
		}),
		ReportsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mail_monitor",
			Name:      "reports_received_total",
			Help:      "Station-days confirmed as received.",
		}),
		ReportsMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mail_monitor",
			Name:      "reports_missing_total",
			Help:      "Station-days with no confirmed report.",
		}),
		DatesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mail_monitor",
			Name:      "dates_processed_total",
			Help:      "Target dates fully reconciled and persisted.",
		}),
		LedgerErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mail_monitor",
			Name:      "ledger_errors_total",
			Help:      "Ledger read or write failures.",
		}),
		RunActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mail_monitor",
			Name:      "run_active",
			Help:      "1 while a reconciliation run is in progress.",
		}),
		DateProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mail_monitor",
			Name:      "date_processing_duration_seconds",
			Help:      "Duration of one target date's window-scan-merge-persist cycle.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		WindowSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mail_monitor",
			Name:      "window_size",
			Help:      "Messages returned per receipt-time window.",
			Buckets:   []float64{0, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
	}

	prometheus.MustRegister(
		m.MessagesScanned,
		m.ReportsReceived,
		m.ReportsMissing,
		m.DatesProcessed,
		m.LedgerErrors,
		m.RunActive,
		m.DateProcessingDuration,
		m.WindowSize,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesScanned:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mail_monitor", Name: "messages_scanned_total"}),
		ReportsReceived:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mail_monitor", Name: "reports_received_total"}),
		ReportsMissing:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mail_monitor", Name: "reports_missing_total"}),
		DatesProcessed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mail_monitor", Name: "dates_processed_total"}),
		LedgerErrors:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mail_monitor", Name: "ledger_errors_total"}),
		RunActive:              prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "mail_monitor", Name: "run_active"}),
		DateProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "mail_monitor", Name: "date_processing_duration_seconds"}),
		WindowSize:             prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "mail_monitor", Name: "window_size"}),
	}
}
