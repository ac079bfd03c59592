package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Account metrics
	AccountsCreated prometheus.Counter

	// Entry metrics
	EntriesRecorded   *prometheus.CounterVec
	EntryAmount       prometheus.Histogram
	InsufficientFunds prometheus.Counter

	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferDuration prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "budget_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		// Entry metrics
		EntriesRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_entries_recorded_total",
				Help: "Total number of entries recorded by category type",
			},
			[]string{"category_type"},
		),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "budget_entry_amount",
			Help:    "Absolute entry amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		InsufficientFunds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "budget_insufficient_funds_total",
			Help: "Total number of entries rejected for insufficient funds",
		}),

		// Transfer metrics
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "budget_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "budget_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "budget_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "budget_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
	}
}
