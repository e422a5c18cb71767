package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Backend, report and cache Prometheus metrics.
var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "backend_requests_total",
			Help:      "Total number of inventory backend requests",
		},
		[]string{"method", "status"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "inventory",
			Name:      "backend_request_duration_seconds",
			Help:      "Inventory backend request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method"},
	)

	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "reports_total",
			Help:      "Report and export triggers by outcome",
		},
		[]string{"kind", "outcome"},
	)

	ReportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "inventory",
			Name:      "report_duration_seconds",
			Help:      "Report generation duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"kind"},
	)

	ReportRecords = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "inventory",
			Name:      "report_records",
			Help:      "Number of records written per report",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
		},
		[]string{"kind"},
	)

	RefDataCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "refdata_cache_total",
			Help:      "Reference data cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss" / "error"
	)
)

var registerOnce sync.Once

// RegisterBackendMetrics registers backend, report and cache metrics. Safe to call more than once.
func RegisterBackendMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(BackendRequestsTotal)
		prometheus.MustRegister(BackendRequestDuration)
		prometheus.MustRegister(ReportsTotal)
		prometheus.MustRegister(ReportDuration)
		prometheus.MustRegister(ReportRecords)
		prometheus.MustRegister(RefDataCacheTotal)
	})
}
