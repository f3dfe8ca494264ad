// Package metrics defines athlete document fetch metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Fetch counter vectors
var (
	DocumentsFetchedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_fetched_total",
		Help:      "Athlete documents served by source layer",
	}, []string{"source"})
	FetchErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_errors_total",
		Help:      "Failed athlete document fetches by error code",
	}, []string{"code"})
)

// Fetch histograms
var (
	FetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of athletic.net requests in seconds",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
)

// RecordDocumentFetched records a document served from a cache layer or the network.
// source should be one of: "memory", "disk", "network"
func RecordDocumentFetched(source string) {
	DocumentsFetchedTotal.WithLabelValues(source).Inc()
}

// RecordFetchError records a failed fetch by data source error code.
func RecordFetchError(code string) {
	FetchErrorsTotal.WithLabelValues(code).Inc()
}

// RecordFetchDuration records the duration of a network fetch.
func RecordFetchDuration(durationSeconds float64) {
	FetchDuration.Observe(durationSeconds)
}
