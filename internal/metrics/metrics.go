// Package metrics provides the centralized Prometheus registry for track-report.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "track_report"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ReportsGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of HTML reports written",
	})
	RefreshRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_runs_total",
		Help:      "Total number of scheduled refresh runs by status",
	}, []string{"status"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of HTTP circuit breaker trips",
	})
)

// Gauge metrics
var (
	LastRefreshTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix time of the last successful refresh",
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ReportsGeneratedTotal)
		registry.MustRegister(RefreshRunsTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(LastRefreshTimestamp)

		// Fetch metrics
		registry.MustRegister(DocumentsFetchedTotal)
		registry.MustRegister(FetchErrorsTotal)
		registry.MustRegister(FetchDuration)

		// Pipeline metrics
		registry.MustRegister(ResultsSkippedTotal)
		registry.MustRegister(EventsAnalyzedTotal)
		registry.MustRegister(ChartsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, GetRegistry())
}

// RecordReportGenerated records a written report.
func RecordReportGenerated() {
	ReportsGeneratedTotal.Inc()
}

// RecordRefresh records a scheduled refresh run.
// status should be one of: "success", "failure"
func RecordRefresh(status string, unixSeconds float64) {
	RefreshRunsTotal.WithLabelValues(status).Inc()
	if status == "success" {
		LastRefreshTimestamp.Set(unixSeconds)
	}
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}
