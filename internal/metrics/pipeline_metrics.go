// Package metrics defines results pipeline metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline counter vectors
var (
	ResultsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "results_skipped_total",
		Help:      "Results excluded from the fastest-time scan by reason",
	}, []string{"reason"})
	EventsAnalyzedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_analyzed_total",
		Help:      "Events analyzed by event and whether a fastest time was found",
	}, []string{"event", "found"})
	ChartsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "charts_total",
		Help:      "Progression charts by outcome",
	}, []string{"outcome"})
)

// RecordResultsSkipped adds skipped results for a reason.
// reason should be one of: "non_finish", "malformed", "unknown_meet", "undated_meet", "other"
func RecordResultsSkipped(reason string, count int) {
	if count <= 0 {
		return
	}
	ResultsSkippedTotal.WithLabelValues(reason).Add(float64(count))
}

// RecordEventAnalyzed records one analyzed event.
func RecordEventAnalyzed(event string, found bool) {
	label := "false"
	if found {
		label = "true"
	}
	EventsAnalyzedTotal.WithLabelValues(event, label).Inc()
}

// RecordChart records a chart outcome.
// outcome should be one of: "rendered", "skipped", "failed"
func RecordChart(outcome string) {
	ChartsTotal.WithLabelValues(outcome).Inc()
}
