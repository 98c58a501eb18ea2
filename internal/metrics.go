package internal

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts API requests by operation and outcome
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cvss_updater",
			Name:      "requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"operation", "outcome"},
	)

	// FindingsTotal counts findings handled by the rescoring pipeline
	FindingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cvss_updater",
			Name:      "findings_total",
			Help:      "Total number of findings processed by rescoring",
		},
		[]string{"outcome"},
	)

	// ScoreDelta observes adjusted minus original base score
	ScoreDelta = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cvss_updater",
			Name:      "score_delta",
			Help:      "Difference between adjusted and original base score",
			Buckets:   prometheus.LinearBuckets(-10, 1, 21),
		},
	)

	metricsOnce sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// Safe to call more than once.
func InitMetrics() {
	metricsOnce.Do(func() {
		prometheus.DefaultRegisterer.Register(RequestsTotal)
		prometheus.DefaultRegisterer.Register(FindingsTotal)
		prometheus.DefaultRegisterer.Register(ScoreDelta)
	})
}

func observeRequest(operation string, outcome string) {
	RequestsTotal.WithLabelValues(operation, outcome).Inc()
}

func observeRescore(outcome string) {
	FindingsTotal.WithLabelValues(outcome).Inc()
}

func observeScoreDelta(record *AdjustmentRecord) {
	ScoreDelta.Observe(record.AdjustedScore - record.OriginalScore)
}
