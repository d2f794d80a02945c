// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	RecordsParsed   prometheus.Counter
	RecordsIngested prometheus.Counter
	IngestErrors    *prometheus.CounterVec

	// Engine metrics
	ViewsComputed       *prometheus.CounterVec
	ViewComputeDuration *prometheus.HistogramVec

	// Reporting metrics
	ReportsGenerated   prometheus.Counter
	SnapshotsPersisted prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates a new Metrics instance with all metrics registered
// on a private registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "retail_metrics_lab"
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		RecordsParsed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_parsed_total",
			Help:      "Number of CSV rows successfully parsed.",
		}),
		RecordsIngested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_ingested_total",
			Help:      "Number of records written to the transaction store.",
		}),
		IngestErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_errors_total",
			Help:      "Ingestion failures by reason.",
		}, []string{"reason"}),

		ViewsComputed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "views_computed_total",
			Help:      "Report views computed, by view name.",
		}, []string{"view"}),
		ViewComputeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_compute_duration_seconds",
			Help:      "Time spent computing each view.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"view"}),

		ReportsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Complete reports generated.",
		}),
		SnapshotsPersisted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_persisted_total",
			Help:      "View snapshot rows persisted to the analytical store.",
		}),

		registry: registry,
	}
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
