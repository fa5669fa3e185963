package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec

	// Record store metrics
	RecordsCreated     *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec

	// Aggregate cache metrics
	CacheLookups *prometheus.CounterVec

	// Event metrics
	EventsPublished *prometheus.CounterVec

	// Worker metrics
	StockReportItems *prometheus.GaugeVec
	StockReportRuns  *prometheus.CounterVec
}

// New creates all application metrics and registers them with reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DatabaseOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		RecordsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_created_total",
			Help:      "Total number of records created per collection",
		}, []string{"collection"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Total number of rejected inserts per collection",
		}, []string{"collection"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregate_cache_lookups_total",
			Help:      "Aggregate cache lookups by key and result",
		}, []string{"key", "result"}),

		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Record events handed to the broker",
		}, []string{"event_type", "status"}),

		StockReportItems: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stock_report_low_items",
			Help:      "Entries below threshold in the last stock report",
		}, []string{"kind"}),
		StockReportRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_report_runs_total",
			Help:      "Stock report runs by outcome",
		}, []string{"status"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveDB records the outcome and latency of a database operation.
func (m *Metrics) ObserveDB(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.DatabaseOperations.WithLabelValues(operation, status(err)).Inc()
	m.DatabaseLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) RecordCreated(collection string) {
	if m == nil {
		return
	}
	m.RecordsCreated.WithLabelValues(collection).Inc()
}

func (m *Metrics) RecordRejected(collection string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(collection).Inc()
}

func (m *Metrics) CacheLookup(key string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(key, result).Inc()
}

func (m *Metrics) EventPublished(eventType string, err error) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(eventType, status(err)).Inc()
}

func (m *Metrics) StockReport(lowPharmacy, lowBlood int, err error) {
	if m == nil {
		return
	}
	m.StockReportRuns.WithLabelValues(status(err)).Inc()
	if err != nil {
		return
	}
	m.StockReportItems.WithLabelValues("pharmacy").Set(float64(lowPharmacy))
	m.StockReportItems.WithLabelValues("blood").Set(float64(lowBlood))
}
