package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for aggregation metrics.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Metrics provides observability for the analytics module.
// Tracks aggregation latency, data-quality problems in the read model and
// catalog cache effectiveness. All methods are safe on a nil receiver.
type Metrics struct {
	AggregationDuration *prometheus.HistogramVec
	AggregationsTotal   *prometheus.CounterVec
	MalformedArrays     *prometheus.CounterVec
	CatalogCache        *prometheus.CounterVec
}

// New creates the analytics metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AggregationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qara_aggregation_duration_seconds",
			Help:    "Duration of analytics aggregations including store reads",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
		AggregationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qara_aggregations_total",
			Help: "Total analytics aggregations by operation and outcome",
		}, []string{"operation", "outcome"}),
		MalformedArrays: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qara_malformed_id_arrays_total",
			Help: "Audit id-array columns that could not be decoded and were read as empty",
		}, []string{"column"}),
		CatalogCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qara_catalog_cache_requests_total",
			Help: "Catalog cache lookups by catalog and result (hit, miss, error, bypass)",
		}, []string{"catalog", "result"}),
	}
}

// ObserveAggregation records one aggregation. Call with time.Now() taken at the start.
func (m *Metrics) ObserveAggregation(operation, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.AggregationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.AggregationsTotal.WithLabelValues(operation, outcome).Inc()
}

// IncMalformedArray records an undecodable id-array column.
func (m *Metrics) IncMalformedArray(column string) {
	if m == nil {
		return
	}
	m.MalformedArrays.WithLabelValues(column).Inc()
}

// IncCacheHit records a catalog cache hit.
func (m *Metrics) IncCacheHit(catalog string) {
	m.incCache(catalog, "hit")
}

// IncCacheMiss records a catalog cache miss.
func (m *Metrics) IncCacheMiss(catalog string) {
	m.incCache(catalog, "miss")
}

// IncCacheError records a failed cache read or write.
func (m *Metrics) IncCacheError(catalog string) {
	m.incCache(catalog, "error")
}

// IncCacheBypass records an id resolved from the store without a Redis read
// because the cache breaker was open.
func (m *Metrics) IncCacheBypass(catalog string) {
	m.incCache(catalog, "bypass")
}

func (m *Metrics) incCache(catalog, result string) {
	if m == nil {
		return
	}
	m.CatalogCache.WithLabelValues(catalog, result).Inc()
}
