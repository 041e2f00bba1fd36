package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics names as constants for consistency.
const (
	MetricSnapshotBuilds    = "catalog_snapshot_builds_total"
	MetricSourceFailures    = "catalog_source_failures_total"
	MetricRecordsAggregated = "catalog_records_aggregated"
	MetricCacheHits         = "catalog_cache_hits_total"
	MetricCacheMisses       = "catalog_cache_misses_total"
	MetricBuildDuration     = "catalog_snapshot_build_seconds"
)

// Metrics contains Prometheus metrics for the catalog.
// All operations are thread-safe.
type Metrics struct {
	snapshotBuilds    prometheus.Counter
	sourceFailures    prometheus.Counter
	recordsAggregated prometheus.Gauge
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	buildDuration     prometheus.Histogram
}

// NewMetrics creates and returns a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		snapshotBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSnapshotBuilds,
			Help: "Total number of candidate snapshot builds",
		}),
		sourceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSourceFailures,
			Help: "Total number of sources that failed to load",
		}),
		recordsAggregated: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricRecordsAggregated,
			Help: "Number of records in the most recent snapshot",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricCacheHits,
			Help: "Total number of snapshot cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricCacheMisses,
			Help: "Total number of snapshot cache misses",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricBuildDuration,
			Help:    "Histogram of snapshot build duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.snapshotBuilds,
		m.sourceFailures,
		m.recordsAggregated,
		m.cacheHits,
		m.cacheMisses,
		m.buildDuration,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// IncSnapshotBuilds increments the snapshot builds counter.
func (m *Metrics) IncSnapshotBuilds() {
	m.snapshotBuilds.Inc()
}

// AddSourceFailures adds to the source failures counter.
func (m *Metrics) AddSourceFailures(n int) {
	m.sourceFailures.Add(float64(n))
}

// SetRecordsAggregated records the size of the latest snapshot.
func (m *Metrics) SetRecordsAggregated(n int) {
	m.recordsAggregated.Set(float64(n))
}

// IncCacheHits increments the cache hits counter.
func (m *Metrics) IncCacheHits() {
	m.cacheHits.Inc()
}

// IncCacheMisses increments the cache misses counter.
func (m *Metrics) IncCacheMisses() {
	m.cacheMisses.Inc()
}

// ObserveBuildDuration records a snapshot build duration sample.
func (m *Metrics) ObserveBuildDuration(seconds float64) {
	m.buildDuration.Observe(seconds)
}
