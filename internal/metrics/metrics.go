package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the process-wide counters the screening pipeline updates.
// Counters are plain atomics so the JSON metrics endpoint can read exact
// values; the same events are mirrored into a Prometheus registry for
// scraping.
type Collector struct {
	requests        atomic.Int64
	cacheHits       atomic.Int64
	cacheMisses     atomic.Int64
	vendorFailures  atomic.Int64
	historyFailures atomic.Int64 // synthesis fallbacks
	latencyNanos    atomic.Int64

	registry *prometheus.Registry

	promRequests        prometheus.Counter
	promCacheHits       prometheus.Counter
	promCacheMisses     prometheus.Counter
	promProviderErrors  *prometheus.CounterVec
	promRequestDuration prometheus.Histogram
}

// Snapshot is a point-in-time copy of all counters
type Snapshot struct {
	Requests           int64   `json:"requests"`
	CacheHits          int64   `json:"cache_hits"`
	CacheMisses        int64   `json:"cache_misses"`
	VendorFailures     int64   `json:"vendor_failures"`
	HistoryFailures    int64   `json:"history_failures"`
	AvgResponseTimeSec float64 `json:"average_response_time"`
}

// NewCollector creates a collector with its own Prometheus registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		promRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wheelscreener_requests_total",
			Help: "Total number of API requests handled",
		}),
		promCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wheelscreener_cache_hits_total",
			Help: "Total number of quote cache hits",
		}),
		promCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wheelscreener_cache_misses_total",
			Help: "Total number of quote cache misses",
		}),
		promProviderErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wheelscreener_provider_failures_total",
				Help: "Total number of upstream provider failures by tier",
			},
			[]string{"tier"},
		),
		promRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wheelscreener_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}),
	}

	c.registry.MustRegister(
		c.promRequests,
		c.promCacheHits,
		c.promCacheMisses,
		c.promProviderErrors,
		c.promRequestDuration,
	)

	return c
}

// Registry returns the Prometheus registry for the scrape endpoint
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRequest records one handled request and its duration
func (c *Collector) ObserveRequest(d time.Duration) {
	c.requests.Add(1)
	c.latencyNanos.Add(d.Nanoseconds())
	c.promRequests.Inc()
	c.promRequestDuration.Observe(d.Seconds())
}

// CacheHit records a quote cache hit
func (c *Collector) CacheHit() {
	c.cacheHits.Add(1)
	c.promCacheHits.Inc()
}

// CacheMiss records a quote cache miss
func (c *Collector) CacheMiss() {
	c.cacheMisses.Add(1)
	c.promCacheMisses.Inc()
}

// VendorFailure records a failed vendor API call
func (c *Collector) VendorFailure() {
	c.vendorFailures.Add(1)
	c.promProviderErrors.WithLabelValues("vendor").Inc()
}

// HistoryFailure records a failed historical-quote call, i.e. a synthesis
// fallback
func (c *Collector) HistoryFailure() {
	c.historyFailures.Add(1)
	c.promProviderErrors.WithLabelValues("history").Inc()
}

// Snapshot returns a consistent-enough copy of the counters
func (c *Collector) Snapshot() Snapshot {
	requests := c.requests.Load()

	var avg float64
	if requests > 0 {
		avg = time.Duration(c.latencyNanos.Load() / requests).Seconds()
	}

	return Snapshot{
		Requests:           requests,
		CacheHits:          c.cacheHits.Load(),
		CacheMisses:        c.cacheMisses.Load(),
		VendorFailures:     c.vendorFailures.Load(),
		HistoryFailures:    c.historyFailures.Load(),
		AvgResponseTimeSec: avg,
	}
}
