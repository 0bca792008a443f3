package handlers

import (
	"net/http"
	"time"

	"github.com/pdro-dev/wheelscreener/internal/metrics"
)

// ProviderStats is the provider surface the metrics endpoint reports on
type ProviderStats interface {
	CacheSize() int
	CacheKeys() []string
	VendorAvailable() bool
}

// MetricsHandler serves the JSON process-counter snapshot
type MetricsHandler struct {
	collector *metrics.Collector
	provider  ProviderStats
}

func NewMetricsHandler(collector *metrics.Collector, provider ProviderStats) *MetricsHandler {
	return &MetricsHandler{
		collector: collector,
		provider:  provider,
	}
}

// Get returns request counters, cache state and provider availability.
// GET /api/metrics
func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	snapshot := h.collector.Snapshot()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"metrics": snapshot,
		"cache": map[string]interface{}{
			"size": h.provider.CacheSize(),
			"keys": h.provider.CacheKeys(),
		},
		"providers": map[string]bool{
			"vendor":    h.provider.VendorAvailable(),
			"history":   true,
			"synthetic": true,
		},
		"timestamp": time.Now().UTC(),
	})
}
