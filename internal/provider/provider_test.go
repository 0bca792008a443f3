package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdro-dev/wheelscreener/internal/market"
	"github.com/pdro-dev/wheelscreener/internal/metrics"
	"github.com/pdro-dev/wheelscreener/internal/synth"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

// fakeHistory serves a fixed series or a fixed error
type fakeHistory struct {
	series *market.PriceSeries
	err    error
	calls  int
}

func (f *fakeHistory) FetchDailyHistory(ctx context.Context, symbol string) (*market.PriceSeries, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	s := *f.series
	s.Symbol = symbol
	return &s, nil
}

// fakeVendor serves a fixed series or a fixed error
type fakeVendor struct {
	enabled bool
	series  *market.PriceSeries
	err     error
	calls   int
}

func (f *fakeVendor) Enabled() bool { return f.enabled }

func (f *fakeVendor) FetchQuote(ctx context.Context, symbol string) (*market.PriceSeries, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	s := *f.series
	s.Symbol = symbol
	return &s, nil
}

func newTestProvider(vendor VendorSource, history HistorySource, collector *metrics.Collector, ttl time.Duration) (*TieredProvider, *SeriesCache) {
	cache := NewSeriesCache(ttl, logger.NewNop())
	p := New(Config{
		Vendor:      vendor,
		History:     history,
		Synthesizer: synth.NewSynthesizer(synth.NewSource(7)),
		Cache:       cache,
		Metrics:     collector,
		Logger:      logger.NewNop(),
	})
	return p, cache
}

func TestFetch_HistoryTierCachesResult(t *testing.T) {
	history := &fakeHistory{series: &market.PriceSeries{
		Closes:     []float64{10, 11, 12},
		Volume:     300000,
		Provenance: market.ProvenanceReal,
	}}
	collector := metrics.NewCollector()
	p, _ := newTestProvider(nil, history, collector, 5*time.Minute)

	got := p.Fetch(context.Background(), "PETR4.SA")

	assert.Equal(t, market.ProvenanceReal, got.Provenance)
	assert.Equal(t, []float64{10, 11, 12}, got.Closes)
	assert.Equal(t, 1, history.calls)

	snap := collector.Snapshot()
	assert.Equal(t, int64(0), snap.CacheHits)
	assert.Equal(t, int64(1), snap.CacheMisses)
}

// Two fetches inside the TTL window must return identical data and
// increment only the hit counter on the second call
func TestFetch_IdempotentWithinTTL(t *testing.T) {
	history := &fakeHistory{series: &market.PriceSeries{
		Closes:     []float64{10, 11, 12},
		Volume:     300000,
		Provenance: market.ProvenanceReal,
	}}
	collector := metrics.NewCollector()
	p, _ := newTestProvider(nil, history, collector, 5*time.Minute)

	first := p.Fetch(context.Background(), "PETR4.SA")
	second := p.Fetch(context.Background(), "PETR4.SA")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, history.calls, "second fetch must be served from cache")

	snap := collector.Snapshot()
	assert.Equal(t, int64(1), snap.CacheHits)
	assert.Equal(t, int64(1), snap.CacheMisses)
}

func TestFetch_TTLExpiryRefetches(t *testing.T) {
	history := &fakeHistory{series: &market.PriceSeries{
		Closes:     []float64{10, 11, 12},
		Provenance: market.ProvenanceReal,
	}}
	collector := metrics.NewCollector()
	p, cache := newTestProvider(nil, history, collector, 5*time.Minute)

	current := time.Now()
	cache.now = func() time.Time { return current }

	p.Fetch(context.Background(), "VALE3.SA")

	current = current.Add(5*time.Minute + time.Second)
	p.Fetch(context.Background(), "VALE3.SA")

	assert.Equal(t, 2, history.calls, "expired entry must trigger a refetch")
	assert.Equal(t, int64(2), collector.Snapshot().CacheMisses)
}

func TestFetch_HistoryFailureFallsBackToSynthesizer(t *testing.T) {
	history := &fakeHistory{err: errors.New("upstream down")}
	collector := metrics.NewCollector()
	p, _ := newTestProvider(nil, history, collector, 5*time.Minute)

	got := p.Fetch(context.Background(), "ITUB4.SA")

	assert.Equal(t, market.ProvenanceMock, got.Provenance)
	require.NotEmpty(t, got.Closes)
	for _, price := range got.Closes {
		assert.GreaterOrEqual(t, price, 1.0)
	}
	assert.Equal(t, int64(1), collector.Snapshot().HistoryFailures)
}

func TestFetch_SyntheticSeriesIsCached(t *testing.T) {
	history := &fakeHistory{err: errors.New("upstream down")}
	collector := metrics.NewCollector()
	p, _ := newTestProvider(nil, history, collector, 5*time.Minute)

	first := p.Fetch(context.Background(), "MGLU3.SA")
	second := p.Fetch(context.Background(), "MGLU3.SA")

	// no new random draw within the TTL window
	assert.Equal(t, first, second)
	assert.Equal(t, 1, history.calls)
	assert.Equal(t, int64(1), collector.Snapshot().CacheHits)
}

func TestFetch_VendorTierWinsWhenEnabled(t *testing.T) {
	vendor := &fakeVendor{enabled: true, series: &market.PriceSeries{
		Closes:     []float64{42, 43},
		Provenance: market.ProvenanceVendor,
	}}
	history := &fakeHistory{series: &market.PriceSeries{Closes: []float64{10}, Provenance: market.ProvenanceReal}}
	collector := metrics.NewCollector()
	p, _ := newTestProvider(vendor, history, collector, 5*time.Minute)

	got := p.Fetch(context.Background(), "BBAS3.SA")

	assert.Equal(t, market.ProvenanceVendor, got.Provenance)
	assert.Equal(t, 0, history.calls)
}

func TestFetch_VendorFailureFallsThrough(t *testing.T) {
	vendor := &fakeVendor{enabled: true, err: errors.New("401")}
	history := &fakeHistory{series: &market.PriceSeries{
		Closes:     []float64{10, 11},
		Provenance: market.ProvenanceReal,
	}}
	collector := metrics.NewCollector()
	p, _ := newTestProvider(vendor, history, collector, 5*time.Minute)

	got := p.Fetch(context.Background(), "WEGE3.SA")

	assert.Equal(t, market.ProvenanceReal, got.Provenance)
	assert.Equal(t, int64(1), collector.Snapshot().VendorFailures)
}

func TestFetch_DisabledVendorIsSkipped(t *testing.T) {
	vendor := &fakeVendor{enabled: false}
	history := &fakeHistory{series: &market.PriceSeries{Closes: []float64{10}, Provenance: market.ProvenanceReal}}
	p, _ := newTestProvider(vendor, history, metrics.NewCollector(), 5*time.Minute)

	p.Fetch(context.Background(), "ABEV3.SA")

	assert.Equal(t, 0, vendor.calls)
	assert.False(t, p.VendorAvailable())
}

func TestCacheAccessors(t *testing.T) {
	history := &fakeHistory{series: &market.PriceSeries{Closes: []float64{10}, Provenance: market.ProvenanceReal}}
	p, _ := newTestProvider(nil, history, metrics.NewCollector(), 5*time.Minute)

	assert.Equal(t, 0, p.CacheSize())

	p.Fetch(context.Background(), "VALE3.SA")
	p.Fetch(context.Background(), "ABEV3.SA")

	assert.Equal(t, 2, p.CacheSize())
	assert.Equal(t, []string{"ABEV3.SA", "VALE3.SA"}, p.CacheKeys())
}
