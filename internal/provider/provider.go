package provider

import (
	"context"
	"time"

	"github.com/pdro-dev/wheelscreener/internal/market"
	"github.com/pdro-dev/wheelscreener/internal/metrics"
	"github.com/pdro-dev/wheelscreener/internal/synth"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

// VendorSource is the paid-API tier, queried first when configured
type VendorSource interface {
	Enabled() bool
	FetchQuote(ctx context.Context, symbol string) (*market.PriceSeries, error)
}

// HistorySource is the free historical-quote tier
type HistorySource interface {
	FetchDailyHistory(ctx context.Context, symbol string) (*market.PriceSeries, error)
}

// TieredProvider resolves a price series through an ordered chain of tiers:
// vendor API, TTL cache, historical-quote API, synthesizer. Every branch
// resolves to a usable series; the synthesizer is the guaranteed terminal
// tier, so Fetch never returns an error. The provider owns the cache and is
// the only writer to it.
type TieredProvider struct {
	vendor      VendorSource // may be nil
	history     HistorySource
	synthesizer *synth.Synthesizer
	cache       *SeriesCache
	metrics     *metrics.Collector
	logger      *logger.Logger
	callTimeout time.Duration
}

// Config wires a TieredProvider
type Config struct {
	Vendor      VendorSource
	History     HistorySource
	Synthesizer *synth.Synthesizer
	Cache       *SeriesCache
	Metrics     *metrics.Collector
	Logger      *logger.Logger
	CallTimeout time.Duration
}

// defaultCallTimeout bounds each upstream call; a timeout is just a
// provider failure that triggers the next tier
const defaultCallTimeout = 10 * time.Second

// New creates a tiered provider
func New(cfg Config) *TieredProvider {
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &TieredProvider{
		vendor:      cfg.Vendor,
		history:     cfg.History,
		synthesizer: cfg.Synthesizer,
		cache:       cfg.Cache,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		callTimeout: timeout,
	}
}

// tierResult is the tagged outcome of one tier attempt
type tierResult struct {
	series market.PriceSeries
	err    error
}

// Fetch resolves a price series for symbol. Resolution order: vendor (when
// configured), fresh cache entry, historical API, synthesizer. Vendor data
// is live and bypasses the cache; historical and synthetic series are
// cached with the current capture timestamp.
func (p *TieredProvider) Fetch(ctx context.Context, symbol string) market.PriceSeries {
	// Tier 1: vendor API, only with valid credentials
	if p.vendor != nil && p.vendor.Enabled() {
		if result := p.fetchVendor(ctx, symbol); result.err == nil {
			return result.series
		}
	}

	// Tier 2: cache check before any further network call
	if cached, ok := p.cache.Get(symbol); ok {
		p.metrics.CacheHit()
		return cached
	}
	p.metrics.CacheMiss()

	// Tier 3: historical-quote API
	if result := p.fetchHistory(ctx, symbol); result.err == nil {
		p.cache.Put(symbol, result.series)
		return result.series
	}

	// Tier 4: synthesizer, cannot fail
	series := p.synthesize(symbol)
	p.cache.Put(symbol, series)
	return series
}

// fetchVendor attempts the vendor tier, accounting failures
func (p *TieredProvider) fetchVendor(ctx context.Context, symbol string) tierResult {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	series, err := p.vendor.FetchQuote(callCtx, symbol)
	if err != nil {
		p.metrics.VendorFailure()
		p.logger.WithError(err).WithField("symbol", symbol).Warn("Vendor tier failed")
		return tierResult{err: err}
	}
	return tierResult{series: *series}
}

// fetchHistory attempts the historical-quote tier, accounting failures
func (p *TieredProvider) fetchHistory(ctx context.Context, symbol string) tierResult {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	series, err := p.history.FetchDailyHistory(callCtx, symbol)
	if err != nil {
		p.metrics.HistoryFailure()
		p.logger.WithError(err).WithField("symbol", symbol).Warn("Historical tier failed, falling back to synthesizer")
		return tierResult{err: err}
	}
	return tierResult{series: *series}
}

// synthesize builds a fresh mock series for symbol
func (p *TieredProvider) synthesize(symbol string) market.PriceSeries {
	return market.PriceSeries{
		Symbol:     symbol,
		Closes:     p.synthesizer.Generate(symbol, synth.DefaultHorizonDays),
		Volume:     p.synthesizer.Volume(),
		Provenance: market.ProvenanceMock,
	}
}

// CacheSize returns the number of cached series
func (p *TieredProvider) CacheSize() int {
	return p.cache.Len()
}

// CacheKeys returns the cached symbols in lexical order
func (p *TieredProvider) CacheKeys() []string {
	return p.cache.Keys()
}

// VendorAvailable reports whether the vendor tier is configured
func (p *TieredProvider) VendorAvailable() bool {
	return p.vendor != nil && p.vendor.Enabled()
}
