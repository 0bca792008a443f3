package screening

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pdro-dev/wheelscreener/internal/audit"
	"github.com/pdro-dev/wheelscreener/internal/market"
	"github.com/pdro-dev/wheelscreener/internal/metrics"
	"github.com/pdro-dev/wheelscreener/internal/synth"
	"github.com/pdro-dev/wheelscreener/internal/universe"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
	"github.com/pdro-dev/wheelscreener/pkg/redis"
)

// SeriesFetcher resolves a price series for one symbol. It always
// succeeds; the tiered provider synthesizes when every upstream fails.
type SeriesFetcher interface {
	Fetch(ctx context.Context, symbol string) market.PriceSeries
}

// FundamentalsVendor is an optional paid upstream for fundamentals
type FundamentalsVendor interface {
	Enabled() bool
	FetchFundamentals(ctx context.Context, symbol string) (*market.Fundamentals, error)
}

// Orchestrator runs a full screening pass over the universe
type Orchestrator struct {
	universe  *universe.Universe
	provider  SeriesFetcher
	vendor    FundamentalsVendor
	generator *synth.FundamentalsGenerator
	synth     *synth.Synthesizer
	cache     *redis.Cache
	metrics   *metrics.Collector
	audit     audit.Recorder
	logger    *logger.Logger
}

// Config wires an Orchestrator. Vendor, Cache and Audit are optional.
type Config struct {
	Universe  *universe.Universe
	Provider  SeriesFetcher
	Vendor    FundamentalsVendor
	Generator *synth.FundamentalsGenerator
	Synth     *synth.Synthesizer
	Cache     *redis.Cache
	Metrics   *metrics.Collector
	Audit     audit.Recorder
	Logger    *logger.Logger
}

func NewOrchestrator(cfg Config) *Orchestrator {
	rec := cfg.Audit
	if rec == nil {
		rec = audit.NewNop()
	}
	return &Orchestrator{
		universe:  cfg.Universe,
		provider:  cfg.Provider,
		vendor:    cfg.Vendor,
		generator: cfg.Generator,
		synth:     cfg.Synth,
		cache:     cfg.Cache,
		metrics:   cfg.Metrics,
		audit:     rec,
		logger:    cfg.Logger,
	}
}

// Response is the wire shape of one screening run
type Response struct {
	Results       []market.ScoreResult    `json:"results"`
	Total         int                     `json:"total"`
	Filters       market.ScreeningFilters `json:"filters"`
	Timestamp     time.Time               `json:"timestamp"`
	ExecutionTime string                  `json:"executionTime"`
}

// Screen scores every instrument in the universe against the criteria
// and returns the matches ranked by score descending. Ties break on
// symbol ascending so equal-score ordering is deterministic.
func (o *Orchestrator) Screen(ctx context.Context, criteria *market.FilterCriteria) (*Response, error) {
	start := time.Now()
	runID := uuid.NewString()
	filters := criteria.Resolve()

	log := o.logger.WithField("run_id", runID)
	log.WithFields(map[string]interface{}{
		"min_price": filters.MinPrice,
		"max_price": filters.MaxPrice,
		"min_score": filters.MinScore,
		"universe":  o.universe.Len(),
	}).Info("screening started")

	results := make([]market.ScoreResult, 0, o.universe.Len())
	for _, inst := range o.universe.Instruments() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, ok := o.evaluate(ctx, inst, filters)
		if !ok {
			continue
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Symbol < results[j].Symbol
	})

	elapsed := time.Since(start)
	log.WithFields(map[string]interface{}{
		"matched": len(results),
		"elapsed": elapsed.String(),
	}).Info("screening finished")

	if err := o.audit.RecordScreening(ctx, audit.ScreeningRun{
		ID:        runID,
		Filters:   filters,
		Scanned:   o.universe.Len(),
		Matched:   len(results),
		Elapsed:   elapsed,
		StartedAt: start,
	}); err != nil {
		log.WithError(err).Warn("audit record failed")
	}

	return &Response{
		Results:       results,
		Total:         len(results),
		Filters:       filters,
		Timestamp:     time.Now().UTC(),
		ExecutionTime: fmt.Sprintf("%.2fs", elapsed.Seconds()),
	}, nil
}

// evaluate scores one instrument. Price, volume and sector filters run
// before the fundamentals lookup so filtered-out symbols never trigger
// a vendor call.
func (o *Orchestrator) evaluate(ctx context.Context, inst market.Instrument, filters market.ScreeningFilters) (market.ScoreResult, bool) {
	series := o.provider.Fetch(ctx, inst.Symbol)
	price := series.Price()

	if price < filters.MinPrice || price > filters.MaxPrice {
		return market.ScoreResult{}, false
	}
	if series.Volume < filters.MinVolume {
		return market.ScoreResult{}, false
	}
	if !filters.MatchesSector(inst.Sector) {
		return market.ScoreResult{}, false
	}

	fundamentals := o.Fundamentals(ctx, inst)
	if fundamentals.ROIC < filters.MinROIC {
		return market.ScoreResult{}, false
	}

	score := Score(series, fundamentals, filters)
	if score < filters.MinScore {
		return market.ScoreResult{}, false
	}

	volatility := Volatility(series.Closes)

	return market.ScoreResult{
		Symbol:     inst.Symbol,
		Name:       inst.Name,
		Sector:     inst.Sector,
		Price:      round2(price),
		Volume:     series.Volume,
		ROIC:       fundamentals.ROIC,
		ROE:        fundamentals.ROE,
		Debt:       fundamentals.DebtToEquity,
		Revenue:    fundamentals.Revenue,
		Volatility: round3(volatility),
		Score:      score,
		WheelMetrics: market.WheelMetrics{
			OptionLiquidity:   OptionLiquidity(series.Volume),
			ImpliedVolatility: round3(volatility * 1.2),
			DividendYield:     fundamentals.DividendYield,
			PutCallRatio:      o.synth.PutCallRatio(),
			WheelSuitability:  WheelSuitability(inst, series, fundamentals),
		},
		Provenance: series.Provenance,
	}, true
}

// Fundamentals resolves fundamentals for one instrument: Redis cache
// first, then the vendor when credentials are configured, finally the
// sector-conditioned generator. Never fails.
func (o *Orchestrator) Fundamentals(ctx context.Context, inst market.Instrument) market.Fundamentals {
	key := redis.FundamentalsKey(inst.Symbol)

	if o.cache != nil {
		var cached market.Fundamentals
		if ok, err := o.cache.Get(ctx, key, &cached); err == nil && ok {
			return cached
		}
	}

	if o.vendor != nil && o.vendor.Enabled() {
		f, err := o.vendor.FetchFundamentals(ctx, inst.Symbol)
		if err == nil {
			if o.cache != nil {
				if cerr := o.cache.Set(ctx, key, f, redis.TTLFundamentals); cerr != nil {
					o.logger.WithError(cerr).WithField("symbol", inst.Symbol).Warn("fundamentals cache write failed")
				}
			}
			return *f
		}
		o.metrics.VendorFailure()
		o.logger.WithError(err).WithField("symbol", inst.Symbol).Warn("vendor fundamentals failed, generating")
	}

	return o.generator.Generate(inst.Symbol, inst.Sector)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
