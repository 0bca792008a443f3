package synth

import (
	"math"
	"time"

	"github.com/pdro-dev/wheelscreener/internal/market"
)

// FundamentalsGenerator produces sector-conditioned synthetic fundamentals
// when the vendor API is unavailable. Every invocation is a fresh sample.
type FundamentalsGenerator struct {
	src *Source
	now func() time.Time
}

// metricRange is a (min,max) pair for one uniform draw
type metricRange struct {
	min, max float64
}

// sectorRanges holds the sector-specific draw ranges. ROIC and ROE are in
// percent, debt is a debt-to-equity ratio.
type sectorRanges struct {
	roic metricRange
	roe  metricRange
	debt metricRange
}

// sectorTable maps sector name to draw ranges. Unknown sectors fall back
// to the Technology row.
var sectorTable = map[string]sectorRanges{
	market.SectorTechnology:       {roic: metricRange{8, 25}, roe: metricRange{10, 30}, debt: metricRange{0.1, 0.8}},
	market.SectorFinancial:        {roic: metricRange{5, 15}, roe: metricRange{8, 20}, debt: metricRange{0.2, 1.5}},
	market.SectorHealthcare:       {roic: metricRange{10, 20}, roe: metricRange{12, 25}, debt: metricRange{0.2, 0.9}},
	market.SectorEnergy:           {roic: metricRange{3, 12}, roe: metricRange{5, 18}, debt: metricRange{0.3, 1.2}},
	market.SectorConsumerCyclical: {roic: metricRange{6, 18}, roe: metricRange{8, 22}, debt: metricRange{0.2, 1.0}},
	market.SectorConsumerDefense:  {roic: metricRange{8, 16}, roe: metricRange{10, 20}, debt: metricRange{0.3, 0.8}},
	market.SectorUtilities:        {roic: metricRange{4, 10}, roe: metricRange{6, 15}, debt: metricRange{0.5, 1.5}},
	market.SectorBasicMaterials:   {roic: metricRange{5, 15}, roe: metricRange{8, 20}, debt: metricRange{0.4, 1.1}},
	market.SectorIndustrials:      {roic: metricRange{6, 16}, roe: metricRange{9, 22}, debt: metricRange{0.3, 1.0}},
	market.SectorRealEstate:       {roic: metricRange{3, 8}, roe: metricRange{5, 12}, debt: metricRange{0.6, 2.0}},
	market.SectorCommunication:    {roic: metricRange{7, 18}, roe: metricRange{10, 25}, debt: metricRange{0.4, 1.2}},
}

// Sector-independent draw bounds
const (
	revenueMin       = 500_000_000
	revenueMax       = 50_000_000_000
	revenueGrowthMin = -0.15
	revenueGrowthMax = 0.30
	dividendYieldMax = 0.08
	marketCapMin     = 1_000_000_000
	marketCapMax     = 500_000_000_000
	peRatioMin       = 5.0
	peRatioMax       = 35.0
	pbRatioMin       = 0.5
	pbRatioMax       = 5.0
)

// NewFundamentalsGenerator creates a generator drawing from src
func NewFundamentalsGenerator(src *Source) *FundamentalsGenerator {
	return &FundamentalsGenerator{
		src: src,
		now: time.Now,
	}
}

// Generate samples fundamentals for symbol in the given sector
func (g *FundamentalsGenerator) Generate(symbol, sector string) market.Fundamentals {
	ranges, ok := sectorTable[sector]
	if !ok {
		ranges = sectorTable[market.SectorTechnology]
	}

	return market.Fundamentals{
		Symbol:        symbol,
		Sector:        sector,
		ROIC:          round(g.src.Uniform(ranges.roic.min, ranges.roic.max), 2),
		ROE:           round(g.src.Uniform(ranges.roe.min, ranges.roe.max), 2),
		DebtToEquity:  round(g.src.Uniform(ranges.debt.min, ranges.debt.max), 2),
		Revenue:       g.src.Int64Between(revenueMin, revenueMax),
		RevenueGrowth: round(g.src.Uniform(revenueGrowthMin, revenueGrowthMax), 3),
		DividendYield: round(g.src.Uniform(0, dividendYieldMax), 3),
		MarketCap:     g.src.Int64Between(marketCapMin, marketCapMax),
		PERatio:       round(g.src.Uniform(peRatioMin, peRatioMax), 2),
		PBRatio:       round(g.src.Uniform(pbRatioMin, pbRatioMax), 2),
		LastUpdated:   g.now(),
		Provenance:    market.ProvenanceMock,
	}
}

// round rounds to the given number of decimal places
func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
