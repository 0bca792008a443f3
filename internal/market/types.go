package market

import "time"

// Provenance tags where a price series came from
type Provenance string

const (
	ProvenanceReal   Provenance = "real"   // historical-quote provider
	ProvenanceMock   Provenance = "mock"   // synthetic generator
	ProvenanceVendor Provenance = "vendor" // paid vendor API
)

// Sector names, matching the vendor catalog taxonomy
const (
	SectorTechnology       = "Technology"
	SectorHealthcare       = "Healthcare"
	SectorFinancial        = "Financial Services"
	SectorConsumerCyclical = "Consumer Cyclical"
	SectorCommunication    = "Communication Services"
	SectorIndustrials      = "Industrials"
	SectorConsumerDefense  = "Consumer Defensive"
	SectorEnergy           = "Energy"
	SectorUtilities        = "Utilities"
	SectorRealEstate       = "Real Estate"
	SectorBasicMaterials   = "Basic Materials"
)

// Sectors lists all known sector names
func Sectors() []string {
	return []string{
		SectorTechnology, SectorHealthcare, SectorFinancial,
		SectorConsumerCyclical, SectorCommunication, SectorIndustrials,
		SectorConsumerDefense, SectorEnergy, SectorUtilities,
		SectorRealEstate, SectorBasicMaterials,
	}
}

// Instrument is immutable reference data for one listed equity
type Instrument struct {
	Symbol   string `json:"symbol" yaml:"symbol"`
	Name     string `json:"name" yaml:"name"`
	Sector   string `json:"sector" yaml:"sector"`
	Currency string `json:"currency" yaml:"currency"`
	Exchange string `json:"exchange" yaml:"exchange"`
}

// PriceSeries is a daily close-price history for one symbol.
// Closes are ordered oldest to newest and the current price is the last
// element. Invariant: len(Closes) >= 1 for any series handed out by the
// provider.
type PriceSeries struct {
	Symbol     string     `json:"symbol"`
	Closes     []float64  `json:"historicalPrices"`
	Volume     int64      `json:"volume"`
	Provenance Provenance `json:"dataSource"`
}

// Price returns the current price (last close), or 0 for an empty series
func (s *PriceSeries) Price() float64 {
	if len(s.Closes) == 0 {
		return 0
	}
	return s.Closes[len(s.Closes)-1]
}

// Quote is the wire shape for quote lookups
type Quote struct {
	Symbol        string     `json:"symbol"`
	Price         float64    `json:"price"`
	Volume        int64      `json:"volume"`
	Change        float64    `json:"change"`
	ChangePercent float64    `json:"changePercent"`
	Bid           float64    `json:"bid"`
	Ask           float64    `json:"ask"`
	High52w       float64    `json:"high52w"`
	Low52w        float64    `json:"low52w"`
	Historical    []float64  `json:"historicalPrices"`
	Timestamp     time.Time  `json:"timestamp"`
	Provenance    Provenance `json:"dataSource"`
}

// Fundamentals holds the fundamental ratios for one symbol
type Fundamentals struct {
	Symbol        string     `json:"symbol"`
	Sector        string     `json:"sector"`
	ROIC          float64    `json:"roic"`
	ROE           float64    `json:"roe"`
	DebtToEquity  float64    `json:"debtToEquity"`
	Revenue       int64      `json:"revenue"`
	RevenueGrowth float64    `json:"revenueGrowth"`
	DividendYield float64    `json:"dividendYield"`
	MarketCap     int64      `json:"marketCap"`
	PERatio       float64    `json:"peRatio"`
	PBRatio       float64    `json:"pbRatio"`
	LastUpdated   time.Time  `json:"lastUpdated"`
	Provenance    Provenance `json:"dataSource,omitempty"`
}

// FilterCriteria is the request shape for instrument and screening filters.
// All fields are optional; nil means "use the default" while an explicit
// zero is honoured as-is (minScore=0 really means no score floor).
type FilterCriteria struct {
	MinPrice  *float64 `json:"minPrice,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	MinVolume *int64   `json:"minVolume,omitempty"`
	MinROIC   *float64 `json:"minROIC,omitempty"`
	Sectors   []string `json:"sectors,omitempty"`
	MinScore  *int     `json:"minScore,omitempty"`
}

// ScreeningFilters is FilterCriteria with defaults applied
type ScreeningFilters struct {
	MinPrice  float64  `json:"minPrice"`
	MaxPrice  float64  `json:"maxPrice"`
	MinVolume int64    `json:"minVolume"`
	MinROIC   float64  `json:"minROIC"`
	Sectors   []string `json:"sectors"`
	MinScore  int      `json:"minScore"`
}

// Default filter values
const (
	DefaultMinPrice  = 10.0
	DefaultMaxPrice  = 200.0
	DefaultMinVolume = 100000
	DefaultMinROIC   = 5.0
	DefaultMinScore  = 50
)

// Resolve applies defaults to any fields left unset
func (f *FilterCriteria) Resolve() ScreeningFilters {
	resolved := ScreeningFilters{
		MinPrice:  DefaultMinPrice,
		MaxPrice:  DefaultMaxPrice,
		MinVolume: DefaultMinVolume,
		MinROIC:   DefaultMinROIC,
		Sectors:   []string{},
		MinScore:  DefaultMinScore,
	}

	if f == nil {
		return resolved
	}
	if f.MinPrice != nil {
		resolved.MinPrice = *f.MinPrice
	}
	if f.MaxPrice != nil {
		resolved.MaxPrice = *f.MaxPrice
	}
	if f.MinVolume != nil {
		resolved.MinVolume = *f.MinVolume
	}
	if f.MinROIC != nil {
		resolved.MinROIC = *f.MinROIC
	}
	if f.Sectors != nil {
		resolved.Sectors = f.Sectors
	}
	if f.MinScore != nil {
		resolved.MinScore = *f.MinScore
	}
	return resolved
}

// MatchesSector reports whether the sector passes the filter set.
// An empty set means no restriction.
func (f *ScreeningFilters) MatchesSector(sector string) bool {
	if len(f.Sectors) == 0 {
		return true
	}
	for _, s := range f.Sectors {
		if s == sector {
			return true
		}
	}
	return false
}

// WheelMetrics carries the wheel-strategy specific sub-metrics of a result
type WheelMetrics struct {
	OptionLiquidity   string  `json:"optionLiquidity"`
	ImpliedVolatility float64 `json:"impliedVolatility"`
	DividendYield     float64 `json:"dividendYield"`
	PutCallRatio      float64 `json:"putCallRatio"`
	WheelSuitability  int     `json:"wheelSuitability"`
}

// ScoreResult is one ranked screening row. Ephemeral, never persisted.
type ScoreResult struct {
	Symbol       string       `json:"symbol"`
	Name         string       `json:"name"`
	Sector       string       `json:"sector"`
	Price        float64      `json:"price"`
	Volume       int64        `json:"volume"`
	ROIC         float64      `json:"roic"`
	ROE          float64      `json:"roe"`
	Debt         float64      `json:"debt"`
	Revenue      int64        `json:"revenue"`
	Volatility   float64      `json:"volatility"`
	Score        int          `json:"score"`
	WheelMetrics WheelMetrics `json:"wheelMetrics"`
	Provenance   Provenance   `json:"dataSource"`
}
