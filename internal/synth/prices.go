package synth

// Synthesizer generates statistically plausible daily price paths for
// symbols with no real data. Each call produces an independent random walk
// with drift and mean reversion; nothing is persisted between calls.
type Synthesizer struct {
	src *Source
}

// DefaultHorizonDays is one trading year of daily closes
const DefaultHorizonDays = 252

// Random-walk parameters, tuned for Brazilian equity behaviour
const (
	basePriceMin    = 10.0
	basePriceMax    = 200.0
	dailyReturnMean = 0.0005 // slight positive drift
	dailyVolMin     = 0.015
	dailyVolMax     = 0.045
	reversionFactor = -0.001
	priceFloor      = 1.0
)

// Synthetic volume bounds
const (
	volumeMin = 50000
	volumeMax = 5000000
)

// NewSynthesizer creates a synthesizer drawing from src
func NewSynthesizer(src *Source) *Synthesizer {
	return &Synthesizer{src: src}
}

// Generate produces horizonDays positive daily closes, oldest to newest.
// The base price and per-symbol daily volatility are drawn once per call;
// each step adds a normal shock plus a mean-reversion pull toward the base.
// Prices are floored at 1.0 so the series is never non-positive.
func (s *Synthesizer) Generate(symbol string, horizonDays int) []float64 {
	if horizonDays < 1 {
		horizonDays = DefaultHorizonDays
	}

	basePrice := s.src.Uniform(basePriceMin, basePriceMax)
	dailyVol := s.src.Uniform(dailyVolMin, dailyVolMax)

	prices := make([]float64, 0, horizonDays)
	prices = append(prices, basePrice)

	for i := 0; i < horizonDays-1; i++ {
		last := prices[len(prices)-1]

		shock := dailyReturnMean + dailyVol*s.src.NormFloat64()
		reversion := reversionFactor * (last - basePrice) / basePrice

		next := last * (1 + shock + reversion)
		if next < priceFloor {
			next = priceFloor
		}
		prices = append(prices, next)
	}

	return prices
}

// Volume draws a plausible daily volume for a synthetic series
func (s *Synthesizer) Volume() int64 {
	return s.src.Int64Between(volumeMin, volumeMax)
}
