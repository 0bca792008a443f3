package screening

import (
	"math"

	"github.com/pdro-dev/wheelscreener/internal/market"
)

// Scoring engine: a pure function of (price series, fundamentals, filters)
// to an integer score in [0,100], built from five independently bucketed
// sub-scores. Stateless; every formula degrades to a safe default on short
// or empty series instead of panicking.

// epsilon guards return denominators against division by zero
const epsilon = 1e-8

// defaultVolatility is reported when a series is too short to measure
const defaultVolatility = 0.5

// technicalWindow is the lookback for trend and support analysis
const technicalWindow = 20

// tradingDaysPerYear annualizes daily volatility
const tradingDaysPerYear = 252

// Volatility computes annualized volatility from daily closes.
// Returns 0.5 for series with fewer than 2 points or no valid returns.
func Volatility(prices []float64) float64 {
	if len(prices) < 2 {
		return defaultVolatility
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		base := math.Abs(prices[i-1])
		if base < epsilon {
			base = epsilon
		}
		returns = append(returns, (prices[i]-prices[i-1])/base)
	}

	if len(returns) == 0 {
		return defaultVolatility
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)
}

// Trend computes the OLS slope of price against time index over the
// trailing 20 closes (or fewer), normalized by the window mean price.
// Degenerate inputs (under 2 points, zero regression denominator, zero
// mean) yield 0.
func Trend(prices []float64) float64 {
	window := prices
	if len(window) > technicalWindow {
		window = window[len(window)-technicalWindow:]
	}

	n := len(window)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range window {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	mean := sumY / float64(n)
	if mean == 0 {
		return 0
	}

	slope := (float64(n)*sumXY - sumX*sumY) / denom
	return slope / mean
}

// supportLevel is the minimum of the trailing 20 closes, all closes when
// fewer are available, or 0 for an empty series
func supportLevel(prices []float64) float64 {
	window := prices
	if len(window) > technicalWindow {
		window = window[len(window)-technicalWindow:]
	}
	if len(window) == 0 {
		return 0
	}

	low := window[0]
	for _, p := range window[1:] {
		if p < low {
			low = p
		}
	}
	return low
}

// Score computes the composite wheel score for one candidate
func Score(series market.PriceSeries, fundamentals market.Fundamentals, filters market.ScreeningFilters) int {
	score := roicScore(fundamentals.ROIC) +
		volumeScore(series.Volume, filters.MinVolume) +
		volatilityScore(Volatility(series.Closes)) +
		fundamentalsScore(fundamentals) +
		technicalScore(series)

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// roicScore buckets return on invested capital (max 25)
func roicScore(roic float64) int {
	switch {
	case roic >= 15:
		return 25
	case roic >= 10:
		return 20
	case roic >= 8:
		return 15
	case roic >= 5:
		return 10
	default:
		return 5
	}
}

// volumeScore buckets volume relative to the filter floor (max 20)
func volumeScore(volume, minVolume int64) int {
	if minVolume < 1 {
		minVolume = 1
	}
	ratio := float64(volume) / float64(minVolume)

	switch {
	case ratio >= 10:
		return 20
	case ratio >= 5:
		return 16
	case ratio >= 2:
		return 12
	case ratio >= 1:
		return 8
	default:
		return 4
	}
}

// volatilityScore buckets annualized volatility; lower is better (max 15)
func volatilityScore(volatility float64) int {
	switch {
	case volatility <= 0.15:
		return 15
	case volatility <= 0.25:
		return 12
	case volatility <= 0.35:
		return 9
	case volatility <= 0.45:
		return 6
	default:
		return 3
	}
}

// fundamentalsScore sums three independent buckets: debt/equity, ROE and
// revenue growth (max 8+8+9 = 25)
func fundamentalsScore(f market.Fundamentals) int {
	score := 0

	switch {
	case f.DebtToEquity <= 0.3:
		score += 8
	case f.DebtToEquity <= 0.6:
		score += 6
	case f.DebtToEquity <= 1.0:
		score += 4
	default:
		score += 2
	}

	switch {
	case f.ROE >= 15:
		score += 8
	case f.ROE >= 10:
		score += 6
	case f.ROE >= 5:
		score += 4
	default:
		score += 2
	}

	switch {
	case f.RevenueGrowth >= 0.15:
		score += 9
	case f.RevenueGrowth >= 0.10:
		score += 7
	case f.RevenueGrowth >= 0.05:
		score += 5
	case f.RevenueGrowth >= 0:
		score += 3
	default:
		score += 1
	}

	return score
}

// technicalScore combines the trend bucket (max 5) with the
// distance-above-support bucket (max 10)
func technicalScore(series market.PriceSeries) int {
	score := 0

	trend := Trend(series.Closes)
	switch {
	case trend > 0.05:
		score += 5
	case trend > 0:
		score += 4
	case trend > -0.05:
		score += 3
	default:
		score += 1
	}

	price := series.Price()
	support := supportLevel(series.Closes)
	if support <= 0 {
		// Guard: degenerate series, measure distance against the price itself
		support = price
	}

	var distance float64
	if support > 0 {
		distance = (price - support) / support
	}

	switch {
	case distance >= 0.05 && distance <= 0.15:
		score += 10 // good entry point
	case distance >= 0 && distance <= 0.25:
		score += 7
	default:
		score += 3
	}

	return score
}

// OptionLiquidity estimates option-chain liquidity from stock volume
func OptionLiquidity(volume int64) string {
	switch {
	case volume >= 1000000:
		return "High"
	case volume >= 500000:
		return "Medium"
	case volume >= 100000:
		return "Low"
	default:
		return "Very Low"
	}
}

// WheelSuitability scores how well a candidate fits the wheel strategy
// itself (sector, price range, balance sheet, dividend, volume), 0-100
func WheelSuitability(inst market.Instrument, series market.PriceSeries, f market.Fundamentals) int {
	score := 0

	switch inst.Sector {
	case market.SectorTechnology, market.SectorHealthcare, market.SectorConsumerDefense, market.SectorUtilities:
		score += 20
	}

	price := series.Price()
	switch {
	case price >= 20 && price <= 100:
		score += 20
	case price >= 10 && price <= 200:
		score += 15
	default:
		score += 10
	}

	switch {
	case f.DebtToEquity <= 0.5:
		score += 20
	case f.DebtToEquity <= 1.0:
		score += 15
	default:
		score += 10
	}

	if f.DividendYield > 0.02 {
		score += 10
	}

	switch {
	case series.Volume >= 500000:
		score += 20
	case series.Volume >= 100000:
		score += 15
	default:
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}
