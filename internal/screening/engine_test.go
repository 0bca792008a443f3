package screening

import (
	"math"
	"testing"

	"github.com/pdro-dev/wheelscreener/internal/market"
)

func TestVolatility(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   float64
		exact  bool
	}{
		{
			name:   "empty series",
			prices: nil,
			want:   0.5,
			exact:  true,
		},
		{
			name:   "single point",
			prices: []float64{100},
			want:   0.5,
			exact:  true,
		},
		{
			name:   "flat series has zero volatility",
			prices: []float64{100, 100, 100, 100},
			want:   0,
			exact:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Volatility(tt.prices)
			if tt.exact && got != tt.want {
				t.Errorf("Volatility() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVolatility_FiniteNonNegative(t *testing.T) {
	series := [][]float64{
		{100, 101, 99, 102, 98},
		{10, 200, 10, 200},
		{1, 1.5, 2, 2.5, 3},
		{0.0001, 100, 0.0001},
	}

	for _, prices := range series {
		got := Volatility(prices)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("Volatility(%v) not finite: %v", prices, got)
		}
		if got < 0 {
			t.Errorf("Volatility(%v) negative: %v", prices, got)
		}
	}
}

func TestVolatility_ZeroPriceDoesNotPanic(t *testing.T) {
	got := Volatility([]float64{0, 100, 0})
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("Volatility() with zero prices not finite: %v", got)
	}
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		prices   []float64
		wantZero bool
		wantPos  bool
		wantNeg  bool
	}{
		{
			name:     "empty series",
			prices:   nil,
			wantZero: true,
		},
		{
			name:     "single point",
			prices:   []float64{50},
			wantZero: true,
		},
		{
			name:     "flat series",
			prices:   []float64{100, 100, 100},
			wantZero: true,
		},
		{
			name:    "rising series",
			prices:  []float64{100, 105, 110, 115, 120},
			wantPos: true,
		},
		{
			name:    "falling series",
			prices:  []float64{120, 115, 110, 105, 100},
			wantNeg: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trend(tt.prices)
			switch {
			case tt.wantZero && got != 0:
				t.Errorf("Trend() = %v, want 0", got)
			case tt.wantPos && got <= 0:
				t.Errorf("Trend() = %v, want > 0", got)
			case tt.wantNeg && got >= 0:
				t.Errorf("Trend() = %v, want < 0", got)
			}
		})
	}
}

func TestTrend_UsesTrailingWindow(t *testing.T) {
	// 30 falling points followed by 20 rising ones; only the trailing
	// window should count
	prices := make([]float64, 0, 50)
	for i := 0; i < 30; i++ {
		prices = append(prices, float64(200-i))
	}
	for i := 0; i < 20; i++ {
		prices = append(prices, float64(100+i*2))
	}

	if got := Trend(prices); got <= 0 {
		t.Errorf("Trend() = %v, want > 0 for rising trailing window", got)
	}
}

func TestScore_Bounds(t *testing.T) {
	filters := (&market.FilterCriteria{}).Resolve()

	cases := []struct {
		name         string
		series       market.PriceSeries
		fundamentals market.Fundamentals
	}{
		{
			name:         "best case inputs",
			series:       market.PriceSeries{Closes: []float64{100, 105, 106, 107}, Volume: 5000000},
			fundamentals: market.Fundamentals{ROIC: 30, ROE: 30, DebtToEquity: 0.1, RevenueGrowth: 0.3},
		},
		{
			name:         "worst case inputs",
			series:       market.PriceSeries{Closes: []float64{100, 50, 150, 20}, Volume: 1},
			fundamentals: market.Fundamentals{ROIC: -5, ROE: -10, DebtToEquity: 5, RevenueGrowth: -0.5},
		},
		{
			name:         "empty series",
			series:       market.PriceSeries{Volume: 0},
			fundamentals: market.Fundamentals{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.series, tc.fundamentals, filters)
			if got < 0 || got > 100 {
				t.Errorf("Score() = %d, want within [0,100]", got)
			}
		})
	}
}

// Fixed inputs: ROIC 16 -> 25, volume ratio 20 -> 20, flat series
// volatility 0 -> 15, fundamentals 8+8+9 -> 25, trend 0 -> 3 plus
// support distance 0 -> 7. Total 95.
func TestScore_FlatSeriesScenario(t *testing.T) {
	series := market.PriceSeries{
		Symbol: "PETR4.SA",
		Closes: []float64{100, 100},
		Volume: 2000000,
	}
	fundamentals := market.Fundamentals{
		ROIC:          16,
		ROE:           16,
		DebtToEquity:  0.2,
		RevenueGrowth: 0.2,
	}
	minVolume := int64(100000)
	filters := (&market.FilterCriteria{MinVolume: &minVolume}).Resolve()

	if got := Score(series, fundamentals, filters); got != 95 {
		t.Errorf("Score() = %d, want 95", got)
	}
}

func TestTrendBucketBoundaries(t *testing.T) {
	// trend == 0 falls in the >-0.05 bucket, worth 3 points
	flat := market.PriceSeries{Closes: []float64{100, 100}, Volume: 100000}
	rising := market.PriceSeries{Closes: []float64{100, 120}, Volume: 100000}

	flatScore := technicalScore(flat)
	risingScore := technicalScore(rising)

	if risingScore <= flatScore {
		t.Errorf("technicalScore(rising) = %d, want > technicalScore(flat) = %d", risingScore, flatScore)
	}
}

func TestRoicScore(t *testing.T) {
	tests := []struct {
		roic float64
		want int
	}{
		{roic: 15, want: 25},
		{roic: 14.99, want: 20},
		{roic: 10, want: 20},
		{roic: 8, want: 15},
		{roic: 5, want: 10},
		{roic: 4.99, want: 5},
		{roic: -3, want: 5},
	}

	for _, tt := range tests {
		if got := roicScore(tt.roic); got != tt.want {
			t.Errorf("roicScore(%v) = %d, want %d", tt.roic, got, tt.want)
		}
	}
}

func TestVolumeScore(t *testing.T) {
	tests := []struct {
		volume    int64
		minVolume int64
		want      int
	}{
		{volume: 1000000, minVolume: 100000, want: 20},
		{volume: 500000, minVolume: 100000, want: 16},
		{volume: 200000, minVolume: 100000, want: 12},
		{volume: 100000, minVolume: 100000, want: 8},
		{volume: 50000, minVolume: 100000, want: 4},
		{volume: 100, minVolume: 0, want: 20}, // zero floor must not divide by zero
	}

	for _, tt := range tests {
		if got := volumeScore(tt.volume, tt.minVolume); got != tt.want {
			t.Errorf("volumeScore(%d, %d) = %d, want %d", tt.volume, tt.minVolume, got, tt.want)
		}
	}
}

func TestVolatilityScore(t *testing.T) {
	tests := []struct {
		volatility float64
		want       int
	}{
		{volatility: 0, want: 15},
		{volatility: 0.15, want: 15},
		{volatility: 0.25, want: 12},
		{volatility: 0.35, want: 9},
		{volatility: 0.45, want: 6},
		{volatility: 0.46, want: 3},
	}

	for _, tt := range tests {
		if got := volatilityScore(tt.volatility); got != tt.want {
			t.Errorf("volatilityScore(%v) = %d, want %d", tt.volatility, got, tt.want)
		}
	}
}

func TestOptionLiquidity(t *testing.T) {
	tests := []struct {
		volume int64
		want   string
	}{
		{volume: 2000000, want: "High"},
		{volume: 1000000, want: "High"},
		{volume: 500000, want: "Medium"},
		{volume: 100000, want: "Low"},
		{volume: 99999, want: "Very Low"},
	}

	for _, tt := range tests {
		if got := OptionLiquidity(tt.volume); got != tt.want {
			t.Errorf("OptionLiquidity(%d) = %q, want %q", tt.volume, got, tt.want)
		}
	}
}

func TestWheelSuitability(t *testing.T) {
	inst := market.Instrument{Symbol: "WEGE3.SA", Sector: market.SectorTechnology}
	series := market.PriceSeries{Closes: []float64{50}, Volume: 600000}
	fundamentals := market.Fundamentals{DebtToEquity: 0.3, DividendYield: 0.03}

	// sector 20 + price 20 + debt 20 + dividend 10 + volume 20
	if got := WheelSuitability(inst, series, fundamentals); got != 90 {
		t.Errorf("WheelSuitability() = %d, want 90", got)
	}

	heavyDebt := market.Fundamentals{DebtToEquity: 3, DividendYield: 0}
	offSector := market.Instrument{Symbol: "VALE3.SA", Sector: market.SectorBasicMaterials}
	thin := market.PriceSeries{Closes: []float64{5}, Volume: 1000}

	if got := WheelSuitability(offSector, thin, heavyDebt); got != 30 {
		t.Errorf("WheelSuitability() worst case = %d, want 30", got)
	}
}
