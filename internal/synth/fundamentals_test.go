package synth

import (
	"testing"
	"time"

	"github.com/pdro-dev/wheelscreener/internal/market"
)

func TestGenerateFundamentals_SectorRanges(t *testing.T) {
	g := NewFundamentalsGenerator(NewSource(5))

	for sector, ranges := range sectorTable {
		for i := 0; i < 20; i++ {
			f := g.Generate("TEST3.SA", sector)

			if f.ROIC < ranges.roic.min || f.ROIC > ranges.roic.max {
				t.Errorf("sector %s: ROIC %v outside [%v,%v]", sector, f.ROIC, ranges.roic.min, ranges.roic.max)
			}
			if f.ROE < ranges.roe.min || f.ROE > ranges.roe.max {
				t.Errorf("sector %s: ROE %v outside [%v,%v]", sector, f.ROE, ranges.roe.min, ranges.roe.max)
			}
			if f.DebtToEquity < ranges.debt.min || f.DebtToEquity > ranges.debt.max {
				t.Errorf("sector %s: debt %v outside [%v,%v]", sector, f.DebtToEquity, ranges.debt.min, ranges.debt.max)
			}
		}
	}
}

func TestGenerateFundamentals_CommonBounds(t *testing.T) {
	g := NewFundamentalsGenerator(NewSource(6))

	for i := 0; i < 50; i++ {
		f := g.Generate("PETR4.SA", market.SectorEnergy)

		if f.Revenue < revenueMin || f.Revenue > revenueMax {
			t.Errorf("Revenue %d outside bounds", f.Revenue)
		}
		if f.RevenueGrowth < revenueGrowthMin || f.RevenueGrowth > revenueGrowthMax {
			t.Errorf("RevenueGrowth %v outside bounds", f.RevenueGrowth)
		}
		if f.DividendYield < 0 || f.DividendYield > dividendYieldMax {
			t.Errorf("DividendYield %v outside bounds", f.DividendYield)
		}
		if f.MarketCap < marketCapMin || f.MarketCap > marketCapMax {
			t.Errorf("MarketCap %d outside bounds", f.MarketCap)
		}
		if f.PERatio < peRatioMin || f.PERatio > peRatioMax {
			t.Errorf("PERatio %v outside bounds", f.PERatio)
		}
		if f.PBRatio < pbRatioMin || f.PBRatio > pbRatioMax {
			t.Errorf("PBRatio %v outside bounds", f.PBRatio)
		}
	}
}

func TestGenerateFundamentals_UnknownSectorUsesTechnologyRanges(t *testing.T) {
	g := NewFundamentalsGenerator(NewSource(8))
	ranges := sectorTable[market.SectorTechnology]

	for i := 0; i < 20; i++ {
		f := g.Generate("ODD3.SA", "Made Up Sector")
		if f.ROIC < ranges.roic.min || f.ROIC > ranges.roic.max {
			t.Errorf("unknown sector ROIC %v outside Technology range", f.ROIC)
		}
		if f.Sector != "Made Up Sector" {
			t.Errorf("Sector = %q, want the requested sector echoed", f.Sector)
		}
	}
}

func TestGenerateFundamentals_Metadata(t *testing.T) {
	g := NewFundamentalsGenerator(NewSource(9))
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	f := g.Generate("ABEV3.SA", market.SectorConsumerDefense)

	if f.Symbol != "ABEV3.SA" {
		t.Errorf("Symbol = %q, want ABEV3.SA", f.Symbol)
	}
	if !f.LastUpdated.Equal(fixed) {
		t.Errorf("LastUpdated = %v, want %v", f.LastUpdated, fixed)
	}
	if f.Provenance != market.ProvenanceMock {
		t.Errorf("Provenance = %q, want mock", f.Provenance)
	}
}
