package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pdro-dev/wheelscreener/internal/market"
	"github.com/pdro-dev/wheelscreener/internal/screening"
	"github.com/pdro-dev/wheelscreener/internal/synth"
	"github.com/pdro-dev/wheelscreener/internal/universe"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

// MarketHandler serves instrument, quote and fundamentals lookups
type MarketHandler struct {
	universe     *universe.Universe
	provider     screening.SeriesFetcher
	orchestrator *screening.Orchestrator
	synth        *synth.Synthesizer
	logger       *logger.Logger
}

func NewMarketHandler(uni *universe.Universe, provider screening.SeriesFetcher, orch *screening.Orchestrator, syn *synth.Synthesizer, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		universe:     uni,
		provider:     provider,
		orchestrator: orch,
		synth:        syn,
		logger:       log,
	}
}

// InstrumentEntry is one row of the instruments listing, the catalog
// record enriched with the current price snapshot
type InstrumentEntry struct {
	Symbol     string            `json:"symbol"`
	Name       string            `json:"name"`
	Sector     string            `json:"sector"`
	Price      float64           `json:"price"`
	Volume     int64             `json:"volume"`
	Currency   string            `json:"currency"`
	Exchange   string            `json:"exchange"`
	Provenance market.Provenance `json:"dataSource"`
}

// GetInstruments returns the universe filtered by the request criteria.
// Unlike screening, only the filters present in the body are applied;
// an empty body lists everything.
// POST /api/instruments
func (h *MarketHandler) GetInstruments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var criteria market.FilterCriteria
	if r.Body != nil {
		// an empty or absent body means no filtering
		_ = json.NewDecoder(r.Body).Decode(&criteria)
	}

	instruments := make([]InstrumentEntry, 0, h.universe.Len())
	for _, inst := range h.universe.Instruments() {
		series := h.provider.Fetch(ctx, inst.Symbol)
		price := series.Price()

		if criteria.MinPrice != nil && price < *criteria.MinPrice {
			continue
		}
		if criteria.MaxPrice != nil && price > *criteria.MaxPrice {
			continue
		}
		if criteria.MinVolume != nil && series.Volume < *criteria.MinVolume {
			continue
		}
		if len(criteria.Sectors) > 0 && !containsString(criteria.Sectors, inst.Sector) {
			continue
		}

		instruments = append(instruments, InstrumentEntry{
			Symbol:     inst.Symbol,
			Name:       inst.Name,
			Sector:     inst.Sector,
			Price:      price,
			Volume:     series.Volume,
			Currency:   inst.Currency,
			Exchange:   inst.Exchange,
			Provenance: series.Provenance,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"instruments":     instruments,
		"total":           len(instruments),
		"filters_applied": criteria,
		"timestamp":       time.Now().UTC(),
	})
}

// quotesRequest is the body of a batch quote lookup
type quotesRequest struct {
	Symbols []string `json:"symbols"`
}

// GetQuotes returns current quotes for the requested symbols. Unknown
// symbols are silently dropped; an empty symbols list is a 400.
// POST /api/quotes
func (h *MarketHandler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req quotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Symbols) == 0 {
		respondError(w, http.StatusBadRequest, "Symbols required")
		return
	}

	quotes := make([]market.Quote, 0, len(req.Symbols))
	for _, symbol := range req.Symbols {
		if _, ok := h.universe.Lookup(symbol); !ok {
			continue
		}
		quotes = append(quotes, h.buildQuote(ctx, symbol))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"quotes":    quotes,
		"requested": len(req.Symbols),
		"found":     len(quotes),
		"timestamp": time.Now().UTC(),
	})
}

func (h *MarketHandler) buildQuote(ctx context.Context, symbol string) market.Quote {
	series := h.provider.Fetch(ctx, symbol)
	price := series.Price()
	change, changePercent := h.synth.QuoteChange()

	high, low := price, price
	for _, p := range series.Closes {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}

	return market.Quote{
		Symbol:        symbol,
		Price:         price,
		Volume:        series.Volume,
		Change:        change,
		ChangePercent: changePercent,
		Bid:           price * 0.999,
		Ask:           price * 1.001,
		High52w:       high,
		Low52w:        low,
		Historical:    series.Closes,
		Timestamp:     time.Now().UTC(),
		Provenance:    series.Provenance,
	}
}

// GetFundamentals returns fundamental ratios for one symbol.
// GET /api/fundamentals/{symbol}
func (h *MarketHandler) GetFundamentals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := mux.Vars(r)["symbol"]

	inst, ok := h.universe.Lookup(symbol)
	if !ok {
		respondError(w, http.StatusNotFound, "Symbol not found")
		return
	}

	fundamentals := h.orchestrator.Fundamentals(ctx, inst)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fundamentals": fundamentals,
		"timestamp":    time.Now().UTC(),
	})
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
