package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdro-dev/wheelscreener/internal/market"
	"github.com/pdro-dev/wheelscreener/pkg/config"
	"github.com/pdro-dev/wheelscreener/pkg/httputil"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

// Client fetches one-year daily histories from the Yahoo Finance chart API.
// This is the free historical-quote tier; any failure here makes the caller
// fall through to the synthesizer.
type Client struct {
	baseURL    string
	httpClient *httputil.Client
	logger     *logger.Logger
}

// maxHistoryDays caps a "real" series to the most recent trading year
const maxHistoryDays = 252

// NewClient creates a new Yahoo Finance client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.Yahoo.BaseURL,
		httpClient: httpClient,
		logger:     log,
	}
}

// chartResponse is the subset of the v8 chart payload we read
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyHistory fetches the trailing year of daily closes for symbol.
// The returned series is tagged with real provenance; the current price is
// the last close and the volume is the last reported daily volume.
func (c *Client) FetchDailyHistory(ctx context.Context, symbol string) (*market.PriceSeries, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=1y&interval=1d", c.baseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", market.ErrUpstreamRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", market.ErrUpstreamRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", market.ErrUpstreamRequest, err)
	}

	series, err := c.parseChart(symbol, body)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(series.Closes),
	}).Debug("Fetched daily history")

	return series, nil
}

// parseChart extracts closes and the latest volume from a chart payload.
// Null entries (halted days) are skipped; the series is truncated to the
// trailing 252 points.
func (c *Client) parseChart(symbol string, body []byte) (*market.PriceSeries, error) {
	var payload chartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: parse chart: %v", market.ErrUpstreamRequest, err)
	}

	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("%w: chart error %s", market.ErrUpstreamRequest, payload.Chart.Error.Code)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: empty chart result", market.ErrUpstreamRequest)
	}

	quote := payload.Chart.Result[0].Indicators.Quote[0]

	closes := make([]float64, 0, len(quote.Close))
	var volume int64
	for i, px := range quote.Close {
		if px == nil || *px <= 0 {
			continue
		}
		closes = append(closes, *px)
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
	}

	if len(closes) == 0 {
		return nil, fmt.Errorf("%w: no usable closes for %s", market.ErrUpstreamRequest, symbol)
	}

	if len(closes) > maxHistoryDays {
		closes = closes[len(closes)-maxHistoryDays:]
	}

	return &market.PriceSeries{
		Symbol:     symbol,
		Closes:     closes,
		Volume:     volume,
		Provenance: market.ProvenanceReal,
	}, nil
}
