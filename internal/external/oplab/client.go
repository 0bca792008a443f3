package oplab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdro-dev/wheelscreener/internal/market"
	"github.com/pdro-dev/wheelscreener/pkg/config"
	"github.com/pdro-dev/wheelscreener/pkg/httputil"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

// Client talks to the paid OpLab market-data API. The wire format is the
// vendor's contract; any non-2xx or transport error makes that one call
// count as unavailable and the caller degrades to the next tier.
type Client struct {
	baseURL    string
	token      string
	httpClient *httputil.Client
	logger     *logger.Logger
}

// NewClient creates a new vendor client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.OpLab.BaseURL,
		token:      cfg.OpLab.Token,
		httpClient: httpClient,
		logger:     log,
	}
}

// Enabled reports whether credentials are configured
func (c *Client) Enabled() bool {
	return c.token != ""
}

// UserInfo is the vendor account payload
type UserInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Plan        string    `json:"plan"`
	Permissions []string  `json:"permissions"`
	QuotaDaily  int       `json:"quotaDaily"`
	QuotaUsed   int       `json:"quotaUsed"`
	LastLogin   time.Time `json:"lastLogin"`
}

// vendor wire shapes

type instrumentsPayload struct {
	Instruments []market.Instrument `json:"instruments"`
}

type quotePayload struct {
	Symbol     string    `json:"symbol"`
	Price      float64   `json:"price"`
	Volume     int64     `json:"volume"`
	Historical []float64 `json:"historicalPrices"`
}

type fundamentalsPayload struct {
	Fundamentals market.Fundamentals `json:"fundamentals"`
}

// FetchInstruments fetches the vendor instrument catalog
func (c *Client) FetchInstruments(ctx context.Context) ([]market.Instrument, error) {
	var payload instrumentsPayload
	if err := c.getJSON(ctx, "/instruments", &payload); err != nil {
		return nil, err
	}
	return payload.Instruments, nil
}

// FetchQuote fetches a price series from the vendor
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*market.PriceSeries, error) {
	var payload quotePayload
	if err := c.getJSON(ctx, "/quotes/"+symbol, &payload); err != nil {
		return nil, err
	}

	closes := payload.Historical
	if len(closes) == 0 && payload.Price > 0 {
		closes = []float64{payload.Price}
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("%w: vendor quote for %s had no prices", market.ErrUpstreamRequest, symbol)
	}

	return &market.PriceSeries{
		Symbol:     symbol,
		Closes:     closes,
		Volume:     payload.Volume,
		Provenance: market.ProvenanceVendor,
	}, nil
}

// FetchFundamentals fetches fundamentals from the vendor
func (c *Client) FetchFundamentals(ctx context.Context, symbol string) (*market.Fundamentals, error) {
	var payload fundamentalsPayload
	if err := c.getJSON(ctx, "/fundamentals/"+symbol, &payload); err != nil {
		return nil, err
	}

	fundamentals := payload.Fundamentals
	fundamentals.Symbol = symbol
	fundamentals.Provenance = market.ProvenanceVendor
	return &fundamentals, nil
}

// FetchUserInfo fetches the authenticated account details
func (c *Client) FetchUserInfo(ctx context.Context) (*UserInfo, error) {
	var info UserInfo
	if err := c.getJSON(ctx, "/user", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// getJSON performs an authenticated GET and decodes the JSON response
func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	if !c.Enabled() {
		return market.ErrProviderUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", market.ErrUpstreamRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: vendor status %d for %s", market.ErrUpstreamRequest, resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", market.ErrUpstreamRequest, path, err)
	}

	return nil
}
