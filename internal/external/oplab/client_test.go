package oplab

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdro-dev/wheelscreener/internal/market"
	"github.com/pdro-dev/wheelscreener/pkg/config"
	"github.com/pdro-dev/wheelscreener/pkg/httputil"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.OpLab.BaseURL = server.URL
	cfg.OpLab.Token = token

	httpClient := httputil.New(cfg, logger.NewNop()).DisableRetry()
	return NewClient(cfg, httpClient, logger.NewNop())
}

func TestEnabled(t *testing.T) {
	assert.True(t, newTestClient(t, "tok", nil).Enabled())
	assert.False(t, newTestClient(t, "", nil).Enabled())
}

func TestFetchQuote(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/quotes/PETR4.SA", r.URL.Path)
		fmt.Fprint(w, `{"symbol": "PETR4.SA", "price": 38.5, "volume": 1200000, "historicalPrices": [37.0, 38.0, 38.5]}`)
	})

	series, err := client.FetchQuote(context.Background(), "PETR4.SA")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, []float64{37.0, 38.0, 38.5}, series.Closes)
	assert.Equal(t, int64(1200000), series.Volume)
	assert.Equal(t, market.ProvenanceVendor, series.Provenance)
}

func TestFetchQuote_PriceOnlyPayload(t *testing.T) {
	client := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol": "VALE3.SA", "price": 61.2, "volume": 900000}`)
	})

	series, err := client.FetchQuote(context.Background(), "VALE3.SA")
	require.NoError(t, err)

	assert.Equal(t, []float64{61.2}, series.Closes)
	assert.Equal(t, 61.2, series.Price())
}

func TestFetchQuote_EmptyPayload(t *testing.T) {
	client := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol": "EMPT3.SA"}`)
	})

	_, err := client.FetchQuote(context.Background(), "EMPT3.SA")
	assert.ErrorIs(t, err, market.ErrUpstreamRequest)
}

func TestGetJSON_WithoutToken(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request must be issued without credentials")
	})

	_, err := client.FetchQuote(context.Background(), "PETR4.SA")
	assert.ErrorIs(t, err, market.ErrProviderUnavailable)
}

func TestGetJSON_Non2xx(t *testing.T) {
	client := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.FetchQuote(context.Background(), "PETR4.SA")
	assert.ErrorIs(t, err, market.ErrUpstreamRequest)
}

func TestFetchFundamentals(t *testing.T) {
	client := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fundamentals/WEGE3.SA", r.URL.Path)
		fmt.Fprint(w, `{"fundamentals": {"roic": 18.5, "roe": 22.0, "debtToEquity": 0.4}}`)
	})

	f, err := client.FetchFundamentals(context.Background(), "WEGE3.SA")
	require.NoError(t, err)

	assert.Equal(t, "WEGE3.SA", f.Symbol)
	assert.Equal(t, 18.5, f.ROIC)
	assert.Equal(t, market.ProvenanceVendor, f.Provenance)
}

func TestFetchUserInfo(t *testing.T) {
	client := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		fmt.Fprint(w, `{"id": "u1", "name": "Trader", "plan": "premium"}`)
	})

	info, err := client.FetchUserInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "premium", info.Plan)
}

func TestFetchInstruments(t *testing.T) {
	client := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"instruments": [{"symbol": "PETR4.SA", "name": "Petrobras", "sector": "Energy"}]}`)
	})

	instruments, err := client.FetchInstruments(context.Background())
	require.NoError(t, err)
	require.Len(t, instruments, 1)
	assert.Equal(t, "PETR4.SA", instruments[0].Symbol)
}
