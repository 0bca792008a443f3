package universe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdro-dev/wheelscreener/internal/market"
)

func TestDefault(t *testing.T) {
	uni := Default()

	assert.Equal(t, 32, uni.Len(), "built-in B3 catalog size")

	inst, ok := uni.Lookup("PETR4.SA")
	require.True(t, ok)
	assert.Equal(t, "BRL", inst.Currency)
	assert.Equal(t, "B3", inst.Exchange)
	assert.NotEmpty(t, inst.Name)
	assert.NotEmpty(t, inst.Sector)
}

func TestDefault_AllSectorsKnown(t *testing.T) {
	known := make(map[string]bool)
	for _, s := range market.Sectors() {
		known[s] = true
	}

	for _, inst := range Default().Instruments() {
		assert.True(t, known[inst.Sector], "instrument %s has unknown sector %q", inst.Symbol, inst.Sector)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		instruments []market.Instrument
		wantErr     string
	}{
		{
			name:        "empty list",
			instruments: nil,
			wantErr:     "empty",
		},
		{
			name: "empty symbol",
			instruments: []market.Instrument{
				{Symbol: "", Name: "Nameless"},
			},
			wantErr: "empty symbol",
		},
		{
			name: "duplicate symbol",
			instruments: []market.Instrument{
				{Symbol: "PETR4.SA"},
				{Symbol: "PETR4.SA"},
			},
			wantErr: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.instruments)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "universe.yaml")

	content := `instruments:
  - symbol: AAPL
    name: Apple
    sector: Technology
    currency: USD
    exchange: NASDAQ
  - symbol: MSFT
    name: Microsoft
    sector: Technology
    currency: USD
    exchange: NASDAQ
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	uni, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, uni.Len())
	assert.Equal(t, []string{"AAPL", "MSFT"}, uni.Symbols())

	inst, ok := uni.Lookup("AAPL")
	require.True(t, ok)
	assert.Equal(t, "NASDAQ", inst.Exchange)
}

func TestLoadFile_UnknownFieldRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "universe.yaml")

	content := `instruments:
  - symbol: AAPL
    name: Apple
    unexpected: field
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	uni, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), uni.Len())
}
