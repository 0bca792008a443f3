package universe

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pdro-dev/wheelscreener/internal/market"
)

// Universe is the fixed set of screenable instruments for a process run.
// SSOT: symbol lookups go through this type only.
type Universe struct {
	instruments []market.Instrument
	bySymbol    map[string]market.Instrument
}

// catalogFile is the YAML shape of a universe override file
type catalogFile struct {
	Instruments []market.Instrument `yaml:"instruments"`
}

// New builds a universe from an instrument list
func New(instruments []market.Instrument) (*Universe, error) {
	if len(instruments) == 0 {
		return nil, fmt.Errorf("universe must not be empty")
	}

	bySymbol := make(map[string]market.Instrument, len(instruments))
	for _, inst := range instruments {
		if inst.Symbol == "" {
			return nil, fmt.Errorf("instrument with empty symbol")
		}
		if _, dup := bySymbol[inst.Symbol]; dup {
			return nil, fmt.Errorf("duplicate symbol %s", inst.Symbol)
		}
		bySymbol[inst.Symbol] = inst
	}

	return &Universe{
		instruments: instruments,
		bySymbol:    bySymbol,
	}, nil
}

// Default returns the built-in B3 catalog
func Default() *Universe {
	u, err := New(defaultCatalog())
	if err != nil {
		// The built-in catalog is validated by tests; this cannot happen
		panic(err)
	}
	return u
}

// LoadFile reads a YAML catalog override. Unknown fields fail fast.
func LoadFile(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}

	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse universe file: %w", err)
	}

	return New(file.Instruments)
}

// Load returns the catalog from path when set, the default otherwise
func Load(path string) (*Universe, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Instruments returns all instruments in catalog order
func (u *Universe) Instruments() []market.Instrument {
	return u.instruments
}

// Lookup finds an instrument by symbol
func (u *Universe) Lookup(symbol string) (market.Instrument, bool) {
	inst, ok := u.bySymbol[symbol]
	return inst, ok
}

// Symbols returns all symbols in catalog order
func (u *Universe) Symbols() []string {
	symbols := make([]string, len(u.instruments))
	for i, inst := range u.instruments {
		symbols[i] = inst.Symbol
	}
	return symbols
}

// Len returns the universe size
func (u *Universe) Len() int {
	return len(u.instruments)
}
