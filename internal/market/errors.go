package market

import "errors"

// Error kinds surfaced by the data layer. Per-symbol provider errors are
// swallowed by the tier fallback; only structural request errors reach the
// HTTP boundary.
var (
	// ErrProviderUnavailable means a tier has no credentials or config
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrUpstreamRequest means a transport or HTTP error from an upstream API
	ErrUpstreamRequest = errors.New("upstream request failed")

	// ErrSymbolNotFound means the requested symbol is not in the known universe
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrInvalidInput means a required request field is missing or malformed
	ErrInvalidInput = errors.New("invalid input")
)
