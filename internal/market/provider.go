package market

import (
	"errors"
	"time"

	"EquitySim/internal/model"
)

// Errors surfaced by providers. A batch caller must isolate per-symbol
// failures; the simulation engine propagates them for its single symbol.
var (
	// ErrSymbolNotFound means the provider does not know the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrNoData means the provider knows the symbol but returned an empty
	// series for the requested window.
	ErrNoData = errors.New("no data for symbol")
)

// Periods lists the supported analysis windows, ending "now".
var Periods = []string{"1mo", "3mo", "6mo", "1y", "2y", "5y"}

// ValidPeriod reports whether p is a supported period token.
func ValidPeriod(p string) bool {
	for _, v := range Periods {
		if v == p {
			return true
		}
	}
	return false
}

// Provider supplies historical market data for a single symbol.
type Provider interface {
	// FetchDailyBars returns the daily bars for the given period token.
	FetchDailyBars(symbol, period string) (model.Series, error)
	// FetchDividends returns the dividend events with dates in [from, to].
	// An empty series is a valid result meaning no dividends were paid.
	FetchDividends(symbol string, from, to time.Time) (model.DividendSeries, error)
	// FetchMetadata returns instrument metadata, best-effort.
	FetchMetadata(symbol string) (model.Metadata, error)
	Name() string
}
