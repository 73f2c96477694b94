// Package simulation implements the buy-and-hold investment simulator: lump
// sum or dollar-cost-averaged valuation with dividend handling, plus risk
// metrics over the price series. All computations are pure functions over
// immutable inputs; an Engine only binds them to a market data provider.
package simulation

import (
	"errors"
	"fmt"
	"log"

	"EquitySim/internal/market"
	"EquitySim/internal/model"
)

// Engine runs simulations against a market data provider. Construct one with
// NewEngine and share it freely: it holds no per-run state.
type Engine struct {
	provider market.Provider
}

// NewEngine creates an engine bound to the given provider.
func NewEngine(provider market.Provider) *Engine {
	return &Engine{provider: provider}
}

// Simulate runs one simulation for symbol over the given period token. The
// result is all-or-nothing: any fetch or valuation failure yields a nil
// result, except missing risk metrics, which leave Result.Risk nil.
func (e *Engine) Simulate(symbol, period string, cfg Config) (*model.SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !market.ValidPeriod(period) {
		return nil, fmt.Errorf("%w: unsupported period %q", ErrInvalidConfig, period)
	}

	series, err := e.provider.FetchDailyBars(symbol, period)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars %s: %w", symbol, err)
	}
	if series.Empty() {
		return nil, fmt.Errorf("simulate %s: %w", symbol, market.ErrNoData)
	}

	purchaseDate := effectivePurchaseDate(series, cfg)

	var dividends model.DividendSeries
	if cfg.ConsiderDividends {
		dividends, err = e.provider.FetchDividends(symbol, purchaseDate, series.Last().Date)
		if err != nil {
			return nil, fmt.Errorf("fetch dividends %s: %w", symbol, err)
		}
	}

	var valuation *Valuation
	if cfg.MonthlyContribution > 0 {
		valuation, err = ComputeWithContributions(series, dividends, cfg)
	} else {
		valuation, err = ComputeReturn(series, dividends, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("simulate %s: %w", symbol, err)
	}

	// Risk metrics always come from the full price series, independent of
	// the valuation path. A too-short series omits them.
	risk, err := ComputeRisk(series, cfg.riskFreeRate())
	if err != nil {
		if !errors.Is(err, ErrInsufficientData) {
			return nil, fmt.Errorf("simulate %s: %w", symbol, err)
		}
		log.Printf("[WARN] %s: %v, risk metrics omitted", symbol, err)
		risk = nil
	}

	meta, err := e.provider.FetchMetadata(symbol)
	if err != nil {
		// Metadata is best-effort and never fails the simulation.
		log.Printf("[WARN] fetch metadata %s: %v, using placeholders", symbol, err)
		meta = model.Metadata{Symbol: symbol, Name: symbol, Exchange: "N/A", Currency: "USD"}
	}

	return &model.SimulationResult{
		Symbol:            symbol,
		Meta:              meta,
		InitialAmount:     cfg.InitialAmount,
		TotalContributed:  valuation.TotalContributed,
		PurchasePrice:     valuation.PurchasePrice,
		CurrentPrice:      valuation.CurrentPrice,
		ShareCount:        valuation.ShareCount,
		CurrentValue:      valuation.CurrentValue,
		AbsoluteReturn:    valuation.AbsoluteReturn,
		PercentReturn:     valuation.PercentReturn,
		HoldingDays:       valuation.HoldingDays,
		DividendsReceived: valuation.DividendsReceived,
		PurchaseDate:      valuation.PurchaseDate,
		LastDate:          series.Last().Date,
		Risk:              risk,
		Evolution:         valuation.Evolution,
	}, nil
}
