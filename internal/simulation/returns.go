package simulation

import (
	"fmt"
	"time"

	"EquitySim/internal/market"
	"EquitySim/internal/model"
)

// Valuation is the outcome of a valuation path, merged by the engine into the
// final SimulationResult.
type Valuation struct {
	PurchaseDate      time.Time
	PurchasePrice     float64
	CurrentPrice      float64
	ShareCount        float64
	CurrentValue      float64
	AbsoluteReturn    float64
	PercentReturn     float64
	HoldingDays       int
	DividendsReceived float64
	TotalContributed  float64
	Evolution         []model.Snapshot
}

// effectivePurchaseDate resolves the requested date, defaulting to the series
// start.
func effectivePurchaseDate(series model.Series, cfg Config) time.Time {
	if cfg.PurchaseDate.IsZero() {
		return series.First().Date
	}
	return model.Day(cfg.PurchaseDate)
}

// holdingDays counts calendar days between the purchase date and the last bar.
func holdingDays(purchase, last time.Time) int {
	return int(last.Sub(purchase).Hours() / 24)
}

// ComputeReturn values a single lump-sum purchase held to the end of the
// series, applying the configured dividend policy.
func ComputeReturn(series model.Series, dividends model.DividendSeries, cfg Config) (*Valuation, error) {
	if series.Empty() {
		return nil, fmt.Errorf("compute return: %w", market.ErrNoData)
	}

	purchaseDate := effectivePurchaseDate(series, cfg)
	purchasePrice, ok := series.CloseOnOrAfter(purchaseDate)
	if !ok {
		return nil, fmt.Errorf("compute return: purchase date %s after last bar: %w",
			purchaseDate.Format("2006-01-02"), market.ErrNoData)
	}
	if purchasePrice <= 0 {
		return nil, fmt.Errorf("compute return: purchase price %v on %s: %w",
			purchasePrice, purchaseDate.Format("2006-01-02"), ErrInvalidPrice)
	}

	shares := cfg.InitialAmount / purchasePrice
	cash := 0.0
	last := series.Last()

	if cfg.ConsiderDividends {
		for _, ev := range dividends.Between(purchaseDate, last.Date) {
			if cfg.ReinvestDividends {
				price, ok := series.CloseOnOrAfter(ev.Date)
				if !ok || price <= 0 {
					return nil, fmt.Errorf("compute return: dividend on %s has no positive price: %w",
						ev.Date.Format("2006-01-02"), ErrInvalidPrice)
				}
				// Compounding: each reinvestment uses the share count
				// as of this event, not the original count.
				shares += shares * ev.AmountPerShare / price
			} else {
				cash += shares * ev.AmountPerShare
			}
		}
	}

	currentValue := shares*last.Close + cash
	return &Valuation{
		PurchaseDate:      purchaseDate,
		PurchasePrice:     purchasePrice,
		CurrentPrice:      last.Close,
		ShareCount:        shares,
		CurrentValue:      currentValue,
		AbsoluteReturn:    currentValue - cfg.InitialAmount,
		PercentReturn:     (currentValue/cfg.InitialAmount - 1) * 100,
		HoldingDays:       holdingDays(purchaseDate, last.Date),
		DividendsReceived: cash,
		TotalContributed:  cfg.InitialAmount,
	}, nil
}
