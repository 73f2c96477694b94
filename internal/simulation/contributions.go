package simulation

import (
	"fmt"
	"time"

	"EquitySim/internal/market"
	"EquitySim/internal/model"
)

// firstOfNextMonth returns the first day of the month after t.
func firstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// endOfMonth returns the last day of t's month.
func endOfMonth(t time.Time) time.Time {
	return firstOfNextMonth(t).AddDate(0, 0, -1)
}

// ComputeWithContributions simulates a dollar-cost-averaged investment: the
// initial purchase at the purchase date, then a fixed contribution at the
// first day of every following month, with dividends processed per month
// after that month's contribution.
func ComputeWithContributions(series model.Series, dividends model.DividendSeries, cfg Config) (*Valuation, error) {
	if series.Empty() {
		return nil, fmt.Errorf("compute with contributions: %w", market.ErrNoData)
	}

	purchaseDate := effectivePurchaseDate(series, cfg)
	purchasePrice, ok := series.CloseOnOrAfter(purchaseDate)
	if !ok {
		return nil, fmt.Errorf("compute with contributions: purchase date %s after last bar: %w",
			purchaseDate.Format("2006-01-02"), market.ErrNoData)
	}
	if purchasePrice <= 0 {
		return nil, fmt.Errorf("compute with contributions: purchase price %v on %s: %w",
			purchasePrice, purchaseDate.Format("2006-01-02"), ErrInvalidPrice)
	}

	last := series.Last()
	shares := cfg.InitialAmount / purchasePrice
	contributed := cfg.InitialAmount
	cash := 0.0

	months := int(last.Date.Sub(purchaseDate).Hours()/24/28) + 2
	snapshots := make([]model.Snapshot, 0, months)

	for cursor := purchaseDate; !cursor.After(last.Date); cursor = firstOfNextMonth(cursor) {
		monthPrice, _ := series.CloseOnOrAfter(cursor) // cursor <= last date, lookup cannot miss

		// Contributions start with the second step. The contribution
		// counts toward the invested total even when a degenerate price
		// prevents the purchase.
		if !cursor.Equal(purchaseDate) {
			contributed += cfg.MonthlyContribution
			if monthPrice > 0 {
				shares += cfg.MonthlyContribution / monthPrice
			}
		}

		// Dividends of the month are processed after the contribution:
		// shares bought this step are in the base for this month's payouts.
		if cfg.ConsiderDividends {
			for _, ev := range dividends.Between(cursor, endOfMonth(cursor)) {
				if cfg.ReinvestDividends {
					if price, ok := series.CloseOnOrAfter(ev.Date); ok && price > 0 {
						shares += shares * ev.AmountPerShare / price
					}
				} else {
					cash += shares * ev.AmountPerShare
				}
			}
		}

		snapshots = append(snapshots, model.Snapshot{
			Date:             cursor,
			TotalContributed: contributed,
			AssetValue:       shares * monthPrice,
			CashDividends:    cash,
			ShareCount:       shares,
		})
	}

	// The final tally values the last snapshot at the series' last close.
	final := snapshots[len(snapshots)-1]
	currentValue := final.ShareCount*last.Close + final.CashDividends

	return &Valuation{
		PurchaseDate:  purchaseDate,
		PurchasePrice: purchasePrice,
		CurrentPrice:  last.Close,
		ShareCount:    final.ShareCount,
		CurrentValue:  currentValue,
		// Percent return stays relative to the initial amount, not the
		// contributed total, so "return on the first dollar" is comparable
		// across configurations.
		AbsoluteReturn:    currentValue - cfg.InitialAmount,
		PercentReturn:     (currentValue/cfg.InitialAmount - 1) * 100,
		HoldingDays:       holdingDays(purchaseDate, last.Date),
		DividendsReceived: final.CashDividends,
		TotalContributed:  final.TotalContributed,
		Evolution:         snapshots,
	}, nil
}
