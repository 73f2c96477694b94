package notifier

import (
	"fmt"
	"math"
	"strings"

	"EquitySim/internal/analysis"
	"EquitySim/internal/model"

	"github.com/dustin/go-humanize"
)

func money(v float64, currency string) string {
	return fmt.Sprintf("%s %s", currency, humanize.FormatFloat("#,###.##", v))
}

// FormatSimulationReport formats a simulation result into a report message.
func FormatSimulationReport(res *model.SimulationResult) string {
	var b strings.Builder
	cur := res.Meta.Currency

	b.WriteString(fmt.Sprintf("📈 <b>%s</b> | %s\n", res.Symbol, res.Meta.Name))
	b.WriteString(fmt.Sprintf("%s · %s\n", res.Meta.Exchange, cur))
	b.WriteString(fmt.Sprintf("Period: %s → %s (%d days)\n\n",
		res.PurchaseDate.Format("2006-01-02"), res.LastDate.Format("2006-01-02"), res.HoldingDays))

	b.WriteString(fmt.Sprintf("Purchase price: %.2f | Current price: %.2f\n", res.PurchasePrice, res.CurrentPrice))
	b.WriteString(fmt.Sprintf("Shares held: %.4f\n", res.ShareCount))
	b.WriteString(fmt.Sprintf("Invested: %s", money(res.InitialAmount, cur)))
	if res.TotalContributed > res.InitialAmount {
		b.WriteString(fmt.Sprintf(" (total contributed: %s)", money(res.TotalContributed, cur)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Current value: %s\n", money(res.CurrentValue, cur)))
	b.WriteString(fmt.Sprintf("Return: %s (%+.2f%%)\n", money(res.AbsoluteReturn, cur), res.PercentReturn))
	if res.DividendsReceived > 0 {
		b.WriteString(fmt.Sprintf("Dividends received: %s\n", money(res.DividendsReceived, cur)))
	}

	b.WriteString("\n📊 <b>Risk</b>\n")
	if res.Risk == nil {
		b.WriteString("Not enough bars to compute risk metrics\n")
	} else {
		b.WriteString(fmt.Sprintf("Annual volatility: %.2f%%\n", res.Risk.VolatilityAnnualPct))
		if math.IsNaN(res.Risk.SharpeRatio) {
			b.WriteString("Sharpe ratio: n/a (zero variance)\n")
		} else {
			b.WriteString(fmt.Sprintf("Sharpe ratio: %.2f\n", res.Risk.SharpeRatio))
		}
		b.WriteString(fmt.Sprintf("Max drawdown: %.2f%%\n", res.Risk.MaxDrawdownPct))
	}

	if len(res.Evolution) > 0 {
		last := res.Evolution[len(res.Evolution)-1]
		b.WriteString(fmt.Sprintf("\n🗓 <b>Contributions</b>: %d monthly steps, %s contributed\n",
			len(res.Evolution), money(last.TotalContributed, cur)))
	}

	if res.Meta.MarketVolume > 0 {
		b.WriteString(fmt.Sprintf("\nMarket volume: %s\n", humanize.Comma(int64(res.Meta.MarketVolume))))
	}

	return b.String()
}

// FormatComparisonReport formats a multi-asset comparison: base-100
// performance over the period and the correlation matrix of daily returns.
// Failed symbols are listed with their reason instead of silently dropped.
func FormatComparisonReport(assets []analysis.Asset, failed map[string]error) string {
	var b strings.Builder
	b.WriteString("🔀 <b>Asset comparison</b>\n\n")

	for _, a := range assets {
		normalized := analysis.Normalize(a.Series)
		if len(normalized) == 0 {
			continue
		}
		final := normalized[len(normalized)-1].Value
		b.WriteString(fmt.Sprintf("%-10s base 100 → %.1f (%+.1f%%)\n", a.Symbol, final, final-100))
	}

	symbols, matrix := analysis.CorrelationMatrix(assets)
	if len(symbols) > 1 {
		b.WriteString("\n<b>Return correlation</b>\n")
		b.WriteString(fmt.Sprintf("%-10s", ""))
		for _, s := range symbols {
			b.WriteString(fmt.Sprintf("%10s", s))
		}
		b.WriteString("\n")
		for i, s := range symbols {
			b.WriteString(fmt.Sprintf("%-10s", s))
			for j := range symbols {
				if math.IsNaN(matrix[i][j]) {
					b.WriteString(fmt.Sprintf("%10s", "n/a"))
				} else {
					b.WriteString(fmt.Sprintf("%10.2f", matrix[i][j]))
				}
			}
			b.WriteString("\n")
		}
	}

	if len(failed) > 0 {
		b.WriteString("\n⚠️ <b>Failed symbols</b>\n")
		for sym, err := range failed {
			b.WriteString(fmt.Sprintf("%s: %v\n", sym, err))
		}
	}

	return b.String()
}
