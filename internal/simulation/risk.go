package simulation

import (
	"fmt"
	"math"

	"EquitySim/internal/model"
)

// TradingDaysPerYear is the annualization factor for daily return statistics.
const TradingDaysPerYear = 252

// ComputeRisk derives annualized volatility, Sharpe ratio, and maximum
// drawdown from the price series. riskFreeRate is the annual risk-free rate.
// The Sharpe ratio is NaN when the series has zero variance.
func ComputeRisk(series model.Series, riskFreeRate float64) (*model.RiskMetrics, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("compute risk: need at least 2 bars, got %d: %w", len(series), ErrInsufficientData)
	}

	closes := series.Closes()
	returns := dailyReturns(closes)

	sd := stddev(returns)
	annualVol := sd * math.Sqrt(TradingDaysPerYear)

	sharpe := math.NaN()
	if sd > 0 {
		sharpe = (mean(returns)*TradingDaysPerYear - riskFreeRate) / annualVol
	}

	return &model.RiskMetrics{
		VolatilityAnnualPct: annualVol * 100,
		SharpeRatio:         sharpe,
		MaxDrawdownPct:      maxDrawdown(closes),
	}, nil
}

// dailyReturns computes close-to-close simple returns.
func dailyReturns(closes []float64) []float64 {
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, closes[i]/closes[i-1]-1)
	}
	return returns
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the sample standard deviation (n-1 divisor). A single observation
// has no dispersion to estimate, so it yields 0.
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

// maxDrawdown returns the largest peak-to-trough decline in percent. The
// value is <= 0, and 0 exactly when the series never declines from a peak.
func maxDrawdown(closes []float64) float64 {
	peak := closes[0]
	maxDD := 0.0
	for _, c := range closes {
		if c > peak {
			peak = c
		}
		if peak > 0 {
			dd := (c - peak) / peak * 100
			if dd < maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}
