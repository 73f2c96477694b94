package analysis

import (
	"math"

	"EquitySim/internal/model"
	"EquitySim/internal/simulation"
)

// DefaultVolatilityWindow is the rolling window, in trading days, used for
// volatility charts.
const DefaultVolatilityWindow = 30

// RollingVolatility computes the annualized volatility (in percent) of daily
// returns over a sliding window. Each point is dated at the window's last
// bar; the first point needs window returns, so series shorter than
// window+1 bars yield nil.
func RollingVolatility(series model.Series, window int) []ReturnPoint {
	if window <= 1 {
		return nil
	}
	returns := DailyReturns(series)
	if len(returns) < window {
		return nil
	}

	points := make([]ReturnPoint, 0, len(returns)-window+1)
	for i := window; i <= len(returns); i++ {
		points = append(points, ReturnPoint{
			Date:  returns[i-1].Date,
			Value: windowStddev(returns[i-window:i]) * math.Sqrt(simulation.TradingDaysPerYear) * 100,
		})
	}
	return points
}

// windowStddev is the sample standard deviation of the window's returns.
func windowStddev(window []ReturnPoint) float64 {
	if len(window) < 2 {
		return 0
	}
	m := 0.0
	for _, p := range window {
		m += p.Value
	}
	m /= float64(len(window))

	sum := 0.0
	for _, p := range window {
		d := p.Value - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(window)-1))
}
