// Package analysis holds pure transforms of already-fetched price series for
// presentation: rolling volatility, base-100 normalization, and return
// correlation across assets.
package analysis

import (
	"time"

	"EquitySim/internal/model"
)

// ReturnPoint is one dated daily return.
type ReturnPoint struct {
	Date  time.Time
	Value float64
}

// DailyReturns computes close-to-close simple returns, dated at the later bar.
func DailyReturns(series model.Series) []ReturnPoint {
	if len(series) < 2 {
		return nil
	}
	points := make([]ReturnPoint, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		points = append(points, ReturnPoint{
			Date:  series[i].Date,
			Value: series[i].Close/series[i-1].Close - 1,
		})
	}
	return points
}

// Normalize rebases the close prices to 100 at the first bar, for multi-asset
// comparison charts.
func Normalize(series model.Series) []ReturnPoint {
	if series.Empty() {
		return nil
	}
	base := series.First().Close
	if base == 0 {
		return nil
	}
	points := make([]ReturnPoint, len(series))
	for i, b := range series {
		points[i] = ReturnPoint{Date: b.Date, Value: b.Close / base * 100}
	}
	return points
}
