package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"EquitySim/internal/market"
	"EquitySim/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seriesOf(start time.Time, closes ...float64) model.Series {
	s := make(model.Series, 0, len(closes))
	for i, c := range closes {
		s = append(s, model.Bar{Date: start.AddDate(0, 0, i), Close: c})
	}
	return s
}

func TestDailyReturns(t *testing.T) {
	series := seriesOf(day(2024, 1, 2), 100, 110, 99)

	points := DailyReturns(series)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if math.Abs(points[0].Value-0.10) > 1e-9 {
		t.Errorf("first return = %v, want 0.10", points[0].Value)
	}
	if math.Abs(points[1].Value-(-0.10)) > 1e-9 {
		t.Errorf("second return = %v, want -0.10", points[1].Value)
	}
	if !points[0].Date.Equal(day(2024, 1, 3)) {
		t.Errorf("return dated %v, want the later bar", points[0].Date)
	}

	if got := DailyReturns(seriesOf(day(2024, 1, 2), 100)); got != nil {
		t.Errorf("single bar yielded returns: %v", got)
	}
}

func TestNormalize(t *testing.T) {
	series := seriesOf(day(2024, 1, 2), 50, 75, 100)

	points := Normalize(series)
	want := []float64{100, 150, 200}
	for i, p := range points {
		if math.Abs(p.Value-want[i]) > 1e-9 {
			t.Errorf("point %d = %v, want %v", i, p.Value, want[i])
		}
	}

	if got := Normalize(seriesOf(day(2024, 1, 2), 0, 75)); got != nil {
		t.Errorf("zero base yielded points: %v", got)
	}
}

func TestRollingVolatility(t *testing.T) {
	series := seriesOf(day(2024, 1, 2), 100, 102, 101, 105, 103, 108)

	points := RollingVolatility(series, 3)
	// 5 returns, window 3: points at returns 3..5.
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	if !points[0].Date.Equal(series[3].Date) {
		t.Errorf("first point dated %v, want the window's last bar %v", points[0].Date, series[3].Date)
	}
	for i, p := range points {
		if p.Value < 0 {
			t.Errorf("point %d volatility %v is negative", i, p.Value)
		}
	}

	if got := RollingVolatility(series, 10); got != nil {
		t.Errorf("short series yielded points: %v", got)
	}
	if got := RollingVolatility(series, 1); got != nil {
		t.Errorf("degenerate window yielded points: %v", got)
	}
}

func TestRollingVolatility_FlatWindowIsZero(t *testing.T) {
	series := seriesOf(day(2024, 1, 2), 100, 100, 100, 100, 100)

	for i, p := range RollingVolatility(series, 3) {
		if p.Value != 0 {
			t.Errorf("point %d = %v, want 0 for a flat series", i, p.Value)
		}
	}
}

func TestCorrelationMatrix(t *testing.T) {
	start := day(2024, 1, 2)
	a := Asset{Symbol: "A", Series: seriesOf(start, 100, 110, 99, 105)}
	// B moves in lockstep with A: correlation 1.
	b := Asset{Symbol: "B", Series: seriesOf(start, 50, 55, 49.5, 52.5)}
	// C mirrors A's returns: correlation -1.
	c := Asset{Symbol: "C", Series: model.Series{
		{Date: start, Close: 100},
		{Date: start.AddDate(0, 0, 1), Close: 90},
		{Date: start.AddDate(0, 0, 2), Close: 99},
		{Date: start.AddDate(0, 0, 3), Close: 93.34285714285714},
	}}

	symbols, matrix := CorrelationMatrix([]Asset{a, b, c})
	if len(symbols) != 3 || symbols[0] != "A" || symbols[2] != "C" {
		t.Fatalf("unexpected symbols: %v", symbols)
	}
	for i := range matrix {
		if matrix[i][i] != 1 {
			t.Errorf("diagonal [%d][%d] = %v, want 1", i, i, matrix[i][i])
		}
	}
	if math.Abs(matrix[0][1]-1) > 1e-9 {
		t.Errorf("corr(A,B) = %v, want 1", matrix[0][1])
	}
	if matrix[0][1] != matrix[1][0] {
		t.Error("matrix is not symmetric")
	}
	if matrix[0][2] > -0.99 {
		t.Errorf("corr(A,C) = %v, want close to -1", matrix[0][2])
	}
}

func TestCorrelationMatrix_NoCommonDates(t *testing.T) {
	a := Asset{Symbol: "A", Series: seriesOf(day(2024, 1, 2), 100, 110, 99)}
	b := Asset{Symbol: "B", Series: seriesOf(day(2024, 6, 2), 50, 55, 49)}

	_, matrix := CorrelationMatrix([]Asset{a, b})
	if !math.IsNaN(matrix[0][1]) {
		t.Errorf("corr with no common dates = %v, want NaN", matrix[0][1])
	}
}

func TestFetchAll_IsolatesFailures(t *testing.T) {
	provider := &market.MockProvider{
		Bars: seriesOf(day(2024, 1, 2), 100, 110),
	}
	assets, failed := FetchAll(provider, []string{"GOOD1", "GOOD2"}, "1y")
	if len(assets) != 2 || len(failed) != 0 {
		t.Fatalf("got %d assets, %d failures, want 2/0", len(assets), len(failed))
	}

	broken := &market.MockProvider{Err: market.ErrSymbolNotFound}
	assets, failed = FetchAll(broken, []string{"BAD"}, "1y")
	if len(assets) != 0 {
		t.Errorf("broken provider yielded assets: %v", assets)
	}
	if !errors.Is(failed["BAD"], market.ErrSymbolNotFound) {
		t.Errorf("failure map = %v, want ErrSymbolNotFound for BAD", failed)
	}
}
