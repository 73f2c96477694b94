package simulation

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

// seriesOf builds daily bars from consecutive closes starting at start.
func seriesOf(start time.Time, closes ...float64) model.Series {
	s := make(model.Series, 0, len(closes))
	for i, c := range closes {
		s = append(s, model.Bar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000})
	}
	return s
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestComputeReturn_LumpSum(t *testing.T) {
	series := seriesOf(day(2024, 1, 2), 100, 105, 110, 95, 120)
	cfg := Config{InitialAmount: 1000}

	v, err := ComputeReturn(series, nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	approx(t, "PurchasePrice", v.PurchasePrice, 100)
	approx(t, "ShareCount", v.ShareCount, 10)
	approx(t, "CurrentPrice", v.CurrentPrice, 120)
	approx(t, "CurrentValue", v.CurrentValue, 1200)
	approx(t, "AbsoluteReturn", v.AbsoluteReturn, 200)
	approx(t, "PercentReturn", v.PercentReturn, 20)
	approx(t, "TotalContributed", v.TotalContributed, 1000)
	if v.HoldingDays != 4 {
		t.Errorf("HoldingDays = %d, want 4", v.HoldingDays)
	}
}

func TestComputeReturn_DividendsAsCash(t *testing.T) {
	series := seriesOf(day(2024, 1, 2), 100, 105, 110, 95, 120)
	divs := model.DividendSeries{{Date: day(2024, 1, 4), AmountPerShare: 2}}
	cfg := Config{InitialAmount: 1000, ConsiderDividends: true}

	v, err := ComputeReturn(series, divs, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10 shares x 2 = 20 cash on top of the 1200 asset value.
	approx(t, "ShareCount", v.ShareCount, 10)
	approx(t, "DividendsReceived", v.DividendsReceived, 20)
	approx(t, "CurrentValue", v.CurrentValue, 1220)
	approx(t, "PercentReturn", v.PercentReturn, 22)
}

func TestComputeReturn_DividendsReinvested(t *testing.T) {
	series := seriesOf(day(2024, 1, 2), 100, 105, 110, 95, 120)
	divs := model.DividendSeries{{Date: day(2024, 1, 4), AmountPerShare: 2}}
	cfg := Config{InitialAmount: 1000, ConsiderDividends: true, ReinvestDividends: true}

	v, err := ComputeReturn(series, divs, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10 shares pay 20, reinvested at the ex-date close of 110.
	wantShares := 10 + 20.0/110
	approx(t, "ShareCount", v.ShareCount, wantShares)
	approx(t, "DividendsReceived", v.DividendsReceived, 0)
	approx(t, "CurrentValue", v.CurrentValue, wantShares*120)
}

func TestComputeReturn_DividendsIgnoredByDefault(t *testing.T) {
	series := seriesOf(day(2024, 1, 2), 100, 105, 110, 95, 120)
	divs := model.DividendSeries{{Date: day(2024, 1, 4), AmountPerShare: 2}}

	v, err := ComputeReturn(series, divs, Config{InitialAmount: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "CurrentValue", v.CurrentValue, 1200)
	approx(t, "DividendsReceived", v.DividendsReceived, 0)
}

func TestComputeReturn_ReinvestmentNeverTrailsCash(t *testing.T) {
	// With positive prices throughout, reinvesting dividends always ends at
	// least as high as taking them in cash when the price rises afterwards.
	series := seriesOf(day(2024, 1, 2), 100, 102, 104, 108, 115)
	divs := model.DividendSeries{
		{Date: day(2024, 1, 3), AmountPerShare: 1},
		{Date: day(2024, 1, 5), AmountPerShare: 1.5},
	}

	cash, err := ComputeReturn(series, divs, Config{InitialAmount: 1000, ConsiderDividends: true})
	if err != nil {
		t.Fatalf("cash path: %v", err)
	}
	reinvest, err := ComputeReturn(series, divs, Config{InitialAmount: 1000, ConsiderDividends: true, ReinvestDividends: true})
	if err != nil {
		t.Fatalf("reinvest path: %v", err)
	}

	if reinvest.CurrentValue < cash.CurrentValue {
		t.Errorf("reinvested value %v below cash value %v in a rising market",
			reinvest.CurrentValue, cash.CurrentValue)
	}
	if reinvest.DividendsReceived != 0 {
		t.Errorf("reinvested path accrued cash dividends: %v", reinvest.DividendsReceived)
	}
}

func TestComputeReturn_SingleBar(t *testing.T) {
	series := seriesOf(day(2024, 1, 2), 100)

	v, err := ComputeReturn(series, nil, Config{InitialAmount: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "PercentReturn", v.PercentReturn, 0)
	approx(t, "CurrentValue", v.CurrentValue, 1000)
	if v.HoldingDays != 0 {
		t.Errorf("HoldingDays = %d, want 0", v.HoldingDays)
	}
}

func TestComputeReturn_EmptySeries(t *testing.T) {
	_, err := ComputeReturn(nil, nil, Config{InitialAmount: 1000})
	if !errors.Is(err, market.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestComputeReturn_PurchaseDateAfterSeries(t *testing.T) {
	series := seriesOf(day(2024, 1, 2), 100, 105)
	cfg := Config{InitialAmount: 1000, PurchaseDate: day(2024, 6, 1)}

	_, err := ComputeReturn(series, nil, cfg)
	if !errors.Is(err, market.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestComputeReturn_ZeroPurchasePrice(t *testing.T) {
	series := seriesOf(day(2024, 1, 2), 0, 105)

	_, err := ComputeReturn(series, nil, Config{InitialAmount: 1000})
	if !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestComputeReturn_PurchaseDateRoundsForward(t *testing.T) {
	series := model.Series{
		{Date: day(2024, 1, 5), Close: 100},
		{Date: day(2024, 1, 8), Close: 110}, // Monday after a weekend
		{Date: day(2024, 1, 9), Close: 120},
	}
	cfg := Config{InitialAmount: 1000, PurchaseDate: day(2024, 1, 6)} // Saturday

	v, err := ComputeReturn(series, nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "PurchasePrice", v.PurchasePrice, 110)
	// Holding days count from the requested date, not the fill date.
	if v.HoldingDays != 3 {
		t.Errorf("HoldingDays = %d, want 3", v.HoldingDays)
	}
}
