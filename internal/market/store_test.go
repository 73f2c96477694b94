package market

import (
	"path/filepath"
	"testing"
	"time"

	"EquitySim/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreBarsRoundtrip(t *testing.T) {
	store := openTestStore(t)

	bars := model.Series{
		{Date: day(2024, 1, 2), Open: 99, High: 101, Low: 98.5, Close: 100, Volume: 1000},
		{Date: day(2024, 1, 3), Open: 104, High: 106, Low: 103, Close: 105, Volume: 1100},
	}
	if err := store.SaveBars("AAPL", "1mo", bars); err != nil {
		t.Fatalf("save bars: %v", err)
	}

	got, fetchedAt, ok, err := store.LoadBars("AAPL", "1mo")
	if err != nil || !ok {
		t.Fatalf("load bars: ok=%v err=%v", ok, err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d bars, want 2", len(got))
	}
	if !got[0].Date.Equal(bars[0].Date) || got[0].Close != 100 || got[1].Close != 105 {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if time.Since(fetchedAt) > time.Minute {
		t.Errorf("stale fetch stamp: %v", fetchedAt)
	}
}

func TestStoreBarsReplaceOnSave(t *testing.T) {
	store := openTestStore(t)

	first := model.Series{{Date: day(2024, 1, 2), Close: 100}}
	second := model.Series{{Date: day(2024, 1, 3), Close: 105}}
	if err := store.SaveBars("AAPL", "1mo", first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveBars("AAPL", "1mo", second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, _, ok, err := store.LoadBars("AAPL", "1mo")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].Close != 105 {
		t.Errorf("save did not replace old bars: %+v", got)
	}
}

func TestStoreBarsMissRows(t *testing.T) {
	store := openTestStore(t)

	_, _, ok, err := store.LoadBars("NONE", "1mo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Error("expected cache miss for unknown symbol")
	}

	// Same symbol under a different period token is a separate entry.
	if err := store.SaveBars("AAPL", "1mo", model.Series{{Date: day(2024, 1, 2), Close: 100}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	_, _, ok, err = store.LoadBars("AAPL", "1y")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Error("expected cache miss for uncached period")
	}
}

func TestStoreDividendsRangeCoverage(t *testing.T) {
	store := openTestStore(t)

	from := day(2024, 1, 1)
	to := day(2024, 6, 30)
	divs := model.DividendSeries{
		{Date: day(2024, 2, 9), AmountPerShare: 0.24},
		{Date: day(2024, 5, 10), AmountPerShare: 0.25},
	}
	if err := store.SaveDividends("AAPL", from, to, divs); err != nil {
		t.Fatalf("save dividends: %v", err)
	}

	// Sub-range of the covered window: hit, filtered to the request.
	got, _, ok, err := store.LoadDividends("AAPL", day(2024, 2, 1), day(2024, 3, 1))
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].AmountPerShare != 0.24 {
		t.Errorf("unexpected events: %+v", got)
	}

	// Wider than the covered window: miss.
	_, _, ok, err = store.LoadDividends("AAPL", day(2023, 1, 1), day(2024, 6, 30))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Error("expected miss for a range wider than the cached one")
	}
}
