package model

import (
	"sort"
	"time"
)

// Bar represents a single daily candlestick bar.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is an ordered sequence of daily bars with strictly increasing dates.
// Trading-day gaps (weekends, holidays) are allowed.
type Series []Bar

// Empty reports whether the series contains no bars.
func (s Series) Empty() bool { return len(s) == 0 }

// First returns the earliest bar. The series must be non-empty.
func (s Series) First() Bar { return s[0] }

// Last returns the most recent bar. The series must be non-empty.
func (s Series) Last() Bar { return s[len(s)-1] }

// BarOnOrAfter returns the first bar whose date is on or after the target,
// rounding forward over non-trading days. ok is false when the target falls
// beyond the last bar.
func (s Series) BarOnOrAfter(target time.Time) (bar Bar, ok bool) {
	i := sort.Search(len(s), func(i int) bool { return !s[i].Date.Before(target) })
	if i == len(s) {
		return Bar{}, false
	}
	return s[i], true
}

// CloseOnOrAfter returns the close of the first bar on or after the target.
func (s Series) CloseOnOrAfter(target time.Time) (close float64, ok bool) {
	bar, ok := s.BarOnOrAfter(target)
	return bar.Close, ok
}

// Closes returns the close prices in chronological order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, b := range s {
		closes[i] = b.Close
	}
	return closes
}

// Day truncates a timestamp to day granularity in UTC. All series lookups
// compare at day granularity, so bar dates and targets must pass through it.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
