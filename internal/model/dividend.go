package model

import "time"

// Dividend is a cash distribution per share paid on a given date.
type Dividend struct {
	Date           time.Time
	AmountPerShare float64
}

// DividendSeries is an ordered sequence of dividend events. An empty series is
// a valid result meaning "no dividends paid".
type DividendSeries []Dividend

// Between returns the events with dates in [from, to], boundaries included,
// preserving chronological order.
func (d DividendSeries) Between(from, to time.Time) DividendSeries {
	var out DividendSeries
	for _, ev := range d {
		if ev.Date.Before(from) || ev.Date.After(to) {
			continue
		}
		out = append(out, ev)
	}
	return out
}
