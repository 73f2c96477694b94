package market

import (
	"log"
	"time"

	"EquitySim/internal/model"
)

// CachingProvider wraps another Provider with a same-day SQLite cache.
// Cache failures degrade to the upstream provider, never fail the caller.
type CachingProvider struct {
	upstream Provider
	store    *SQLiteStore
	now      func() time.Time
}

// NewCachingProvider wraps upstream with the given store.
func NewCachingProvider(upstream Provider, store *SQLiteStore) *CachingProvider {
	return &CachingProvider{upstream: upstream, store: store, now: time.Now}
}

func (c *CachingProvider) Name() string { return c.upstream.Name() + "+cache" }

// fresh reports whether a fetch stamped at t is still usable. Stamps expire
// at day boundaries so every day starts with one upstream fetch per symbol.
func (c *CachingProvider) fresh(t time.Time) bool {
	return model.Day(t).Equal(model.Day(c.now()))
}

func (c *CachingProvider) FetchDailyBars(symbol, period string) (model.Series, error) {
	bars, fetchedAt, ok, err := c.store.LoadBars(symbol, period)
	if err != nil {
		log.Printf("[WARN] bar cache read %s/%s: %v", symbol, period, err)
	} else if ok && c.fresh(fetchedAt) && len(bars) > 0 {
		return bars, nil
	}

	bars, err = c.upstream.FetchDailyBars(symbol, period)
	if err != nil {
		return nil, err
	}
	if err := c.store.SaveBars(symbol, period, bars); err != nil {
		log.Printf("[WARN] bar cache write %s/%s: %v", symbol, period, err)
	}
	return bars, nil
}

func (c *CachingProvider) FetchDividends(symbol string, from, to time.Time) (model.DividendSeries, error) {
	divs, fetchedAt, ok, err := c.store.LoadDividends(symbol, from, to)
	if err != nil {
		log.Printf("[WARN] dividend cache read %s: %v", symbol, err)
	} else if ok && c.fresh(fetchedAt) {
		return divs, nil
	}

	divs, err = c.upstream.FetchDividends(symbol, from, to)
	if err != nil {
		return nil, err
	}
	if err := c.store.SaveDividends(symbol, from, to, divs); err != nil {
		log.Printf("[WARN] dividend cache write %s: %v", symbol, err)
	}
	return divs, nil
}

// FetchMetadata always goes upstream: the metadata call is cheap and carries
// intraday fields not worth caching.
func (c *CachingProvider) FetchMetadata(symbol string) (model.Metadata, error) {
	return c.upstream.FetchMetadata(symbol)
}
