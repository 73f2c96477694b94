package analysis

import (
	"log"
	"math"
	"time"

	"EquitySim/internal/market"
	"EquitySim/internal/model"
)

// Asset pairs a symbol with its fetched price series.
type Asset struct {
	Symbol string
	Series model.Series
}

// FetchAll fetches the daily series of every symbol, isolating per-symbol
// failures: one bad symbol never aborts the batch. Failed symbols are
// reported in the second return value.
func FetchAll(provider market.Provider, symbols []string, period string) ([]Asset, map[string]error) {
	assets := make([]Asset, 0, len(symbols))
	failed := make(map[string]error)
	for _, sym := range symbols {
		series, err := provider.FetchDailyBars(sym, period)
		if err != nil {
			log.Printf("[WARN] compare: fetch %s: %v", sym, err)
			failed[sym] = err
			continue
		}
		assets = append(assets, Asset{Symbol: sym, Series: series})
	}
	return assets, failed
}

// CorrelationMatrix computes the pairwise Pearson correlation of daily
// returns across assets, aligning each pair on the dates both series share.
// Pairs with fewer than two common returns get NaN.
func CorrelationMatrix(assets []Asset) ([]string, [][]float64) {
	symbols := make([]string, len(assets))
	returns := make([]map[time.Time]float64, len(assets))
	for i, a := range assets {
		symbols[i] = a.Symbol
		byDate := make(map[time.Time]float64)
		for _, p := range DailyReturns(a.Series) {
			byDate[p.Date] = p.Value
		}
		returns[i] = byDate
	}

	matrix := make([][]float64, len(assets))
	for i := range matrix {
		matrix[i] = make([]float64, len(assets))
		matrix[i][i] = 1
	}
	for i := 0; i < len(assets); i++ {
		for j := i + 1; j < len(assets); j++ {
			r := pearson(returns[i], returns[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}
	return symbols, matrix
}

// pearson correlates two dated return sets over their common dates.
func pearson(a, b map[time.Time]float64) float64 {
	var xs, ys []float64
	for date, x := range a {
		if y, ok := b[date]; ok {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	n := float64(len(xs))
	if n < 2 {
		return math.NaN()
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
