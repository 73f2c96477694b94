package model

import "time"

// Metadata describes the instrument behind a symbol. All fields are
// best-effort; missing values fall back to placeholders and never fail a
// simulation.
type Metadata struct {
	Symbol       string
	Name         string
	Exchange     string
	Currency     string
	MarketPrice  float64
	High52Week   float64
	Low52Week    float64
	MarketVolume float64
}

// RiskMetrics holds the risk statistics derived from a price series.
// SharpeRatio is NaN when the series has zero variance.
type RiskMetrics struct {
	VolatilityAnnualPct float64
	SharpeRatio         float64
	MaxDrawdownPct      float64
}

// Snapshot records the state of a contribution simulation at one monthly step.
type Snapshot struct {
	Date             time.Time
	TotalContributed float64
	AssetValue       float64
	CashDividends    float64
	ShareCount       float64
}

// SimulationResult is the consolidated outcome of one simulation call. It is
// produced once, never mutated afterwards, and owned by the caller.
type SimulationResult struct {
	Symbol string
	Meta   Metadata

	InitialAmount     float64
	TotalContributed  float64
	PurchasePrice     float64
	CurrentPrice      float64
	ShareCount        float64
	CurrentValue      float64
	AbsoluteReturn    float64
	PercentReturn     float64
	HoldingDays       int
	DividendsReceived float64

	PurchaseDate time.Time
	LastDate     time.Time

	// Risk is nil when the series has fewer than two bars.
	Risk *RiskMetrics

	// Evolution holds the monthly snapshots of a contribution simulation,
	// empty for the single-purchase path.
	Evolution []Snapshot
}
