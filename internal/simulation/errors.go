package simulation

import "errors"

var (
	// ErrInvalidConfig rejects a configuration before any data fetch.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidPrice means a required price lookup returned a zero or
	// negative close. The simulation aborts for that symbol only.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrInsufficientData means the series has fewer than two bars, so
	// daily returns and risk metrics cannot be computed. Valuation may
	// still proceed with a single bar.
	ErrInsufficientData = errors.New("insufficient data")
)
