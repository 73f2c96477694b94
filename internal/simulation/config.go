package simulation

import (
	"fmt"
	"time"
)

// DefaultRiskFreeRate is the annual risk-free rate used for the Sharpe ratio
// when the configuration leaves it unset.
const DefaultRiskFreeRate = 0.05

// Config describes one simulation run.
type Config struct {
	// InitialAmount is the lump sum invested at the purchase date. Must be
	// positive.
	InitialAmount float64
	// PurchaseDate is the requested purchase date; the purchase executes at
	// the first bar on or after it. Zero means the series start.
	PurchaseDate time.Time
	// ConsiderDividends enables dividend processing.
	ConsiderDividends bool
	// ReinvestDividends buys additional shares at each payout instead of
	// accruing cash. Ignored when ConsiderDividends is false.
	ReinvestDividends bool
	// MonthlyContribution is the fixed amount invested at the start of each
	// subsequent month. Zero disables the contribution path.
	MonthlyContribution float64
	// RiskFreeRate is the annual rate for the Sharpe ratio; zero selects
	// DefaultRiskFreeRate.
	RiskFreeRate float64
}

// Validate rejects configurations that must never reach a data fetch.
func (c Config) Validate() error {
	if c.InitialAmount <= 0 {
		return fmt.Errorf("%w: initial amount must be positive, got %v", ErrInvalidConfig, c.InitialAmount)
	}
	if c.MonthlyContribution < 0 {
		return fmt.Errorf("%w: monthly contribution must not be negative, got %v", ErrInvalidConfig, c.MonthlyContribution)
	}
	return nil
}

// riskFreeRate returns the effective rate.
func (c Config) riskFreeRate() float64 {
	if c.RiskFreeRate == 0 {
		return DefaultRiskFreeRate
	}
	return c.RiskFreeRate
}
