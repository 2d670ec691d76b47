package foliotrack

import (
	"errors"
	"fmt"

	"github.com/PhDFlo/foliotrack/date"
)

// Structural invariant violations stop the calling operation; per-security
// external-data failures are soft (the field keeps its last known value and
// the error is reported, not raised). See Portfolio.RefreshAllPrices.

// ErrPortfolioIncomplete is returned by operations that need a complete
// allocation when the target shares do not sum to 1.
var ErrPortfolioIncomplete = errors.New("portfolio is not complete: target shares do not sum to 1")

// ErrEmptyPortfolio is returned when a solve is requested on a portfolio
// with no securities, before any solver call is made.
var ErrEmptyPortfolio = errors.New("portfolio is empty")

// NotFoundError reports a ticker that is not part of the portfolio.
type NotFoundError struct {
	Ticker string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("security %q not found in the portfolio", e.Ticker)
}

// RateError reports that the currency-rate provider has no observation
// for a currency on a date.
type RateError struct {
	Currency string
	On       date.Date // zero means "latest"
	Err      error
}

func (e *RateError) Error() string {
	on := "latest"
	if !e.On.IsZero() {
		on = e.On.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("no exchange rate for %s on %s: %v", e.Currency, on, e.Err)
	}
	return fmt.Sprintf("no exchange rate for %s on %s", e.Currency, on)
}

func (e *RateError) Unwrap() error { return e.Err }

// MarketDataError reports a failed price lookup for a single security.
type MarketDataError struct {
	Ticker string
	Err    error
}

func (e *MarketDataError) Error() string {
	return fmt.Sprintf("no market data for %q: %v", e.Ticker, e.Err)
}

func (e *MarketDataError) Unwrap() error { return e.Err }

// SolverError reports a solve that did not produce a solution. The
// portfolio is left untouched when it is returned.
type SolverError struct {
	Status string
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("equilibrium solve failed with status %q", e.Status)
}
