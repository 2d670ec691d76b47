package foliotrack

import (
	"fmt"
	"iter"
	"log"
	"slices"

	"github.com/PhDFlo/foliotrack/date"
)

// shareSumTolerance is how far from 1 the target shares may sum before
// the portfolio is considered incomplete.
const shareSumTolerance = 1e-6

// Portfolio is an ordered collection of unique securities (keyed by
// ticker), the currency all derived amounts are expressed in, and the
// append-only log of executed purchases.
//
// A portfolio is meant to be owned and mutated by a single caller at a
// time; there is no internal synchronization.
type Portfolio struct {
	currency   string
	securities []*Security // insertion order, for deterministic iteration and output
	index      map[string]*Security
	purchases  []Purchase
	total      Money // derived by ComputeActualShares
}

// NewPortfolio creates an empty portfolio valued in the given currency.
func NewPortfolio(currency string) (*Portfolio, error) {
	if err := ValidateCurrency(currency); err != nil {
		return nil, err
	}
	return &Portfolio{
		currency: currency,
		index:    make(map[string]*Security),
	}, nil
}

// Currency returns the portfolio's valuation currency.
func (p *Portfolio) Currency() string { return p.currency }

// Len returns the number of securities held.
func (p *Portfolio) Len() int { return len(p.securities) }

// Security returns the holding for a ticker, or nil if unknown.
func (p *Portfolio) Security(ticker string) *Security { return p.index[ticker] }

// Securities iterates over the holdings in insertion order.
func (p *Portfolio) Securities() iter.Seq[*Security] {
	return func(yield func(*Security) bool) {
		for _, s := range p.securities {
			if !yield(s) {
				return
			}
		}
	}
}

// Purchases returns the staged purchase log, oldest first.
func (p *Portfolio) Purchases() []Purchase { return slices.Clone(p.purchases) }

// TotalInvested returns the sum of all invested amounts, as last derived
// by ComputeActualShares.
func (p *Portfolio) TotalInvested() Money { return p.total }

// Add inserts a security with its target share. Duplicate tickers are
// rejected; the solve scratch fields start at zero.
func (p *Portfolio) Add(s *Security, target Percent) error {
	if _, exists := p.index[s.ticker]; exists {
		return fmt.Errorf("security %q is already in the portfolio", s.ticker)
	}
	if target < 0 || target > 1 {
		return fmt.Errorf("invalid target share %v for %q: want a fraction in [0,1]", target, s.ticker)
	}
	s.targetShare = target
	s.resetSolve()
	p.securities = append(p.securities, s)
	p.index[s.ticker] = s
	return nil
}

// Remove drops a security from the portfolio. The remaining target
// shares are left as they are; the caller re-spreads them explicitly.
func (p *Portfolio) Remove(ticker string) error {
	s, ok := p.index[ticker]
	if !ok {
		return &NotFoundError{Ticker: ticker}
	}
	delete(p.index, ticker)
	p.securities = slices.DeleteFunc(p.securities, func(x *Security) bool { return x == s })
	return nil
}

// SetTargetShare sets the target share of an existing security.
func (p *Portfolio) SetTargetShare(ticker string, target Percent) error {
	s, ok := p.index[ticker]
	if !ok {
		return &NotFoundError{Ticker: ticker}
	}
	if target < 0 || target > 1 {
		return fmt.Errorf("invalid target share %v for %q: want a fraction in [0,1]", target, ticker)
	}
	s.targetShare = target
	return nil
}

// DistributeRemainingShare spreads the share left by the excluded
// tickers (1 minus the sum of their targets) evenly over every other
// security.
func (p *Portfolio) DistributeRemainingShare(excluded ...string) {
	fixed := Percent(0)
	for _, ticker := range excluded {
		if s, ok := p.index[ticker]; ok {
			fixed += s.targetShare
		}
	}
	var rest []*Security
	for _, s := range p.securities {
		if !slices.Contains(excluded, s.ticker) {
			rest = append(rest, s)
		}
	}
	if len(rest) == 0 {
		return
	}
	each := (1 - fixed) / Percent(len(rest))
	for _, s := range rest {
		s.targetShare = each
	}
}

// VerifyTargetShareSum reports whether the target shares sum to 1 within
// tolerance. It never mutates state; operations that depend on a
// complete allocation use it as a precondition gate.
func (p *Portfolio) VerifyTargetShareSum() bool {
	sum := Percent(0)
	for _, s := range p.securities {
		sum += s.targetShare
	}
	diff := float64(sum - 1)
	if diff < 0 {
		diff = -diff
	}
	return diff <= shareSumTolerance
}

// ComputeActualShares derives the total invested amount and each
// security's actual share of it. It refuses to run on an incomplete
// allocation.
func (p *Portfolio) ComputeActualShares() error {
	if !p.VerifyTargetShareSum() {
		return ErrPortfolioIncomplete
	}
	total := M(0, p.currency)
	for _, s := range p.securities {
		total = total.Add(s.invested)
	}
	p.total = total
	for _, s := range p.securities {
		s.ComputeActualShare(total)
	}
	return nil
}

// Buy executes a purchase of a held security, appends the record to the
// staged purchase log, and recomputes the actual shares.
//
// A zero unitPrice defaults to the security's current portfolio-currency
// price, a zero day to today.
func (p *Portfolio) Buy(ticker string, quantity Quantity, unitPrice, fee Money, day date.Date) (Purchase, error) {
	s, ok := p.index[ticker]
	if !ok {
		return Purchase{}, &NotFoundError{Ticker: ticker}
	}
	purchase, err := s.Buy(quantity, unitPrice, fee, day)
	if err != nil {
		return Purchase{}, err
	}
	p.purchases = append(p.purchases, purchase)
	if err := p.ComputeActualShares(); err != nil {
		return purchase, err
	}
	return purchase, nil
}

// Sell removes 'quantity' units of a held security and recomputes the
// actual shares. Selling more than is held is rejected; selling the
// whole position drops the security from the portfolio (the remaining
// target shares are left for the caller to re-spread, like Remove).
func (p *Portfolio) Sell(ticker string, quantity Quantity) error {
	s, ok := p.index[ticker]
	if !ok {
		return &NotFoundError{Ticker: ticker}
	}
	if err := s.Sell(quantity); err != nil {
		return err
	}
	if s.quantity.IsZero() {
		if err := p.Remove(ticker); err != nil {
			return err
		}
		if !p.VerifyTargetShareSum() {
			// the dropped target leaves the allocation incomplete; shares
			// recompute once the caller re-spreads
			return nil
		}
	}
	return p.ComputeActualShares()
}

// RefreshAllPrices fetches a fresh native price for every security from
// the market-data provider and refreshes its exchange rate against the
// portfolio currency.
//
// Failures are per-security and soft: the stale value stays in place,
// a warning is logged, and the collected errors are returned for the
// caller to inspect. The batch never aborts.
func (p *Portfolio) RefreshAllPrices(md MarketData, converter *Converter) []error {
	var failures []error
	for _, s := range p.securities {
		quote, err := md.Quote(s.ticker)
		if err != nil {
			err = &MarketDataError{Ticker: s.ticker, Err: err}
			log.Printf("warning: %v, keeping last price %v", err, s.priceNative)
			failures = append(failures, err)
		} else {
			if s.name == "" && quote.Name != "" {
				s.name = quote.Name
			}
			if quote.Currency != "" && quote.Currency != s.currency {
				log.Printf("warning: %q is quoted in %s but declared in %s", s.ticker, quote.Currency, s.currency)
			}
			if err := s.RefreshPrice(M(quote.Price, s.currency)); err != nil {
				failures = append(failures, &MarketDataError{Ticker: s.ticker, Err: err})
			}
		}

		if err := s.RefreshExchangeRate(p.currency, converter); err != nil {
			log.Printf("warning: %v, keeping last rate %v", err, s.exchangeRate)
			failures = append(failures, err)
		}
	}
	return failures
}
