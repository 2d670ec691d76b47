package foliotrack

import (
	"fmt"
	"regexp"

	"github.com/PhDFlo/foliotrack/date"
)

// tickerRegex checks the ticker format: 1 to 12 uppercase alphanumerics,
// optionally followed by a '.' separated venue suffix (e.g. "MCD.US").
var tickerRegex = regexp.MustCompile(`^[A-Z0-9]{1,12}(\.[A-Z0-9]{1,8})?$`)

// currencyCodeRegex checks for the format: 3 uppercase letters (ISO 4217).
var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateTicker checks that a ticker is well formed.
func ValidateTicker(ticker string) error {
	if !tickerRegex.MatchString(ticker) {
		return fmt.Errorf("invalid ticker %q: want uppercase alphanumerics with an optional venue suffix", ticker)
	}
	return nil
}

// ValidateCurrency checks that a currency code is well formed.
func ValidateCurrency(code string) error {
	if !currencyCodeRegex.MatchString(code) {
		return fmt.Errorf("invalid currency %q: want 3 uppercase letters", code)
	}
	return nil
}

// Security represents a single tradeable holding: identity, currency,
// native and portfolio-converted price, units held, and the three shares
// (target fixed by the user, actual derived from holdings, final
// projected by the last solve).
//
// Convention for amountInvested: Buy adds quantity*unit_price (the cash
// outlay, fee excluded), and every price refresh re-marks it to
// quantity*price in portfolio currency. Actual shares therefore track
// market value once prices have been refreshed at least once.
type Security struct {
	ticker   string
	name     string
	currency string

	priceNative  Money   // in the security's own currency, always positive
	exchangeRate float64 // portfolio-currency units per security-currency unit, always positive
	price        Money   // in portfolio currency, rounded to the minor unit

	quantity Quantity // units held, never negative
	invested Money    // in portfolio currency

	yearlyCharge Percent // management fee declared by the issuer, informational

	targetShare Percent
	actualShare Percent
	finalShare  Percent

	// scratch fields from the last solve
	numberToBuy    int64
	amountToInvest Money
}

// NewSecurity creates a security priced in its own currency. The exchange
// rate starts at 1.0 so the portfolio price equals the native price until
// the first RefreshExchangeRate.
func NewSecurity(ticker, name, currency string, price Money) (*Security, error) {
	if err := ValidateTicker(ticker); err != nil {
		return nil, err
	}
	if err := ValidateCurrency(currency); err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("invalid price for %q: must be positive, got %v", ticker, price)
	}
	s := &Security{
		ticker:       ticker,
		name:         name,
		currency:     currency,
		priceNative:  price.In(currency),
		exchangeRate: 1.0,
	}
	s.mark()
	return s, nil
}

// mark recomputes the portfolio-currency price from the last known
// exchange rate and re-marks the invested amount.
func (s *Security) mark() {
	s.price = s.priceNative.Scale(s.exchangeRate).Round()
	s.invested = s.price.Mul(s.quantity)
}

func (s *Security) Ticker() string         { return s.ticker }
func (s *Security) Name() string           { return s.name }
func (s *Security) Currency() string       { return s.currency }
func (s *Security) PriceNative() Money     { return s.priceNative }
func (s *Security) ExchangeRate() float64  { return s.exchangeRate }
func (s *Security) Price() Money           { return s.price }
func (s *Security) Quantity() Quantity     { return s.quantity }
func (s *Security) AmountInvested() Money  { return s.invested }
func (s *Security) YearlyCharge() Percent  { return s.yearlyCharge }
func (s *Security) TargetShare() Percent   { return s.targetShare }
func (s *Security) ActualShare() Percent   { return s.actualShare }
func (s *Security) FinalShare() Percent    { return s.finalShare }
func (s *Security) NumberToBuy() int64     { return s.numberToBuy }
func (s *Security) AmountToInvest() Money  { return s.amountToInvest }

// SetYearlyCharge records the issuer's yearly management fee.
func (s *Security) SetYearlyCharge(charge Percent) { s.yearlyCharge = charge }

func (s *Security) String() string {
	return fmt.Sprintf("Security(%s %q %s %v)", s.ticker, s.name, s.currency, s.priceNative)
}

// Buy records the purchase of 'quantity' units, incrementing the units
// held and the invested amount by quantity*unitPrice.
//
// A zero unitPrice defaults to the current portfolio-currency price, a
// zero day defaults to today. The fee goes on the returned record only,
// not into the invested amount.
func (s *Security) Buy(quantity Quantity, unitPrice, fee Money, day date.Date) (Purchase, error) {
	if !quantity.IsPositive() {
		return Purchase{}, fmt.Errorf("invalid quantity %v for %q: must be positive", quantity, s.ticker)
	}
	if unitPrice.IsNegative() || fee.IsNegative() {
		return Purchase{}, fmt.Errorf("invalid negative price or fee for %q", s.ticker)
	}
	if unitPrice.IsZero() {
		unitPrice = s.price
	}
	if day.IsZero() {
		day = date.Today()
	}

	s.quantity = s.quantity.Add(quantity)
	s.invested = s.invested.Add(unitPrice.Mul(quantity))

	return Purchase{
		Ticker:    s.ticker,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Fee:       fee,
		Date:      day,
	}, nil
}

// Sell removes 'quantity' units from the holding and re-marks the
// invested amount. Selling more than is held is rejected; selling the
// whole position is the caller's cue to drop the security.
func (s *Security) Sell(quantity Quantity) error {
	if !quantity.IsPositive() {
		return fmt.Errorf("invalid quantity %v for %q: must be positive", quantity, s.ticker)
	}
	if quantity.GreaterThan(s.quantity) {
		return fmt.Errorf("cannot sell %v units of %q: only %v units held", quantity, s.ticker, s.quantity)
	}
	s.quantity = s.quantity.Sub(quantity)
	s.mark()
	return nil
}

// RefreshPrice sets a new native price and re-marks the derived amounts
// with the last known exchange rate.
func (s *Security) RefreshPrice(native Money) error {
	if !native.IsPositive() {
		return fmt.Errorf("invalid price for %q: must be positive, got %v", s.ticker, native)
	}
	s.priceNative = native.In(s.currency)
	s.mark()
	return nil
}

// RefreshExchangeRate updates the exchange rate against the portfolio
// currency using the converter, then re-marks the derived amounts.
//
// On a rate failure the previous rate (and price) are retained and the
// error is returned for the caller to report; the refresh of other
// fields or securities must go on.
func (s *Security) RefreshExchangeRate(portfolioCurrency string, converter *Converter) error {
	if s.currency == portfolioCurrency {
		s.exchangeRate = 1.0
		s.mark()
		return nil
	}
	rate, err := converter.Rate(s.currency, portfolioCurrency, date.Date{})
	if err != nil {
		return err
	}
	s.exchangeRate = rate
	s.mark()
	return nil
}

// ComputeActualShare derives the security's share of the given total
// invested amount, rounded to the share precision. A zero total means a
// zero share.
func (s *Security) ComputeActualShare(total Money) {
	if total.IsZero() {
		s.actualShare = 0
		return
	}
	s.actualShare = Percent(s.invested.Div(total).InexactFloat64()).Round()
}

// resetSolve clears the scratch fields from a previous solve.
func (s *Security) resetSolve() {
	s.numberToBuy = 0
	s.amountToInvest = Money{}.In(s.price.Currency())
	s.finalShare = 0
}
