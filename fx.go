package foliotrack

import "github.com/PhDFlo/foliotrack/date"

// RateProvider gives the value of a currency against a fixed reference
// currency (the provider's "home" currency, EUR for the ECB).
//
// The returned rate is the number of units of 'currency' per one unit of
// the reference, as of 'on' (the latest available observation when 'on'
// is the zero date).
type RateProvider interface {
	Reference() string
	RateAgainstReference(currency string, on date.Date) (float64, error)
}

// Converter computes cross rates between two currency codes through the
// provider's reference currency. It is stateless: every Rate call goes
// to the provider (minus the trivial same-currency case).
type Converter struct {
	provider RateProvider
}

// NewConverter returns a Converter backed by the given provider.
func NewConverter(p RateProvider) *Converter { return &Converter{provider: p} }

// Rate returns how many units of 'to' one unit of 'from' buys, as of
// 'on' (zero date means latest).
//
// Failures are reported as *RateError naming the currency and the date
// the provider had no observation for.
func (c *Converter) Rate(from, to string, on date.Date) (float64, error) {
	if from == to {
		return 1.0, nil
	}

	rateFrom, err := c.rateAgainstReference(from, on)
	if err != nil {
		return 0, err
	}
	rateTo, err := c.rateAgainstReference(to, on)
	if err != nil {
		return 0, err
	}

	// One reference unit buys rateFrom units of 'from' and rateTo units
	// of 'to', hence one 'from' unit buys (1/rateFrom)*rateTo 'to' units.
	return (1 / rateFrom) * rateTo, nil
}

func (c *Converter) rateAgainstReference(currency string, on date.Date) (float64, error) {
	if currency == c.provider.Reference() {
		return 1.0, nil
	}
	rate, err := c.provider.RateAgainstReference(currency, on)
	if err != nil {
		return 0, &RateError{Currency: currency, On: on, Err: err}
	}
	if rate <= 0 {
		return 0, &RateError{Currency: currency, On: on}
	}
	return rate, nil
}
