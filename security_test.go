package foliotrack

import (
	"errors"
	"testing"

	"github.com/PhDFlo/foliotrack/date"
)

func TestValidateTicker(t *testing.T) {
	tests := []struct {
		ticker string
		valid  bool
	}{
		{"NVDA", true},
		{"MCD.US", true},
		{"MSCI", true},
		{"1E500", true},
		{"ESE.PA", true},
		{"", false},
		{"nvda", false},
		{"NVDA.", false},
		{".US", false},
		{"TOOLONGTICKER", false},
		{"NV DA", false},
	}
	for _, test := range tests {
		err := ValidateTicker(test.ticker)
		if test.valid && err != nil {
			t.Errorf("ValidateTicker(%q) = %v, want nil", test.ticker, err)
		}
		if !test.valid && err == nil {
			t.Errorf("ValidateTicker(%q) = nil, want an error", test.ticker)
		}
	}
}

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"EUR", true},
		{"USD", true},
		{"eur", false},
		{"EU", false},
		{"EURO", false},
		{"", false},
	}
	for _, test := range tests {
		err := ValidateCurrency(test.code)
		if test.valid && err != nil {
			t.Errorf("ValidateCurrency(%q) = %v, want nil", test.code, err)
		}
		if !test.valid && err == nil {
			t.Errorf("ValidateCurrency(%q) = nil, want an error", test.code)
		}
	}
}

func TestNewSecurity(t *testing.T) {
	sec, err := NewSecurity("MCD.US", "McDonald's", "USD", M(291.25, "USD"))
	if err != nil {
		t.Fatalf("NewSecurity returned error: %v", err)
	}
	if got := sec.ExchangeRate(); got != 1.0 {
		t.Errorf("new security exchange rate = %v, want 1.0", got)
	}
	if got, want := sec.Price(), M(291.25, "USD"); !got.Equal(want) {
		t.Errorf("new security price = %v, want %v (native until the first rate refresh)", got, want)
	}
	if !sec.AmountInvested().IsZero() {
		t.Errorf("new security invested = %v, want zero", sec.AmountInvested())
	}
}

func TestNewSecurity_rejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		ticker   string
		currency string
		price    float64
	}{
		{"bad ticker", "bad ticker", "EUR", 10},
		{"bad currency", "MSCI.PA", "EURO", 10},
		{"zero price", "MSCI.PA", "EUR", 0},
		{"negative price", "MSCI.PA", "EUR", -5},
	}
	for _, test := range tests {
		if _, err := NewSecurity(test.ticker, "", test.currency, M(test.price, test.currency)); err == nil {
			t.Errorf("%s: NewSecurity(%q, %q, %v) = nil, want an error", test.name, test.ticker, test.currency, test.price)
		}
	}
}

func TestSecurityBuy(t *testing.T) {
	sec, err := NewSecurity("MSCI.PA", "MSCI World", "EUR", M(500.0, "EUR"))
	if err != nil {
		t.Fatalf("NewSecurity: %v", err)
	}

	day := date.New(2025, 3, 14)
	purchase, err := sec.Buy(Q(2), M(480.0, "EUR"), M(1.5, "EUR"), day)
	if err != nil {
		t.Fatalf("Buy returned error: %v", err)
	}

	if got, want := sec.Quantity(), Q(2); !got.Equal(want) {
		t.Errorf("quantity after buy = %v, want %v", got, want)
	}
	// fee stays out of the invested amount
	if got, want := sec.AmountInvested(), M(960.0, "EUR"); !got.Equal(want) {
		t.Errorf("invested after buy = %v, want %v", got, want)
	}
	if got, want := purchase.Amount(), M(961.5, "EUR"); !got.Equal(want) {
		t.Errorf("purchase amount = %v, want %v (fee included)", got, want)
	}
	if purchase.Date != day {
		t.Errorf("purchase date = %v, want %v", purchase.Date, day)
	}
}

func TestSecurityBuy_defaults(t *testing.T) {
	sec, err := NewSecurity("MSCI.PA", "", "EUR", M(500.0, "EUR"))
	if err != nil {
		t.Fatalf("NewSecurity: %v", err)
	}

	purchase, err := sec.Buy(Q(1), Money{}, Money{}, date.Date{})
	if err != nil {
		t.Fatalf("Buy returned error: %v", err)
	}
	if got, want := purchase.UnitPrice, M(500.0, "EUR"); !got.Equal(want) {
		t.Errorf("default unit price = %v, want the current price %v", got, want)
	}
	if purchase.Date != date.Today() {
		t.Errorf("default purchase date = %v, want today", purchase.Date)
	}
}

func TestSecurityBuy_rejectsInvalid(t *testing.T) {
	sec, err := NewSecurity("MSCI.PA", "", "EUR", M(500.0, "EUR"))
	if err != nil {
		t.Fatalf("NewSecurity: %v", err)
	}
	if _, err := sec.Buy(Q(0), Money{}, Money{}, date.Date{}); err == nil {
		t.Error("Buy with zero quantity should fail")
	}
	if _, err := sec.Buy(Q(-1), Money{}, Money{}, date.Date{}); err == nil {
		t.Error("Buy with negative quantity should fail")
	}
	if _, err := sec.Buy(Q(1), M(-10.0, "EUR"), Money{}, date.Date{}); err == nil {
		t.Error("Buy with negative price should fail")
	}
	if _, err := sec.Buy(Q(1), Money{}, M(-1.0, "EUR"), date.Date{}); err == nil {
		t.Error("Buy with negative fee should fail")
	}
}

func TestSecurityBuy_additive(t *testing.T) {
	// two buys at the same price amount to one buy of the summed quantity
	one, err := NewSecurity("MSCI.PA", "", "EUR", M(500.0, "EUR"))
	if err != nil {
		t.Fatalf("NewSecurity: %v", err)
	}
	two, err := NewSecurity("MSCI.PA", "", "EUR", M(500.0, "EUR"))
	if err != nil {
		t.Fatalf("NewSecurity: %v", err)
	}

	if _, err := one.Buy(Q(5), M(480.0, "EUR"), Money{}, date.Date{}); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if _, err := two.Buy(Q(2), M(480.0, "EUR"), Money{}, date.Date{}); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if _, err := two.Buy(Q(3), M(480.0, "EUR"), Money{}, date.Date{}); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	if got, want := two.Quantity(), one.Quantity(); !got.Equal(want) {
		t.Errorf("quantity after split buys = %v, want %v", got, want)
	}
	if got, want := two.AmountInvested(), one.AmountInvested(); !got.Equal(want) {
		t.Errorf("invested after split buys = %v, want %v", got, want)
	}
}

func TestSecuritySell(t *testing.T) {
	sec, err := NewSecurity("MSCI.PA", "", "EUR", M(500.0, "EUR"))
	if err != nil {
		t.Fatalf("NewSecurity: %v", err)
	}
	if _, err := sec.Buy(Q(5), Money{}, Money{}, date.Date{}); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	if err := sec.Sell(Q(2)); err != nil {
		t.Fatalf("Sell returned error: %v", err)
	}
	if got, want := sec.Quantity(), Q(3); !got.Equal(want) {
		t.Errorf("quantity after sell = %v, want %v", got, want)
	}
	// invested is re-marked at the current price
	if got, want := sec.AmountInvested(), M(1500.0, "EUR"); !got.Equal(want) {
		t.Errorf("invested after sell = %v, want %v", got, want)
	}
}

func TestSecuritySell_rejectsInvalid(t *testing.T) {
	sec, err := NewSecurity("MSCI.PA", "", "EUR", M(500.0, "EUR"))
	if err != nil {
		t.Fatalf("NewSecurity: %v", err)
	}
	if _, err := sec.Buy(Q(2), Money{}, Money{}, date.Date{}); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	if err := sec.Sell(Q(0)); err == nil {
		t.Error("Sell with zero quantity should fail")
	}
	if err := sec.Sell(Q(-1)); err == nil {
		t.Error("Sell with negative quantity should fail")
	}
	if err := sec.Sell(Q(3)); err == nil {
		t.Error("Sell beyond the held quantity should fail")
	}
	// a rejected sell leaves the holding untouched
	if got, want := sec.Quantity(), Q(2); !got.Equal(want) {
		t.Errorf("quantity after rejected sells = %v, want %v", got, want)
	}
	if got, want := sec.AmountInvested(), M(1000.0, "EUR"); !got.Equal(want) {
		t.Errorf("invested after rejected sells = %v, want %v", got, want)
	}
}

func TestRefreshPrice(t *testing.T) {
	sec, err := NewSecurity("MCD.US", "", "USD", M(290.0, "USD"))
	if err != nil {
		t.Fatalf("NewSecurity: %v", err)
	}
	if _, err := sec.Buy(Q(2), Money{}, Money{}, date.Date{}); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	if err := sec.RefreshPrice(M(300.0, "USD")); err != nil {
		t.Fatalf("RefreshPrice returned error: %v", err)
	}
	if got, want := sec.Price(), M(300.0, "USD"); !got.Equal(want) {
		t.Errorf("price after refresh = %v, want %v", got, want)
	}
	// invested re-marks to quantity*price
	if got, want := sec.AmountInvested(), M(600.0, "USD"); !got.Equal(want) {
		t.Errorf("invested after refresh = %v, want %v", got, want)
	}

	if err := sec.RefreshPrice(M(0, "USD")); err == nil {
		t.Error("RefreshPrice with a non positive price should fail")
	}
	if got, want := sec.Price(), M(300.0, "USD"); !got.Equal(want) {
		t.Errorf("price after failed refresh = %v, want the previous %v", got, want)
	}
}

// stubRates is a RateProvider with canned rates against a reference.
type stubRates struct {
	ref   string
	rates map[string]float64
}

func (s stubRates) Reference() string { return s.ref }
func (s stubRates) RateAgainstReference(currency string, _ date.Date) (float64, error) {
	r, ok := s.rates[currency]
	if !ok {
		return 0, errors.New("no observation")
	}
	return r, nil
}

func TestRefreshExchangeRate(t *testing.T) {
	converter := NewConverter(stubRates{ref: "EUR", rates: map[string]float64{"USD": 1.10}})

	sec, err := NewSecurity("MCD.US", "", "USD", M(291.25, "USD"))
	if err != nil {
		t.Fatalf("NewSecurity: %v", err)
	}
	if _, err := sec.Buy(Q(1), Money{}, Money{}, date.Date{}); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	if err := sec.RefreshExchangeRate("EUR", converter); err != nil {
		t.Fatalf("RefreshExchangeRate returned error: %v", err)
	}
	// 1 USD = 1/1.10 EUR
	wantRate := 1.0 / 1.10
	if got := sec.ExchangeRate(); !closeTo(got, wantRate) {
		t.Errorf("exchange rate = %v, want %v", got, wantRate)
	}
	// price is converted and rounded to cents: 291.25/1.10 = 264.772... -> 264.77
	if got, want := sec.Price(), M(264.77, "EUR"); !got.Equal(want) {
		t.Errorf("converted price = %v, want %v", got, want)
	}
}

func TestRefreshExchangeRate_sameCurrency(t *testing.T) {
	// a provider that always fails proves it is never consulted
	converter := NewConverter(stubRates{ref: "EUR"})

	sec, err := NewSecurity("MSCI.PA", "", "EUR", M(500.0, "EUR"))
	if err != nil {
		t.Fatalf("NewSecurity: %v", err)
	}
	if err := sec.RefreshExchangeRate("EUR", converter); err != nil {
		t.Fatalf("RefreshExchangeRate for the portfolio currency should not fail: %v", err)
	}
	if got := sec.ExchangeRate(); got != 1.0 {
		t.Errorf("exchange rate = %v, want 1.0", got)
	}
}

func TestRefreshExchangeRate_keepsOldRateOnFailure(t *testing.T) {
	good := NewConverter(stubRates{ref: "EUR", rates: map[string]float64{"USD": 1.10}})
	bad := NewConverter(stubRates{ref: "EUR"})

	sec, err := NewSecurity("MCD.US", "", "USD", M(291.25, "USD"))
	if err != nil {
		t.Fatalf("NewSecurity: %v", err)
	}
	if err := sec.RefreshExchangeRate("EUR", good); err != nil {
		t.Fatalf("RefreshExchangeRate: %v", err)
	}
	before := sec.ExchangeRate()

	err = sec.RefreshExchangeRate("EUR", bad)
	if err == nil {
		t.Fatal("RefreshExchangeRate with a failing provider should return the error")
	}
	var rateErr *RateError
	if !errors.As(err, &rateErr) {
		t.Fatalf("error = %v, want a *RateError", err)
	}
	if got := sec.ExchangeRate(); got != before {
		t.Errorf("exchange rate after failure = %v, want the previous %v", got, before)
	}
}

func closeTo(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
