package foliotrack

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PhDFlo/foliotrack/date"
)

func TestEncodeDecodePortfolio_roundTrip(t *testing.T) {
	p := newTestPortfolio(t)
	converter := NewConverter(stubRates{ref: "EUR", rates: map[string]float64{"USD": 1.10}})
	usd, err := NewSecurity("MCD.US", "McDonald's", "USD", M(291.25, "USD"))
	if err != nil {
		t.Fatalf("NewSecurity: %v", err)
	}
	if err := p.Add(usd, 0); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := usd.RefreshExchangeRate("EUR", converter); err != nil {
		t.Fatalf("RefreshExchangeRate: %v", err)
	}
	p.DistributeRemainingShare()
	if _, err := p.Buy("MSCI.PA", Q(2), M(480.0, "EUR"), M(1.5, "EUR"), date.New(2025, 3, 14)); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("EncodePortfolio returned error: %v", err)
	}

	q, err := DecodePortfolio(&buf)
	if err != nil {
		t.Fatalf("DecodePortfolio returned error: %v", err)
	}

	if q.Currency() != p.Currency() {
		t.Errorf("currency = %q, want %q", q.Currency(), p.Currency())
	}
	if q.Len() != p.Len() {
		t.Fatalf("Len() = %d, want %d", q.Len(), p.Len())
	}
	for want := range p.Securities() {
		got := q.Security(want.Ticker())
		if got == nil {
			t.Fatalf("security %q lost in the round trip", want.Ticker())
		}
		if got.Name() != want.Name() || got.Currency() != want.Currency() {
			t.Errorf("%s identity = (%q, %q), want (%q, %q)",
				want.Ticker(), got.Name(), got.Currency(), want.Name(), want.Currency())
		}
		if !got.PriceNative().Equal(want.PriceNative()) {
			t.Errorf("%s native price = %v, want %v", want.Ticker(), got.PriceNative(), want.PriceNative())
		}
		if !got.Price().Equal(want.Price()) {
			t.Errorf("%s price = %v, want %v", want.Ticker(), got.Price(), want.Price())
		}
		if got.ExchangeRate() != want.ExchangeRate() {
			t.Errorf("%s exchange rate = %v, want %v", want.Ticker(), got.ExchangeRate(), want.ExchangeRate())
		}
		if !got.Quantity().Equal(want.Quantity()) {
			t.Errorf("%s quantity = %v, want %v", want.Ticker(), got.Quantity(), want.Quantity())
		}
		if !got.AmountInvested().Equal(want.AmountInvested()) {
			t.Errorf("%s invested = %v, want %v", want.Ticker(), got.AmountInvested(), want.AmountInvested())
		}
		if !got.TargetShare().Equal(want.TargetShare()) {
			t.Errorf("%s target share = %v, want %v", want.Ticker(), got.TargetShare(), want.TargetShare())
		}
	}

	gotLog, wantLog := q.Purchases(), p.Purchases()
	if len(gotLog) != len(wantLog) {
		t.Fatalf("len(Purchases()) = %d, want %d", len(gotLog), len(wantLog))
	}
	for i := range wantLog {
		if gotLog[i].Ticker != wantLog[i].Ticker || gotLog[i].Date != wantLog[i].Date ||
			!gotLog[i].Quantity.Equal(wantLog[i].Quantity) || !gotLog[i].Amount().Equal(wantLog[i].Amount()) {
			t.Errorf("purchase %d = %+v, want %+v", i, gotLog[i], wantLog[i])
		}
	}
}

func TestEncodePortfolio_fieldNames(t *testing.T) {
	p := newTestPortfolio(t)
	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("EncodePortfolio returned error: %v", err)
	}
	record := buf.String()
	for _, field := range []string{
		`"currency"`, `"securities"`, `"staged_purchases"`,
		`"ticker"`, `"price_native"`, `"price_in_portfolio_currency"`, `"exchange_rate"`,
		`"quantity_held"`, `"amount_invested"`, `"target_share"`, `"actual_share"`,
		`"final_share"`, `"number_to_buy"`, `"amount_to_invest"`,
	} {
		if !strings.Contains(record, field) {
			t.Errorf("encoded portfolio is missing field %s:\n%s", field, record)
		}
	}
}

func TestDecodePortfolio_rejectsCorruptRecords(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"not json", "nope"},
		{"bad currency", `{"currency":"euros","securities":[]}`},
		{"bad ticker", `{"currency":"EUR","securities":[{"ticker":"bad ticker","currency":"EUR","price_native":10}]}`},
		{"duplicate ticker", `{"currency":"EUR","securities":[
			{"ticker":"AAA.PA","currency":"EUR","price_native":10,"target_share":0.5},
			{"ticker":"AAA.PA","currency":"EUR","price_native":10,"target_share":0.5}]}`},
	}
	for _, test := range tests {
		if _, err := DecodePortfolio(strings.NewReader(test.record)); err == nil {
			t.Errorf("%s: DecodePortfolio should fail", test.name)
		}
	}
}

func TestSaveLoadPortfolio(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "portfolio.json")
	p := newTestPortfolio(t)

	if err := SavePortfolio(filename, p); err != nil {
		t.Fatalf("SavePortfolio returned error: %v", err)
	}
	q, err := LoadPortfolio(filename)
	if err != nil {
		t.Fatalf("LoadPortfolio returned error: %v", err)
	}
	if q.Len() != p.Len() || q.Currency() != p.Currency() {
		t.Errorf("loaded portfolio = (%d securities, %s), want (%d, %s)",
			q.Len(), q.Currency(), p.Len(), p.Currency())
	}

	if _, err := LoadPortfolio(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadPortfolio on a missing file should fail")
	}
}
