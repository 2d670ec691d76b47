package foliotrack

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PhDFlo/foliotrack/date"
)

const importSample = `name,ticker,currency,price,yearly_charge,target_share,amount_invested,quantity_held
MSCI World,MSCI.PA,EUR,512.34,0.0038,0.6,1024.68,2
S&P 500,SP500.PA,EUR,310,0.0015,0.4,0,0
`

func TestImportPortfolio(t *testing.T) {
	p, err := ImportPortfolio("EUR", strings.NewReader(importSample))
	if err != nil {
		t.Fatalf("ImportPortfolio returned error: %v", err)
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}

	msci := p.Security("MSCI.PA")
	if msci == nil {
		t.Fatal("MSCI.PA not imported")
	}
	if msci.Name() != "MSCI World" {
		t.Errorf("name = %q, want MSCI World", msci.Name())
	}
	if got, want := msci.PriceNative(), M(512.34, "EUR"); !got.Equal(want) {
		t.Errorf("price = %v, want %v", got, want)
	}
	if got := msci.YearlyCharge(); !got.Equal(0.0038) {
		t.Errorf("yearly charge = %v, want 0.0038", got)
	}
	if got := msci.TargetShare(); !got.Equal(0.6) {
		t.Errorf("target share = %v, want 0.6", got)
	}
	if got, want := msci.Quantity(), Q(2); !got.Equal(want) {
		t.Errorf("quantity = %v, want %v", got, want)
	}
	if got, want := msci.AmountInvested(), M(1024.68, "EUR"); !got.Equal(want) {
		t.Errorf("invested = %v, want %v", got, want)
	}
	if !p.VerifyTargetShareSum() {
		t.Error("imported target shares should sum to 1")
	}
}

func TestImportPortfolio_columnOrderIsFree(t *testing.T) {
	shuffled := `ticker,quantity_held,name,amount_invested,price,target_share,yearly_charge,currency
MSCI.PA,2,MSCI World,1024.68,512.34,1,0.0038,EUR
`
	p, err := ImportPortfolio("EUR", strings.NewReader(shuffled))
	if err != nil {
		t.Fatalf("ImportPortfolio returned error: %v", err)
	}
	msci := p.Security("MSCI.PA")
	if got, want := msci.PriceNative(), M(512.34, "EUR"); !got.Equal(want) {
		t.Errorf("price = %v, want %v", got, want)
	}
}

func TestImportPortfolio_rejectsBadTables(t *testing.T) {
	tests := []struct {
		name  string
		table string
	}{
		{"missing column", "name,ticker,currency\nMSCI World,MSCI.PA,EUR\n"},
		{"bad number", strings.Replace(importSample, "512.34", "n/a", 1)},
		{"bad ticker", strings.Replace(importSample, "MSCI.PA", "not a ticker", 1)},
	}
	for _, test := range tests {
		if _, err := ImportPortfolio("EUR", strings.NewReader(test.table)); err == nil {
			t.Errorf("%s: ImportPortfolio should fail", test.name)
		}
	}
}

func TestExportPortfolio_roundTrip(t *testing.T) {
	p, err := ImportPortfolio("EUR", strings.NewReader(importSample))
	if err != nil {
		t.Fatalf("ImportPortfolio: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportPortfolio(&buf, p); err != nil {
		t.Fatalf("ExportPortfolio returned error: %v", err)
	}
	q, err := ImportPortfolio("EUR", &buf)
	if err != nil {
		t.Fatalf("re-import returned error: %v", err)
	}

	if q.Len() != p.Len() {
		t.Fatalf("Len() = %d, want %d", q.Len(), p.Len())
	}
	for want := range p.Securities() {
		got := q.Security(want.Ticker())
		if got == nil {
			t.Fatalf("security %q lost in the round trip", want.Ticker())
		}
		if !got.PriceNative().Equal(want.PriceNative()) ||
			!got.Quantity().Equal(want.Quantity()) ||
			!got.AmountInvested().Equal(want.AmountInvested()) ||
			!got.TargetShare().Equal(want.TargetShare()) {
			t.Errorf("%s round trip mismatch", want.Ticker())
		}
	}
}

func TestExportPurchases(t *testing.T) {
	p := newTestPortfolio(t)
	if _, err := p.Buy("MSCI.PA", Q(2), M(480.0, "EUR"), M(1.5, "EUR"), date.New(2025, 3, 14)); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportPurchases(&buf, p); err != nil {
		t.Fatalf("ExportPurchases returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("export has %d lines, want a header and one purchase:\n%s", len(lines), buf.String())
	}
	if lines[0] != "date,symbol,quantity,activityType,unitPrice,currency,fee,amount" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2025-03-14,MSCI.PA,2,Buy,480,EUR,1.5,961.5" {
		t.Errorf("purchase line = %q", lines[1])
	}
}
