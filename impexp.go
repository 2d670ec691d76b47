package foliotrack

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// This file handles the tabular exchange formats: the import table that
// seeds a portfolio from a spreadsheet, and the purchase export consumed
// by external bookkeeping tools.

// importHeader is the expected header of the portfolio import table.
var importHeader = []string{"name", "ticker", "currency", "price", "yearly_charge", "target_share", "amount_invested", "quantity_held"}

// exportHeader is the header of the purchase export table.
var exportHeader = []string{"date", "symbol", "quantity", "activityType", "unitPrice", "currency", "fee", "amount"}

// ImportPortfolio reads securities from 'r' in the import table format,
// one CSV row per security, and returns a portfolio valued in 'currency'.
func ImportPortfolio(currency string, r io.Reader) (*Portfolio, error) {
	p, err := NewPortfolio(currency)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read import table header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range importHeader {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("import table is missing column %q", name)
		}
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read import table line %d: %w", line, err)
		}

		field := func(name string) string { return record[col[name]] }
		number := func(name string) (float64, error) {
			v, err := strconv.ParseFloat(field(name), 64)
			if err != nil {
				return 0, fmt.Errorf("invalid %s %q on line %d: %w", name, field(name), line, err)
			}
			return v, nil
		}

		price, err := number("price")
		if err != nil {
			return nil, err
		}
		charge, err := number("yearly_charge")
		if err != nil {
			return nil, err
		}
		target, err := number("target_share")
		if err != nil {
			return nil, err
		}
		invested, err := number("amount_invested")
		if err != nil {
			return nil, err
		}
		quantity, err := number("quantity_held")
		if err != nil {
			return nil, err
		}

		sec, err := NewSecurity(field("ticker"), field("name"), field("currency"), M(price, field("currency")))
		if err != nil {
			return nil, fmt.Errorf("invalid security on line %d: %w", line, err)
		}
		sec.yearlyCharge = Percent(charge)
		sec.quantity = Q(quantity)
		sec.invested = M(invested, currency)
		if err := p.Add(sec, Percent(target)); err != nil {
			return nil, fmt.Errorf("invalid security on line %d: %w", line, err)
		}
	}
	return p, nil
}

// ExportPortfolio writes the securities to 'w' in the import table
// format, so a portfolio can round-trip through a spreadsheet.
func ExportPortfolio(w io.Writer, p *Portfolio) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(importHeader); err != nil {
		return fmt.Errorf("cannot write import table: %w", err)
	}
	for _, s := range p.securities {
		record := []string{
			s.name,
			s.ticker,
			s.currency,
			strconv.FormatFloat(s.priceNative.AsFloat(), 'f', -1, 64),
			strconv.FormatFloat(float64(s.yearlyCharge), 'f', -1, 64),
			strconv.FormatFloat(float64(s.targetShare), 'f', -1, 64),
			strconv.FormatFloat(s.invested.AsFloat(), 'f', -1, 64),
			s.quantity.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write import table: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportPurchases writes the staged purchase log to 'w' in the purchase
// export format, one row per purchase in execution order, with
// amount = quantity*unitPrice + fee.
func ExportPurchases(w io.Writer, p *Portfolio) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("cannot write purchase export: %w", err)
	}
	for _, purchase := range p.purchases {
		record := []string{
			purchase.Date.String(),
			purchase.Ticker,
			purchase.Quantity.String(),
			"Buy",
			strconv.FormatFloat(purchase.UnitPrice.AsFloat(), 'f', -1, 64),
			p.currency,
			strconv.FormatFloat(purchase.Fee.AsFloat(), 'f', -1, 64),
			strconv.FormatFloat(purchase.Amount().AsFloat(), 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write purchase export: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
