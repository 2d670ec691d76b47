package foliotrack

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// This file persists a portfolio as a single human-readable JSON
// document. Field order is kept stable so the file diffs well under
// version control.

// jsec is the persisted shape of a security.
type jsec struct {
	Ticker       string   `json:"ticker"`
	Name         string   `json:"name,omitempty"`
	Currency     string   `json:"currency"`
	PriceNative  Money    `json:"price_native"`
	Price        Money    `json:"price_in_portfolio_currency"`
	ExchangeRate float64  `json:"exchange_rate"`
	Quantity     Quantity `json:"quantity_held"`
	Invested     Money    `json:"amount_invested"`
	YearlyCharge Percent  `json:"yearly_charge,omitempty"`
	TargetShare  Percent  `json:"target_share"`
	ActualShare  Percent  `json:"actual_share"`
	FinalShare   Percent  `json:"final_share"`
	NumberToBuy  int64    `json:"number_to_buy"`
	ToInvest     Money    `json:"amount_to_invest"`
}

// jportfolio is the persisted shape of a portfolio.
type jportfolio struct {
	Currency   string     `json:"currency"`
	Securities []jsec     `json:"securities"`
	Purchases  []Purchase `json:"staged_purchases"`
}

// EncodePortfolio writes the portfolio's durable record to w.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	jp := jportfolio{
		Currency:   p.currency,
		Securities: make([]jsec, 0, len(p.securities)),
		Purchases:  p.purchases,
	}
	for _, s := range p.securities {
		jp.Securities = append(jp.Securities, jsec{
			Ticker:       s.ticker,
			Name:         s.name,
			Currency:     s.currency,
			PriceNative:  s.priceNative,
			Price:        s.price,
			ExchangeRate: s.exchangeRate,
			Quantity:     s.quantity,
			Invested:     s.invested,
			YearlyCharge: s.yearlyCharge,
			TargetShare:  s.targetShare,
			ActualShare:  s.actualShare,
			FinalShare:   s.finalShare,
			NumberToBuy:  s.numberToBuy,
			ToInvest:     s.amountToInvest,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jp); err != nil {
		return fmt.Errorf("cannot encode portfolio: %w", err)
	}
	return nil
}

// DecodePortfolio reads a portfolio back from its durable record.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	var jp jportfolio
	if err := json.NewDecoder(r).Decode(&jp); err != nil {
		return nil, fmt.Errorf("cannot parse portfolio record: %w", err)
	}

	p, err := NewPortfolio(jp.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid portfolio record: %w", err)
	}
	for _, js := range jp.Securities {
		sec, err := NewSecurity(js.Ticker, js.Name, js.Currency, js.PriceNative.In(js.Currency))
		if err != nil {
			return nil, fmt.Errorf("invalid security record %q: %w", js.Ticker, err)
		}
		if js.ExchangeRate > 0 {
			sec.exchangeRate = js.ExchangeRate
		}
		sec.price = js.Price.In(jp.Currency)
		sec.quantity = js.Quantity
		sec.invested = js.Invested.In(jp.Currency)
		sec.yearlyCharge = js.YearlyCharge
		sec.actualShare = js.ActualShare
		if err := p.Add(sec, js.TargetShare); err != nil {
			return nil, fmt.Errorf("invalid portfolio record: %w", err)
		}
		// Add zeroes the solve scratch fields; restore the persisted ones.
		sec.numberToBuy = js.NumberToBuy
		sec.amountToInvest = js.ToInvest.In(jp.Currency)
		sec.finalShare = js.FinalShare
	}
	for _, purchase := range jp.Purchases {
		purchase.UnitPrice = purchase.UnitPrice.In(jp.Currency)
		purchase.Fee = purchase.Fee.In(jp.Currency)
		p.purchases = append(p.purchases, purchase)
	}
	return p, nil
}

// LoadPortfolio reads a portfolio record from a file.
func LoadPortfolio(filename string) (*Portfolio, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodePortfolio(f)
}

// SavePortfolio writes a portfolio record to a file.
func SavePortfolio(filename string, p *Portfolio) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := EncodePortfolio(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
