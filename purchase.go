package foliotrack

import (
	"encoding/json"

	"github.com/PhDFlo/foliotrack/date"
)

// Purchase is the immutable record of an executed buy, staged for export
// to an external bookkeeping format. The portfolio keeps them in an
// append-only log; none is ever mutated in place.
type Purchase struct {
	Ticker    string
	Quantity  Quantity
	UnitPrice Money // in portfolio currency, at time of purchase
	Fee       Money
	Date      date.Date
}

// Amount is the total cash outlay of the purchase, fee included.
func (p Purchase) Amount() Money {
	return p.UnitPrice.Mul(p.Quantity).Add(p.Fee)
}

// MarshalJSON implements the json.Marshaler interface with a stable field order.
func (p Purchase) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", p.Ticker)
	w.Append("quantity", p.Quantity)
	w.Append("unit_price", p.UnitPrice)
	w.Append("fee", p.Fee)
	w.Append("date", p.Date)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Purchase) UnmarshalJSON(b []byte) error {
	type jpurchase struct {
		Ticker    string    `json:"ticker"`
		Quantity  Quantity  `json:"quantity"`
		UnitPrice Money     `json:"unit_price"`
		Fee       Money     `json:"fee"`
		Date      date.Date `json:"date"`
	}
	var jp jpurchase
	if err := json.Unmarshal(b, &jp); err != nil {
		return err
	}
	*p = Purchase{Ticker: jp.Ticker, Quantity: jp.Quantity, UnitPrice: jp.UnitPrice, Fee: jp.Fee, Date: jp.Date}
	return nil
}
