package renderer

import (
	"github.com/PhDFlo/foliotrack"
)

// Purchases renders the purchase log as a markdown table, one row per
// recorded buy, oldest first.
func Purchases(p *foliotrack.Portfolio) string {
	r := newRenderer()
	r.Printf("# Purchases\n\n")

	purchases := p.Purchases()
	if len(purchases) == 0 {
		r.Printf("No purchase recorded.\n")
		return r.String()
	}

	r.Printf("| Date | Ticker | Quantity | Unit Price | Fee | Amount |\n")
	r.Printf("|:---|:---|---:|---:|---:|---:|\n")
	for _, b := range purchases {
		r.Printf("| %s | %s | %s | %s | %s | %s |\n",
			b.Date, b.Ticker, b.Quantity, b.UnitPrice, b.Fee, b.Amount())
	}
	return r.String()
}
