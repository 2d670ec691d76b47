package renderer

import (
	"github.com/PhDFlo/foliotrack"
)

// Holdings renders the current state of the portfolio as a markdown
// table: one row per security, valued in the portfolio currency, with
// target and actual shares side by side.
func Holdings(p *foliotrack.Portfolio) string {
	r := newRenderer()
	r.Printf("# Holdings (%s)\n\n", p.Currency())

	if p.Len() == 0 {
		r.Printf("The portfolio is empty.\n")
		return r.String()
	}

	r.Printf("| Ticker | Name | Price | Quantity | Invested | Target | Actual | Charge |\n")
	r.Printf("|:---|:---|---:|---:|---:|---:|---:|---:|\n")
	for sec := range p.Securities() {
		r.Printf("| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			sec.Ticker(), sec.Name(),
			sec.Price(), sec.Quantity(), sec.AmountInvested(),
			sec.TargetShare(), sec.ActualShare(), sec.YearlyCharge())
	}
	r.Printf("\n**Total invested**: %s\n", p.TotalInvested())
	return r.String()
}
