package renderer

import (
	"github.com/PhDFlo/foliotrack"
)

// Plan renders the latest equilibrium computation as a markdown table:
// how many units of each security to buy, the amount each purchase
// costs, and the share of the portfolio each security would hold after
// executing the plan.
func Plan(p *foliotrack.Portfolio) string {
	r := newRenderer()
	r.Printf("# Purchase Plan (%s)\n\n", p.Currency())

	if p.Len() == 0 {
		r.Printf("The portfolio is empty.\n")
		return r.String()
	}

	total := foliotrack.M(0, p.Currency())
	r.Printf("| Ticker | Price | To Buy | Cost | Target | Final |\n")
	r.Printf("|:---|---:|---:|---:|---:|---:|\n")
	for sec := range p.Securities() {
		r.Printf("| %s | %s | %d | %s | %s | %s |\n",
			sec.Ticker(), sec.Price(), sec.NumberToBuy(), sec.AmountToInvest(),
			sec.TargetShare(), sec.FinalShare())
		total = total.Add(sec.AmountToInvest())
	}
	r.Printf("\n**Total to invest**: %s\n", total)
	return r.String()
}
