package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/PhDFlo/foliotrack"
)

type addCmd struct {
	ticker   string
	name     string
	currency string
	price    float64
	target   float64
	charge   float64
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a new security to the portfolio" }
func (*addCmd) Usage() string {
	return `add -ticker <ticker> -price <price> [-name <name> -currency <code> -target <share> -charge <pct>]

  Adds a new security to the portfolio:
  - ticker: The ticker symbol for the security (e.g., "MSCI.PA"). Must be unique.
  - price: The current price in the security's own currency.
  - target: The share of the portfolio this security should hold, in percent.

Usage Examples:
# Add a world tracker that should make up 60% of the portfolio.
$ ftrack add -ticker MSCI.PA -name "MSCI World" -price 512.34 -target 60

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Security ticker symbol (required)")
	f.StringVar(&c.name, "name", "", "Human readable security name")
	f.StringVar(&c.currency, "currency", "", "Security's currency, 3-letter code (defaults to the portfolio currency)")
	f.Float64Var(&c.price, "price", 0, "Current unit price in the security's currency (required)")
	f.Float64Var(&c.target, "target", 0, "Target share in percent, e.g. 60 for 60%")
	f.Float64Var(&c.charge, "charge", 0, "Yearly charge in percent, e.g. 0.38")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.price <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -ticker and a positive -price are required.")
		return subcommands.ExitUsageError
	}

	p, err := LoadPortfolio()
	if err != nil {
		return errorf("%v", err)
	}

	currency := c.currency
	if currency == "" {
		currency = p.Currency()
	}
	sec, err := foliotrack.NewSecurity(c.ticker, c.name, currency, foliotrack.M(c.price, currency))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	sec.SetYearlyCharge(foliotrack.Percent(c.charge / 100))

	if err := p.Add(sec, foliotrack.Percent(c.target/100)); err != nil {
		return errorf("%v", err)
	}
	if err := SavePortfolio(p); err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("Added security %q targeting %s of the portfolio.\n", sec.Ticker(), sec.TargetShare())
	return subcommands.ExitSuccess
}
