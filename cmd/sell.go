package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/PhDFlo/foliotrack"
)

type sellCmd struct {
	ticker   string
	quantity float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of a security" }
func (*sellCmd) Usage() string {
	return `sell -ticker <ticker> -quantity <n>

  Records a sale: the quantity held shrinks and the invested amount is
  re-marked at the current price. Selling more than is held is rejected;
  selling the whole position removes the security from the portfolio.

Usage Examples:
$ ftrack sell -ticker MSCI.PA -quantity 2

`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Security ticker symbol (required)")
	f.Float64Var(&c.quantity, "quantity", 0, "Number of units sold (required)")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -ticker and a positive -quantity are required.")
		return subcommands.ExitUsageError
	}

	p, err := LoadPortfolio()
	if err != nil {
		return errorf("%v", err)
	}

	if err := p.Sell(c.ticker, foliotrack.Q(c.quantity)); err != nil {
		return errorf("%v", err)
	}
	if err := SavePortfolio(p); err != nil {
		return errorf("%v", err)
	}
	if s := p.Security(c.ticker); s != nil {
		fmt.Printf("Sold %v %s, %v units remain.\n", foliotrack.Q(c.quantity), c.ticker, s.Quantity())
	} else {
		fmt.Printf("Sold %v %s, position closed and security removed.\n", foliotrack.Q(c.quantity), c.ticker)
	}
	return subcommands.ExitSuccess
}
