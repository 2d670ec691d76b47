package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/PhDFlo/foliotrack"
)

type buyCmd struct {
	ticker   string
	quantity float64
	price    float64
	fee      float64
	day      string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of a security" }
func (*buyCmd) Usage() string {
	return `buy -ticker <ticker> -quantity <n> [-price <price> -fee <fee> -date <YYYY-MM-DD>]

  Records a purchase: the quantity held and the amount invested grow
  accordingly, and the purchase is appended to the portfolio's log.
  The price is in the portfolio currency and defaults to the security's
  current price; the date defaults to today.

Usage Examples:
$ ftrack buy -ticker MSCI.PA -quantity 2 -price 512.34 -fee 1.50

`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Security ticker symbol (required)")
	f.Float64Var(&c.quantity, "quantity", 0, "Number of units bought (required)")
	f.Float64Var(&c.price, "price", 0, "Unit price in portfolio currency (defaults to the current price)")
	f.Float64Var(&c.fee, "fee", 0, "Transaction fee in portfolio currency")
	f.StringVar(&c.day, "date", "", "Purchase date, ISO-8601 (defaults to today)")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -ticker and a positive -quantity are required.")
		return subcommands.ExitUsageError
	}

	var day foliotrack.Date
	if c.day != "" {
		var err error
		day, err = foliotrack.ParseDate(c.day)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
	}

	p, err := LoadPortfolio()
	if err != nil {
		return errorf("%v", err)
	}

	cur := p.Currency()
	purchase, err := p.Buy(c.ticker, foliotrack.Q(c.quantity), foliotrack.M(c.price, cur), foliotrack.M(c.fee, cur), day)
	if err != nil {
		return errorf("%v", err)
	}
	if err := SavePortfolio(p); err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("Bought %s %s at %s on %s (total %s).\n",
		purchase.Quantity, purchase.Ticker, purchase.UnitPrice, purchase.Date, purchase.Amount())
	return subcommands.ExitSuccess
}

// splitTickers parses a comma separated ticker list, trimming blanks.
func splitTickers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
