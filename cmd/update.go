package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/PhDFlo/foliotrack"
	"github.com/PhDFlo/foliotrack/ecb"
	"github.com/PhDFlo/foliotrack/eodhd"
)

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "refresh prices and exchange rates from market data" }
func (*updateCmd) Usage() string {
	return `update

  Refreshes every security's price from EODHD and its exchange rate
  against the portfolio currency from the ECB, then recomputes the
  actual shares. A security whose quote fails keeps its previous price;
  the update of the others goes on.

  The EODHD API key is read from -eodhd-api-key or the EODHD_API_KEY
  environment variable.

`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		return errorf("%v", err)
	}

	converter := foliotrack.NewConverter(ecb.New())
	errs := p.RefreshAllPrices(eodhd.New(), converter)
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, "Warning:", e)
	}

	if err := SavePortfolio(p); err != nil {
		return errorf("%v", err)
	}
	if len(errs) > 0 {
		fmt.Printf("Updated %d securities, %d failed.\n", p.Len()-len(errs), len(errs))
	} else {
		fmt.Printf("Updated %d securities.\n", p.Len())
	}
	return subcommands.ExitSuccess
}
