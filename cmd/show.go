package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/PhDFlo/foliotrack/renderer"
)

type showCmd struct {
	purchases bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the portfolio holdings" }
func (*showCmd) Usage() string {
	return `show [-purchases]

  Displays the portfolio: every security with its price, quantity held,
  invested amount, and target versus actual shares. With -purchases the
  purchase log is printed too.

`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.purchases, "purchases", false, "Also display the purchase log")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		return errorf("%v", err)
	}

	// best effort: shares stay as persisted when they cannot be recomputed
	if err := p.ComputeActualShares(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: showing persisted shares: %v\n", err)
	}

	printMarkdown(renderer.Holdings(p))
	if c.purchases {
		printMarkdown(renderer.Purchases(p))
	}
	return subcommands.ExitSuccess
}
