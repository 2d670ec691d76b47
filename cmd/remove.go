package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type removeCmd struct {
	ticker string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a security from the portfolio" }
func (*removeCmd) Usage() string {
	return `remove -ticker <ticker>

  Removes a security from the portfolio. The purchase log keeps its
  history; only the security and its target share are dropped.

`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Security ticker symbol (required)")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker is required.")
		return subcommands.ExitUsageError
	}

	p, err := LoadPortfolio()
	if err != nil {
		return errorf("%v", err)
	}
	if err := p.Remove(c.ticker); err != nil {
		return errorf("%v", err)
	}
	if err := SavePortfolio(p); err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("Removed security %q from the portfolio.\n", c.ticker)
	return subcommands.ExitSuccess
}
