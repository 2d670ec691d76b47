package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/PhDFlo/foliotrack"
)

type targetCmd struct {
	ticker string
	share  float64
}

func (*targetCmd) Name() string     { return "target" }
func (*targetCmd) Synopsis() string { return "set the target share of a security" }
func (*targetCmd) Usage() string {
	return `target -ticker <ticker> -share <pct>

  Sets the share of the portfolio a security should hold at equilibrium,
  in percent. Target shares across the portfolio should sum to 100%; use
  'spread' to distribute the remainder automatically.

Usage Examples:
$ ftrack target -ticker MSCI.PA -share 60

`
}

func (c *targetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Security ticker symbol (required)")
	f.Float64Var(&c.share, "share", 0, "Target share in percent, e.g. 60 for 60% (required)")
}

func (c *targetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker is required.")
		return subcommands.ExitUsageError
	}

	p, err := LoadPortfolio()
	if err != nil {
		return errorf("%v", err)
	}
	if err := p.SetTargetShare(c.ticker, foliotrack.Percent(c.share/100)); err != nil {
		return errorf("%v", err)
	}
	if err := SavePortfolio(p); err != nil {
		return errorf("%v", err)
	}
	if !p.VerifyTargetShareSum() {
		fmt.Fprintln(os.Stderr, "Warning: target shares do not sum to 100%; run 'spread' or adjust the others.")
	}
	fmt.Printf("Set target share of %q to %s.\n", c.ticker, foliotrack.Percent(c.share/100))
	return subcommands.ExitSuccess
}

type spreadCmd struct {
	exclude string
}

func (*spreadCmd) Name() string     { return "spread" }
func (*spreadCmd) Synopsis() string { return "distribute the remaining target share across securities" }
func (*spreadCmd) Usage() string {
	return `spread [-exclude <ticker,...>]

  Distributes whatever target share is missing to reach 100% equally
  across the portfolio's securities, excluded tickers left untouched.

`
}

func (c *spreadCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.exclude, "exclude", "", "Comma separated tickers to leave untouched")
}

func (c *spreadCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		return errorf("%v", err)
	}

	var excluded []string
	if c.exclude != "" {
		excluded = splitTickers(c.exclude)
	}
	p.DistributeRemainingShare(excluded...)

	if err := SavePortfolio(p); err != nil {
		return errorf("%v", err)
	}
	for sec := range p.Securities() {
		fmt.Printf("%-12s %s\n", sec.Ticker(), sec.TargetShare())
	}
	return subcommands.ExitSuccess
}
