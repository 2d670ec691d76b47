package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/PhDFlo/foliotrack"
	"github.com/PhDFlo/foliotrack/miqp"
	"github.com/PhDFlo/foliotrack/renderer"
)

type planCmd struct {
	budget      float64
	minFraction float64
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "compute the purchase plan for a given budget" }
func (*planCmd) Usage() string {
	return `plan -budget <amount> [-min-fraction <f>]

  Computes how many units of each security to buy so that, after
  spending between min-fraction and 100% of the budget, the portfolio is
  as close as possible to its target shares. Purchase counts are whole
  units; nothing is ever sold.

Usage Examples:
# Invest about 1000 in portfolio currency.
$ ftrack plan -budget 1000

`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.budget, "budget", 0, "Amount to invest, in portfolio currency (required)")
	f.Float64Var(&c.minFraction, "min-fraction", foliotrack.DefaultMinFraction, "Minimum fraction of the budget to spend")
}

func (c *planCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.budget < 0 {
		fmt.Fprintln(os.Stderr, "Error: -budget must not be negative.")
		return subcommands.ExitUsageError
	}

	p, err := LoadPortfolio()
	if err != nil {
		return errorf("%v", err)
	}
	if !p.VerifyTargetShareSum() {
		fmt.Fprintln(os.Stderr, "Warning: target shares do not sum to 100%; the plan chases an unreachable allocation.")
	}

	budget := foliotrack.M(c.budget, p.Currency())
	if err := p.Equilibrate(miqp.New(), budget, c.minFraction); err != nil {
		return errorf("%v", err)
	}
	if err := SavePortfolio(p); err != nil {
		return errorf("%v", err)
	}

	printMarkdown(renderer.Plan(p))
	return subcommands.ExitSuccess
}
