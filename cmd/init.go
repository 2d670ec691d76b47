package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/PhDFlo/foliotrack"
)

type initCmd struct {
	currency string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new empty portfolio file" }
func (*initCmd) Usage() string {
	return `init [-currency <code>]

  Creates a new empty portfolio file denominated in the given currency.
  Fails if the portfolio file already exists.

Usage Examples:
# Create a portfolio valued in euros.
$ ftrack init -currency EUR

`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "EUR", "Portfolio currency, 3-letter code")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(*portfolioFile); err == nil {
		return errorf("portfolio file %q already exists", *portfolioFile)
	}

	p, err := foliotrack.NewPortfolio(c.currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	if err := SavePortfolio(p); err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("Created empty portfolio %q in %s.\n", *portfolioFile, p.Currency())
	return subcommands.ExitSuccess
}
