package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/PhDFlo/foliotrack"
)

type importCmd struct {
	file     string
	currency string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import securities from a CSV file" }
func (*importCmd) Usage() string {
	return `import -file <csv> [-currency <code>]

  Creates the portfolio from a CSV file with one security per line and a
  header naming the columns (name, ticker, currency, price, yearly_charge,
  target_share, amount_invested, quantity_held). Overwrites the portfolio
  file.

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "CSV file to import (required)")
	f.StringVar(&c.currency, "currency", "EUR", "Portfolio currency, 3-letter code")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required.")
		return subcommands.ExitUsageError
	}

	r, err := os.Open(c.file)
	if err != nil {
		return errorf("opening %q: %v", c.file, err)
	}
	defer r.Close()

	p, err := foliotrack.ImportPortfolio(c.currency, r)
	if err != nil {
		return errorf("importing %q: %v", c.file, err)
	}
	if err := SavePortfolio(p); err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("Imported %d securities into %q.\n", p.Len(), *portfolioFile)
	return subcommands.ExitSuccess
}

type exportCmd struct {
	file      string
	purchases bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the portfolio to a CSV file" }
func (*exportCmd) Usage() string {
	return `export -file <csv> [-purchases]

  Exports the securities to a CSV file that 'import' reads back. With
  -purchases the purchase log is exported instead, one activity line per
  recorded buy.

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "CSV file to write (required)")
	f.BoolVar(&c.purchases, "purchases", false, "Export the purchase log instead of the securities")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required.")
		return subcommands.ExitUsageError
	}

	p, err := LoadPortfolio()
	if err != nil {
		return errorf("%v", err)
	}

	w, err := os.Create(c.file)
	if err != nil {
		return errorf("creating %q: %v", c.file, err)
	}
	defer w.Close()

	if c.purchases {
		err = foliotrack.ExportPurchases(w, p)
	} else {
		err = foliotrack.ExportPortfolio(w, p)
	}
	if err != nil {
		return errorf("exporting to %q: %v", c.file, err)
	}
	fmt.Printf("Exported to %q.\n", c.file)
	return subcommands.ExitSuccess
}
