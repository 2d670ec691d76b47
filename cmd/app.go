// Package cmd implements the CLI application to manage a portfolio and
// compute purchase plans.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/PhDFlo/foliotrack"
)

// Commands is the list of all subcommands.
// A main package registers them on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&initCmd{},
	&addCmd{},
	&removeCmd{},
	&targetCmd{},
	&spreadCmd{},
	&buyCmd{},
	&sellCmd{},
	&updateCmd{},
	&planCmd{},
	&showCmd{},
	&importCmd{},
	&exportCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", "portfolio.json", "Path to the portfolio file (JSON format)")

// PortfolioFile returns the path of the portfolio file all subcommands work on.
func PortfolioFile() string { return *portfolioFile }

// LoadPortfolio loads the app portfolio file.
func LoadPortfolio() (*foliotrack.Portfolio, error) {
	p, err := foliotrack.LoadPortfolio(*portfolioFile)
	if err != nil {
		return nil, fmt.Errorf("loading portfolio %q: %w (run 'init' to create one)", *portfolioFile, err)
	}
	return p, nil
}

// SavePortfolio writes the portfolio back to the app portfolio file.
func SavePortfolio(p *foliotrack.Portfolio) error {
	if err := foliotrack.SavePortfolio(*portfolioFile, p); err != nil {
		return fmt.Errorf("saving portfolio %q: %w", *portfolioFile, err)
	}
	return nil
}

// printMarkdown renders a markdown report on the terminal. It falls back
// to the raw markdown when the terminal renderer cannot be set up.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// errorf prints an error on stderr and returns the failure exit status.
func errorf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}
