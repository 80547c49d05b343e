package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pacing"
	"github.com/etnz/pacing/renderer"
	"github.com/google/subcommands"
)

type investmentsCmd struct {
	date string
}

func (*investmentsCmd) Name() string     { return "investments" }
func (*investmentsCmd) Synopsis() string { return "show the portfolio status as of a date" }
func (*investmentsCmd) Usage() string {
	return `pmc investments [-d <date>]

  Shows every declared investment as of a date: commitment, called and
  uncalled capital, latest NAV and the DPI/TVPI multiples, with portfolio
  totals.
`
}

func (c *investmentsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", pacing.Today().String(), "Reporting date (YYYY-MM-DD).")
}

func (c *investmentsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := pacing.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.InvestmentsMarkdown(ledger.NewSnapshot(day)))

	return subcommands.ExitSuccess
}
