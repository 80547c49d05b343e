package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pacing/renderer"
	"github.com/google/subcommands"
)

type reviewCmd struct {
	period string
	start  string
	date   string
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "review actual cash flows over a period" }
func (*reviewCmd) Usage() string {
	return `pmc review [-p <period>] [-s <start_date>] [-d <end_date>]

  Reviews what actually happened over a period: capital called, fees paid,
  distributions received, NAV change and new commitments, portfolio-wide
  and per investment.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "month", "Predefined period (month, quarter, year).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The end date for the range. Defaults to today.")
}

func (c *reviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := resolveRange(c.period, c.start, c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReviewMarkdown(ledger.NewReview(rng)))

	return subcommands.ExitSuccess
}
