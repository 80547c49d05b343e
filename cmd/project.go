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

type projectCmd struct {
	investment string
	scenario   string
	horizon    int
	date       string
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project one investment's future cash flows" }
func (*projectCmd) Usage() string {
	return `pmc project -i <investment> [-scenario <name>] [-horizon <months>] [-d <date>]

  Runs the pacing model for one investment: month by month expected calls,
  distributions and J-curve NAV under a scenario, starting from the
  investment's actual state as of the given date.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.investment, "i", "", "Investment id to project.")
	f.StringVar(&c.scenario, "scenario", "base", "Scenario: base, bull or bear.")
	f.IntVar(&c.horizon, "horizon", 36, "Projection horizon, in months.")
	f.StringVar(&c.date, "d", pacing.Today().String(), "Projection start date (YYYY-MM-DD).")
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.investment == "" || c.horizon <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -i and a positive -horizon are required.")
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := pacing.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitFailure
	}
	sc, err := pacing.ParseScenario(c.scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	points, err := ledger.NewSnapshot(day).Forecaster().ProjectInvestment(c.investment, sc, c.horizon, day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error projecting %q: %v\n", c.investment, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ProjectionMarkdown(points))

	return subcommands.ExitSuccess
}
