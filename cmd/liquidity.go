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

type liquidityCmd struct {
	cash     float64
	currency string
	horizon  int
	scenario string
	date     string
}

func (*liquidityCmd) Name() string     { return "liquidity" }
func (*liquidityCmd) Synopsis() string { return "walk the cash balance and flag liquidity gaps" }
func (*liquidityCmd) Usage() string {
	return `pmc liquidity -cash <amount> [-horizon <months>] [-scenario <name>] [-d <date>]

  Walks the liquid cash balance month by month against projected calls and
  distributions, and flags every month where the balance goes negative: a
  liquidity gap the office must fund from somewhere else.
`
}

func (c *liquidityCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.cash, "cash", 0, "Liquid cash on hand at the start.")
	f.StringVar(&c.currency, "c", "USD", "Currency of the cash (ISO 4217 code).")
	f.IntVar(&c.horizon, "horizon", 12, "Horizon, in months.")
	f.StringVar(&c.scenario, "scenario", "base", "Scenario: base, bull or bear.")
	f.StringVar(&c.date, "d", pacing.Today().String(), "Start date of the walk (YYYY-MM-DD).")
}

func (c *liquidityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.cash < 0 || c.horizon <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -cash cannot be negative and -horizon must be positive.")
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

	lf, err := ledger.NewSnapshot(day).Forecaster().Liquidity(pacing.M(c.cash, c.currency), c.horizon, day, sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building liquidity forecast: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.LiquidityMarkdown(lf))

	return subcommands.ExitSuccess
}
