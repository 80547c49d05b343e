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

type forecastCmd struct {
	period     string
	start      string
	date       string
	investment string
	manual     bool
	model      bool
	scenario   string
	stale      string
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "show the unified cash-flow forecast" }
func (*forecastCmd) Usage() string {
	return `pmc forecast [-p <period>] [-d <date>] [-i <investment>] [-manual] [-model]

  Shows every cash flow of a period in one view: settled transactions,
  manual expectations and pacing-model projections, each row tagged with
  its source. Past days show history; future days show the forecast.
`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "month", "Predefined period (month, quarter, year).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The date whose period to forecast. Defaults to today.")
	f.StringVar(&c.investment, "i", "", "Limit the forecast to one investment.")
	f.BoolVar(&c.manual, "manual", true, "Include manual expectations.")
	f.BoolVar(&c.model, "model", true, "Include pacing-model projections.")
	f.StringVar(&c.scenario, "scenario", "base", "Scenario for the pacing model: base, bull or bear.")
	f.StringVar(&c.stale, "stale", "drop", "Manual entries already in the past: drop or keep.")
}

func (c *forecastCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := resolveRange(c.period, c.start, c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	sc, err := pacing.ParseScenario(c.scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	stale, err := pacing.ParseStalePolicy(c.stale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	asOf := pacing.Today()
	opts := pacing.BlendOptions{
		Scenario:           sc,
		IncludeManual:      c.manual,
		IncludePacingModel: c.model,
		Stale:              stale,
		AsOf:               asOf,
	}

	fc := ledger.NewSnapshot(asOf).Forecaster()
	var uf pacing.UnifiedForecast
	if c.investment != "" {
		uf, err = fc.InvestmentForecast(c.investment, rng, opts)
	} else {
		uf, err = fc.UnifiedForecast(rng, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building forecast: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ForecastMarkdown(uf))

	return subcommands.ExitSuccess
}
