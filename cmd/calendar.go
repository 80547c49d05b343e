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

type calendarCmd struct {
	period    string
	date      string
	forecasts bool
	scenario  string
}

func (*calendarCmd) Name() string     { return "calendar" }
func (*calendarCmd) Synopsis() string { return "show the cash-flow calendar" }
func (*calendarCmd) Usage() string {
	return `pmc calendar [-p month|quarter|year] [-d <date>] [-forecasts=false]

  Shows the cash-flow calendar for the period containing the date: daily
  buckets for a month, monthly buckets with activity intensity for a
  quarter or year. Forecast rows are included by default.
`
}

func (c *calendarCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "month", "Calendar resolution: month, quarter or year.")
	f.StringVar(&c.date, "d", pacing.Today().String(), "A date inside the period to show.")
	f.BoolVar(&c.forecasts, "forecasts", true, "Include manual and pacing-model rows.")
	f.StringVar(&c.scenario, "scenario", "base", "Scenario for the pacing model: base, bull or bear.")
}

func (c *calendarCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := pacing.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitFailure
	}
	period, err := pacing.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
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

	opts := pacing.DefaultBlendOptions(pacing.Today())
	opts.Scenario = sc
	fc := ledger.NewSnapshot(pacing.Today()).Forecaster()

	switch period {
	case pacing.Monthly:
		cal, err := fc.MonthlyCalendar(day.Year(), day.Month(), c.forecasts, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building calendar: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.CalendarMarkdown(cal))

	case pacing.Quarterly, pacing.Yearly:
		if !c.forecasts {
			opts.IncludeManual = false
			opts.IncludePacingModel = false
		}
		cal, err := fc.PeriodCalendar(period.Range(day), opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building calendar: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.PeriodCalendarMarkdown(cal))

	default:
		fmt.Fprintln(os.Stderr, "Error: the calendar supports month, quarter and year resolutions.")
		return subcommands.ExitUsageError
	}

	return subcommands.ExitSuccess
}
