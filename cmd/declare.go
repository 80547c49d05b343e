package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pacing"
	"github.com/google/subcommands"
)

type declareCmd struct {
	date       string
	memo       string
	id         string
	name       string
	commitment float64
	currency   string
	vintage    int
	period     int
	life       int

	irr           float64
	moic          float64
	calls         string
	distributions string
	bow           float64
}

func (*declareCmd) Name() string     { return "declare" }
func (*declareCmd) Synopsis() string { return "declare an investment and its pacing terms" }
func (*declareCmd) Usage() string {
	return `pmc declare -id <id> -a <commitment> [-vintage <year>] [-period <years>] [-life <years>]

  Declares a private-market investment: the committed amount and the pacing
  terms (target MOIC, call schedule, distribution timing, J-curve bow) that
  every projection of this investment reads. An investment declared without
  an investment period and fund life is tracked but never projected.
`
}

func (c *declareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", pacing.Today().String(), "Date of the declaration (YYYY-MM-DD).")
	f.StringVar(&c.memo, "m", "", "A short memo for the declaration.")
	f.StringVar(&c.id, "id", "", "Unique identifier for the investment.")
	f.StringVar(&c.name, "name", "", "Human-friendly name of the investment.")
	f.Float64Var(&c.commitment, "a", 0, "Committed amount.")
	f.StringVar(&c.currency, "c", "USD", "Currency of the commitment (ISO 4217 code).")
	f.IntVar(&c.vintage, "vintage", 0, "Vintage year. Defaults to the declaration year.")
	f.IntVar(&c.period, "period", 0, "Investment period in years.")
	f.IntVar(&c.life, "life", 0, "Fund life in years.")
	f.Float64Var(&c.irr, "irr", 0, "Target net IRR, in percent.")
	f.Float64Var(&c.moic, "moic", 0, "Target MOIC multiple. Defaults to 2.5.")
	f.StringVar(&c.calls, "calls", "", "Call schedule: front-loaded, steady or back-loaded. Defaults to steady.")
	f.StringVar(&c.distributions, "distributions", "", "Distribution timing: early, steady or backend.")
	f.Float64Var(&c.bow, "bow", 0, "J-curve bow depth, as a fraction of called capital. Defaults to 0.3.")
}

func (c *declareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.commitment <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -id and a positive -a commitment are required.")
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := pacing.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitFailure
	}

	tx := pacing.NewDeclare(day, c.memo, c.id, c.name, pacing.M(c.commitment, c.currency), c.vintage, c.period, c.life)
	tx.TargetIRR = pacing.Percent(c.irr)
	tx.TargetMOIC = pacing.F(c.moic)
	tx.Bow = c.bow
	if c.calls != "" {
		schedule, err := pacing.ParseCallSchedule(c.calls)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		tx.Calls = schedule
	}
	if c.distributions != "" {
		timing, err := pacing.ParseDistributionTiming(c.distributions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		tx.Distributions = timing
	}

	return recordTransaction(tx)
}
