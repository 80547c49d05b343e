package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pacing"
	"github.com/google/subcommands"
)

type valueCmd struct {
	date       string
	investment string
	amount     float64
	currency   string
	memo       string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "record a net asset value observation" }
func (*valueCmd) Usage() string {
	return `pmc value -i <investment> -a <nav> [-c <currency>] [-d <date>] [-m <memo>]

  Records the reported net asset value of an investment on a statement
  date. A zero value is legal: it marks a written-off position.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", pacing.Today().String(), "Statement date of the valuation (YYYY-MM-DD).")
	f.StringVar(&c.investment, "i", "", "Investment id the valuation belongs to.")
	f.Float64Var(&c.amount, "a", -1, "Reported net asset value. Zero is a write-off.")
	f.StringVar(&c.currency, "c", "", "Currency of the value. Defaults to the commitment currency.")
	f.StringVar(&c.memo, "m", "", "A short memo for the valuation.")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.investment == "" || c.amount < 0 {
		fmt.Fprintln(os.Stderr, "Error: -i and a non-negative -a value are required.")
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := pacing.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitFailure
	}
	return recordTransaction(pacing.NewValue(day, c.memo, c.investment, pacing.M(c.amount, c.currency)))
}
