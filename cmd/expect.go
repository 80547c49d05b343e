package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pacing"
	"github.com/google/subcommands"
)

type expectCmd struct {
	date       string
	investment string
	typ        string
	amount     float64
	currency   string
	memo       string
}

func (*expectCmd) Name() string     { return "expect" }
func (*expectCmd) Synopsis() string { return "record a manual cash-flow forecast" }
func (*expectCmd) Usage() string {
	return `pmc expect -i <investment> -a <amount> [-t <type>] [-d <date>] [-m <memo>]

  Records an expected cash movement: a call notice received, a secondary
  closing, a scheduled fee. Expected entries override the pacing model for
  their month and flow type, and actual entries in turn override them.
`
}

func (c *expectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", pacing.Today().String(), "Date the movement is expected (YYYY-MM-DD).")
	f.StringVar(&c.investment, "i", "", "Investment id the expectation belongs to.")
	f.StringVar(&c.typ, "t", "distribution", "Expected flow type: capital-call, contribution, fees, distribution, yield or return-of-principal.")
	f.Float64Var(&c.amount, "a", 0, "Expected amount.")
	f.StringVar(&c.currency, "c", "", "Currency of the amount. Defaults to the commitment currency.")
	f.StringVar(&c.memo, "m", "", "A short memo for the expectation.")
}

func (c *expectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, status := checkFlow(f, c.investment, c.amount, c.date)
	if status != subcommands.ExitSuccess {
		return status
	}
	typ, err := pacing.ParseFlowType(c.typ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	return recordTransaction(pacing.NewExpect(day, c.memo, c.investment, typ, pacing.M(c.amount, c.currency)))
}
