package cmd

// This file implements the six cash-movement commands: call, contribute,
// fees, distribute, yield and return. They share the same flag surface and
// differ only in the transaction they build.

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pacing"
	"github.com/google/subcommands"
)

// checkFlow validates the shared flow flags and parses the date.
func checkFlow(f *flag.FlagSet, investment string, amount float64, date string) (pacing.Date, subcommands.ExitStatus) {
	if investment == "" || amount <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -i and a positive -a amount are required.")
		f.Usage()
		return pacing.Date{}, subcommands.ExitUsageError
	}
	day, err := pacing.ParseDate(date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return pacing.Date{}, subcommands.ExitFailure
	}
	return day, subcommands.ExitSuccess
}

// --- Call Command ---

type callCmd struct {
	date       string
	investment string
	amount     float64
	currency   string
	memo       string
}

func (*callCmd) Name() string     { return "call" }
func (*callCmd) Synopsis() string { return "record a capital call paid to a fund" }
func (*callCmd) Usage() string {
	return `pmc call -i <investment> -a <amount> [-c <currency>] [-d <date>] [-m <memo>]

  Records a capital call: the fund draws part of the commitment, reducing
  the uncalled balance.
`
}

func (c *callCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", pacing.Today().String(), "Date of the call (YYYY-MM-DD).")
	f.StringVar(&c.investment, "i", "", "Investment id the call belongs to.")
	f.Float64Var(&c.amount, "a", 0, "Amount paid in.")
	f.StringVar(&c.currency, "c", "", "Currency of the amount. Defaults to the commitment currency.")
	f.StringVar(&c.memo, "m", "", "A short memo for the transaction.")
}

func (c *callCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, status := checkFlow(f, c.investment, c.amount, c.date)
	if status != subcommands.ExitSuccess {
		return status
	}
	return recordTransaction(pacing.NewCall(day, c.memo, c.investment, pacing.M(c.amount, c.currency)))
}

// --- Contribute Command ---

type contributeCmd struct {
	date       string
	investment string
	amount     float64
	currency   string
	memo       string
}

func (*contributeCmd) Name() string { return "contribute" }
func (*contributeCmd) Synopsis() string {
	return "record a contribution outside the formal call schedule"
}
func (*contributeCmd) Usage() string {
	return `pmc contribute -i <investment> -a <amount> [-c <currency>] [-d <date>] [-m <memo>]

  Records a contribution: capital paid in outside a formal capital call,
  such as a subscription at closing. It draws down the commitment the same
  way a call does.
`
}

func (c *contributeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", pacing.Today().String(), "Date of the contribution (YYYY-MM-DD).")
	f.StringVar(&c.investment, "i", "", "Investment id the contribution belongs to.")
	f.Float64Var(&c.amount, "a", 0, "Amount paid in.")
	f.StringVar(&c.currency, "c", "", "Currency of the amount. Defaults to the commitment currency.")
	f.StringVar(&c.memo, "m", "", "A short memo for the transaction.")
}

func (c *contributeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, status := checkFlow(f, c.investment, c.amount, c.date)
	if status != subcommands.ExitSuccess {
		return status
	}
	return recordTransaction(pacing.NewContribute(day, c.memo, c.investment, pacing.M(c.amount, c.currency)))
}

// --- Fees Command ---

type feesCmd struct {
	date       string
	investment string
	amount     float64
	currency   string
	memo       string
}

func (*feesCmd) Name() string     { return "fees" }
func (*feesCmd) Synopsis() string { return "record a management fee payment" }
func (*feesCmd) Usage() string {
	return `pmc fees -i <investment> -a <amount> [-c <currency>] [-d <date>] [-m <memo>]

  Records a management fee payment. Fees count as paid-in capital for the
  multiples but do not draw down the commitment.
`
}

func (c *feesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", pacing.Today().String(), "Date of the payment (YYYY-MM-DD).")
	f.StringVar(&c.investment, "i", "", "Investment id the fees belong to.")
	f.Float64Var(&c.amount, "a", 0, "Amount paid.")
	f.StringVar(&c.currency, "c", "", "Currency of the amount. Defaults to the commitment currency.")
	f.StringVar(&c.memo, "m", "", "A short memo for the transaction.")
}

func (c *feesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, status := checkFlow(f, c.investment, c.amount, c.date)
	if status != subcommands.ExitSuccess {
		return status
	}
	return recordTransaction(pacing.NewFees(day, c.memo, c.investment, pacing.M(c.amount, c.currency)))
}

// --- Distribute Command ---

type distributeCmd struct {
	date       string
	investment string
	amount     float64
	currency   string
	memo       string
}

func (*distributeCmd) Name() string     { return "distribute" }
func (*distributeCmd) Synopsis() string { return "record a distribution received from a fund" }
func (*distributeCmd) Usage() string {
	return `pmc distribute -i <investment> -a <amount> [-c <currency>] [-d <date>] [-m <memo>]

  Records a distribution: fund proceeds paid back to the office.
`
}

func (c *distributeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", pacing.Today().String(), "Date of the distribution (YYYY-MM-DD).")
	f.StringVar(&c.investment, "i", "", "Investment id the distribution belongs to.")
	f.Float64Var(&c.amount, "a", 0, "Amount received.")
	f.StringVar(&c.currency, "c", "", "Currency of the amount. Defaults to the commitment currency.")
	f.StringVar(&c.memo, "m", "", "A short memo for the transaction.")
}

func (c *distributeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, status := checkFlow(f, c.investment, c.amount, c.date)
	if status != subcommands.ExitSuccess {
		return status
	}
	return recordTransaction(pacing.NewDistribute(day, c.memo, c.investment, pacing.M(c.amount, c.currency)))
}

// --- Yield Command ---

type yieldCmd struct {
	date       string
	investment string
	amount     float64
	currency   string
	memo       string
}

func (*yieldCmd) Name() string     { return "yield" }
func (*yieldCmd) Synopsis() string { return "record an income payment from an investment" }
func (*yieldCmd) Usage() string {
	return `pmc yield -i <investment> -a <amount> [-c <currency>] [-d <date>] [-m <memo>]

  Records an income payment: interest, rent or a dividend passthrough paid
  by the investment without returning capital.
`
}

func (c *yieldCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", pacing.Today().String(), "Date of the payment (YYYY-MM-DD).")
	f.StringVar(&c.investment, "i", "", "Investment id the income belongs to.")
	f.Float64Var(&c.amount, "a", 0, "Amount received.")
	f.StringVar(&c.currency, "c", "", "Currency of the amount. Defaults to the commitment currency.")
	f.StringVar(&c.memo, "m", "", "A short memo for the transaction.")
}

func (c *yieldCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, status := checkFlow(f, c.investment, c.amount, c.date)
	if status != subcommands.ExitSuccess {
		return status
	}
	return recordTransaction(pacing.NewYield(day, c.memo, c.investment, pacing.M(c.amount, c.currency)))
}

// --- Return Command ---

type returnCmd struct {
	date       string
	investment string
	amount     float64
	currency   string
	memo       string
}

func (*returnCmd) Name() string     { return "return" }
func (*returnCmd) Synopsis() string { return "record a return of principal" }
func (*returnCmd) Usage() string {
	return `pmc return -i <investment> -a <amount> [-c <currency>] [-d <date>] [-m <memo>]

  Records a return of principal: capital given back by the investment, for
  example after a recallable bridge. The uncalled commitment is not
  restored.
`
}

func (c *returnCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", pacing.Today().String(), "Date of the payment (YYYY-MM-DD).")
	f.StringVar(&c.investment, "i", "", "Investment id the principal belongs to.")
	f.Float64Var(&c.amount, "a", 0, "Amount received.")
	f.StringVar(&c.currency, "c", "", "Currency of the amount. Defaults to the commitment currency.")
	f.StringVar(&c.memo, "m", "", "A short memo for the transaction.")
}

func (c *returnCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, status := checkFlow(f, c.investment, c.amount, c.date)
	if status != subcommands.ExitSuccess {
		return status
	}
	return recordTransaction(pacing.NewReturnOfPrincipal(day, c.memo, c.investment, pacing.M(c.amount, c.currency)))
}
