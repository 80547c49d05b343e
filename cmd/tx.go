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

type txCmd struct {
	period     string
	start      string
	date       string
	investment string
	head       int
	tail       int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the ledger" }
func (*txCmd) Usage() string {
	return `pmc tx [-p <period> | -s <start_date>] [-d <end_date>] [-i <id>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger, with options for filtering and
  limiting the output. Without date flags the whole ledger is listed.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Predefined period (day, month, quarter, year).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The end date for the range.")
	f.StringVar(&c.investment, "i", "", "Limit the listing to one investment.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// Without date flags the range spans the whole ledger.
	rng := pacing.NewRange(ledger.OldestTransactionDate(), ledger.NewestTransactionDate())
	if c.start != "" || c.date != "" || c.period != "" {
		period := c.period
		if period == "" {
			period = "month"
		}
		rng, err = resolveRange(period, c.start, c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	var transactions []pacing.Transaction
	if c.investment != "" {
		for _, tx := range ledger.InvestmentTransactions(c.investment, rng.To) {
			if !tx.When().Before(rng.From) {
				transactions = append(transactions, tx)
			}
		}
	} else {
		for _, tx := range ledger.Transactions() {
			if rng.Contains(tx.When()) {
				transactions = append(transactions, tx)
			}
		}
	}

	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	printMarkdown(renderer.Transactions(transactions))

	return subcommands.ExitSuccess
}
