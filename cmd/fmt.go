package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pacing"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validate and rewrite the ledger file in canonical form"
}
func (*fmtCmd) Usage() string {
	return `pmc fmt

  Validates and formats the ledger file. This command reads all
  transactions, validates them against each other, sorts them by date and
  writes them back in a canonical JSONL form.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	formatted, err := ledger.Fmt()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting ledger %q: %v\n", ledger.Name(), err)
		return subcommands.ExitFailure
	}

	if err := pacing.SaveLedger(*ledgerFile, formatted); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving formatted ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "✅ Successfully formatted %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}
