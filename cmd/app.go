// Package cmd implements the pmc command line application. Recording
// commands validate a transaction against the ledger and append it to the
// ledger file; reporting and forecasting commands build engine views and
// render them as markdown on the terminal.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/pacing"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() once, then Execute() on the commander
// dispatches to the user-selected command.
func Register(c *subcommands.Commander) {
	c.Register(&declareCmd{}, "recording")
	c.Register(&callCmd{}, "recording")
	c.Register(&contributeCmd{}, "recording")
	c.Register(&feesCmd{}, "recording")
	c.Register(&distributeCmd{}, "recording")
	c.Register(&yieldCmd{}, "recording")
	c.Register(&returnCmd{}, "recording")
	c.Register(&expectCmd{}, "recording")
	c.Register(&valueCmd{}, "recording")

	c.Register(&txCmd{}, "reporting")
	c.Register(&investmentsCmd{}, "reporting")
	c.Register(&reviewCmd{}, "reporting")

	c.Register(&projectCmd{}, "forecasting")
	c.Register(&forecastCmd{}, "forecasting")
	c.Register(&calendarCmd{}, "forecasting")
	c.Register(&liquidityCmd{}, "forecasting")

	c.Register(&fmtCmd{}, "maintenance")
	c.Register(&topicCmd{}, "maintenance")
}

// As a CLI application the process is short lived, so the shared ledger
// path lives in a package global.

var ledgerFile = flag.String("l", "pacing.jsonl", "Path to the ledger file (JSONL format)")

// loadLedger loads the shared ledger file. A missing file yields an empty
// ledger, so reporting on a fresh directory works.
func loadLedger() (*pacing.Ledger, error) {
	return pacing.LoadLedger(*ledgerFile)
}

// recordTransaction validates tx against the current ledger and appends the
// validated form to the ledger file.
func recordTransaction(tx pacing.Transaction) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	validated, err := ledger.Validate(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := pacing.EncodeTransaction(f, validated); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal. When rendering fails
// (no TTY, unknown style) the raw markdown is printed instead.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// resolveRange turns the shared -p/-s/-d flag triple into a Range: the
// period containing the -d date, or a custom range when -s is given. The
// date defaults to today.
func resolveRange(period, start, end string) (pacing.Range, error) {
	endStr := end
	if endStr == "" {
		endStr = pacing.Today().String()
	}
	endDate, err := pacing.ParseDate(endStr)
	if err != nil {
		return pacing.Range{}, fmt.Errorf("invalid end date: %w", err)
	}

	if start != "" {
		startDate, err := pacing.ParseDate(start)
		if err != nil {
			return pacing.Range{}, fmt.Errorf("invalid start date: %w", err)
		}
		return pacing.NewRange(startDate, endDate), nil
	}

	p, err := pacing.ParsePeriod(period)
	if err != nil {
		return pacing.Range{}, err
	}
	return p.Range(endDate), nil
}
