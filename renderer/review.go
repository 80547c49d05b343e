package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/pacing"
	md "github.com/nao1215/markdown"
)

// ReviewMarkdown renders a period review: portfolio-level movements,
// the per-investment breakdown, and the period's transactions.
func ReviewMarkdown(r *pacing.Review) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	rng := r.Range()
	doc.H1(fmt.Sprintf("Review: %s to %s", rng.From, rng.To))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Net Cash Flow"), md.Bold(r.NetCashFlow().SignedString())},
		Rows: [][]string{
			{"Capital Called", cell(r.Called())},
			{"Paid In", cell(r.PaidIn())},
			{"Distributed", cell(r.Distributed())},
			{"NAV Change", r.NAVChange().SignedString()},
			{"New Commitments", cell(r.CommitmentChange())},
		},
	})

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Investment", "Called", "Distributed", "Net", "NAV Change"},
	}
	for id := range r.End().InvestmentIDs() {
		called := r.InvestmentCalled(id)
		distributed := r.InvestmentDistributed(id)
		net := r.InvestmentNetCashFlow(id)
		navChange := r.InvestmentNAVChange(id)
		if called.IsZero() && distributed.IsZero() && net.IsZero() && navChange.IsZero() {
			continue
		}
		table.Rows = append(table.Rows, []string{
			id,
			cell(called),
			cell(distributed),
			net.SignedString(),
			navChange.SignedString(),
		})
	}
	if len(table.Rows) > 0 {
		doc.H2("By Investment")
		doc.Table(table)
	}

	if txs := r.Transactions(); len(txs) > 0 {
		doc.H2("Transactions")
		var lines []string
		for _, tx := range txs {
			lines = append(lines, fmt.Sprintf("%s: %s", tx.When(), Transaction(tx)))
		}
		doc.OrderedList(lines...)
	}

	return doc.String()
}
