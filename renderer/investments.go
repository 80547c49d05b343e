package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/pacing"
	md "github.com/nao1215/markdown"
)

// InvestmentsMarkdown renders the portfolio status table as of a
// snapshot date: one row per investment in declaration order, then the
// portfolio totals.
func InvestmentsMarkdown(s *pacing.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Investments as of %s", s.On()))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Investment", "Vintage", "Since", "Commitment", "Called", "Uncalled", "NAV", "Statement", "DPI", "TVPI"},
	}
	var count int
	for _, inv := range s.Investments() {
		count++
		since := "n/a"
		if d, ok := s.InceptionDate(inv.ID); ok {
			since = d.String()
		}
		nav, statement := "n/a", "n/a"
		if v, ok := s.NAV(inv.ID); ok {
			nav = v.String()
		}
		if d, ok := s.LastValuationDate(inv.ID); ok {
			statement = d.String()
		}
		table.Rows = append(table.Rows, []string{
			inv.ID,
			fmt.Sprintf("%d", inv.Vintage),
			since,
			inv.Commitment.String(),
			cell(s.Called(inv.ID)),
			cell(s.Uncalled(inv.ID)),
			nav,
			statement,
			s.DPI(inv.ID).String(),
			s.TVPI(inv.ID).String(),
		})
	}
	if count == 0 {
		doc.PlainText("No investments declared yet.")
		return doc.String()
	}
	doc.Table(table)

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Total NAV"), md.Bold(cell(s.TotalNAV()))},
		Rows: [][]string{
			{"Commitments", cell(s.TotalCommitment())},
			{"Called", cell(s.TotalCalled())},
			{"Uncalled", cell(s.TotalUncalled())},
			{"Distributed", cell(s.TotalDistributed())},
			{"Net Cash Flow", s.TotalNetCashFlow().SignedString()},
		},
	})

	return doc.String()
}
