package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/pacing"
	md "github.com/nao1215/markdown"
)

// ForecastMarkdown renders the unified cash-flow view: one row per
// transaction on the days that have any, settled and forecast side by
// side. Quiet days are left out of the table; the summary still counts
// the whole range.
func ForecastMarkdown(uf pacing.UnifiedForecast) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Cash-Flow Forecast: %s to %s", uf.Range.From, uf.Range.To))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Investment", "Type", "Amount", "Source", "Confidence"},
	}
	for _, day := range uf.Days {
		for _, row := range day.Transactions {
			confidence := ""
			if row.Source == pacing.SourceModel {
				confidence = row.Confidence.String()
			}
			amount := row.Amount.String()
			if !row.Type.IsInflow() {
				amount = row.Amount.Neg().String()
			}
			table.Rows = append(table.Rows, []string{
				row.Date.String(),
				row.Investment,
				string(row.Type),
				amount,
				string(row.Source),
				confidence,
			})
		}
	}
	doc.Table(table)

	summary := pacing.Summarize(uf.Days)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Net"), md.Bold(summary.Net.SignedString())},
		Rows: [][]string{
			{"Inflows", cell(summary.Inflows)},
			{"Outflows", cell(summary.Outflows)},
			{"Active days", fmt.Sprintf("%d of %d", summary.ActiveDays, len(uf.Days))},
		},
	})

	notProjectable(doc, uf.NotProjectable)
	return doc.String()
}

// notProjectable appends the skipped-investments section shared by the
// forecast and liquidity reports.
func notProjectable(doc *md.Markdown, ids []string) {
	if len(ids) == 0 {
		return
	}
	doc.H2("Not Projectable")
	doc.PlainText("These investments lack pacing terms and carry no model rows:")
	doc.OrderedList(ids...)
}
