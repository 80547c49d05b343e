package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/pacing"
	md "github.com/nao1215/markdown"
)

// LiquidityMarkdown renders the portfolio cash walk: one row per month
// with the running balance, gap months flagged, then the gap summary.
func LiquidityMarkdown(lf pacing.LiquidityForecast) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Liquidity Forecast (%s)", lf.Scenario))
	doc.PlainText(fmt.Sprintf("Starting cash: %s", lf.Start))

	if len(lf.Points) > 0 {
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Month", "Calls", "Distributions", "Net", "Balance", ""},
		}
		for _, pt := range lf.Points {
			gap := ""
			if pt.Gap {
				gap = "⚠ gap"
			}
			table.Rows = append(table.Rows, []string{
				pt.Period.From.String(),
				cell(pt.Calls),
				cell(pt.Distributions),
				pt.Net.SignedString(),
				pt.Balance.SignedString(),
				gap,
			})
		}
		doc.Table(table)
	}

	if lf.GapMonths > 0 {
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{md.Bold("Gap months"), md.Bold(fmt.Sprintf("%d of %d", lf.GapMonths, len(lf.Points)))},
			Rows: [][]string{
				{"Deepest shortfall", lf.MaxGap.String()},
			},
		})
	} else {
		doc.PlainText(fmt.Sprintf("No liquidity gap over the horizon; the balance bottoms out at %s.", lf.MaxGap))
	}

	notProjectable(doc, lf.NotProjectable)
	return doc.String()
}
