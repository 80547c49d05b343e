// Package renderer turns engine reports into markdown strings. Every
// function is pure: no I/O, the caller decides where the markdown goes.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/pacing"
	md "github.com/nao1215/markdown"
)

// ProjectionMarkdown renders a per-investment pacing projection, one row
// per projected month.
func ProjectionMarkdown(points []pacing.ForecastPoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if len(points) == 0 {
		doc.H1("Projection")
		doc.PlainText("Nothing to project: the horizon is empty.")
		return doc.String()
	}

	first := points[0]
	doc.H1(fmt.Sprintf("Projection: %s (%s)", first.Investment, first.Scenario))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Month", "Calls", "Distributions", "NAV", "Cumulative Net"},
	}
	var called, distributed pacing.Money
	for _, pt := range points {
		called = called.Add(pt.Calls)
		distributed = distributed.Add(pt.Distributions)
		table.Rows = append(table.Rows, []string{
			pt.Period.From.String(),
			pt.Calls.String(),
			pt.Distributions.String(),
			pt.NAV.String(),
			pt.CumulativeNet.SignedString(),
		})
	}
	doc.Table(table)

	if called.IsZero() && distributed.IsZero() {
		doc.PlainText(fmt.Sprintf("No projected cash flows over %d months.", len(points)))
	} else {
		doc.PlainText(fmt.Sprintf("Over %d months: %s called, %s distributed.",
			len(points), called, distributed))
	}
	return doc.String()
}
