package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/pacing"
	md "github.com/nao1215/markdown"
)

// CalendarMarkdown renders one month of cash-flow activity: the active
// days with their flows and heat markers, then the month's summary.
func CalendarMarkdown(cal pacing.MonthlyCalendar) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Cash-Flow Calendar: %s %d", cal.Month, cal.Year))
	monthTable(doc, cal)
	summaryTable(doc, cal.Summary)
	return doc.String()
}

// PeriodCalendarMarkdown renders a quarter or year: one section per
// month, graded against its siblings, then the whole period's summary.
func PeriodCalendarMarkdown(pc pacing.PeriodCalendar) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := fmt.Sprintf("Cash-Flow Calendar: %s to %s", pc.Range.From, pc.Range.To)
	if _, ok := pc.Range.Period(); ok {
		title = fmt.Sprintf("Cash-Flow Calendar: %s (%s to %s)", pc.Range.Identifier(), pc.Range.From, pc.Range.To)
	}
	doc.H1(title)

	overview := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Month", "Inflows", "Outflows", "Net", "Activity"},
	}
	for _, m := range pc.Months {
		overview.Rows = append(overview.Rows, []string{
			fmt.Sprintf("%s %d", m.Month, m.Year),
			cell(m.Summary.Inflows),
			cell(m.Summary.Outflows),
			m.Summary.Net.SignedString(),
			marker(m.Intensity),
		})
	}
	doc.Table(overview)

	for _, m := range pc.Months {
		if m.Summary.ActiveDays == 0 {
			continue
		}
		doc.H2(fmt.Sprintf("%s %d", m.Month, m.Year))
		monthTable(doc, m)
	}

	summaryTable(doc, pc.Summary)
	return doc.String()
}

// monthTable lists the active days of one month. A month with no
// activity at all states so instead of printing an empty table.
func monthTable(doc *md.Markdown, cal pacing.MonthlyCalendar) {
	if cal.Summary.ActiveDays == 0 {
		doc.PlainText("No cash-flow activity this month.")
		return
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Day", "Inflows", "Outflows", "Net", "Rows", "Activity"},
	}
	for _, day := range cal.Days {
		if day.TransactionCount() == 0 {
			continue
		}
		table.Rows = append(table.Rows, []string{
			day.On.String(),
			cell(day.Inflows),
			cell(day.Outflows),
			day.Net.SignedString(),
			fmt.Sprintf("%d", day.TransactionCount()),
			marker(day.Intensity),
		})
	}
	doc.Table(table)
}

// summaryTable prints the run totals shared by both calendar shapes.
func summaryTable(doc *md.Markdown, s pacing.PeriodSummary) {
	rows := [][]string{
		{"Inflows", cell(s.Inflows)},
		{"Outflows", cell(s.Outflows)},
		{"Active days", fmt.Sprintf("%d", s.ActiveDays)},
	}
	if !s.PeakFlow.IsZero() {
		rows = append(rows, []string{"Peak day", fmt.Sprintf("%s (%s)", s.PeakDay, s.PeakFlow.SignedString())})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Net"), md.Bold(s.Net.SignedString())},
		Rows:      rows,
	})
}
