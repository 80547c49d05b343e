package pacing

import "time"

// Intensity grades a bucket's activity relative to the view it sits in:
// the share of the largest absolute net flow across the classified set.
// It is a relative scale, recomputed per view, never an absolute one.
type Intensity int

const (
	NoActivity Intensity = iota
	Low
	Medium
	High
)

func (i Intensity) String() string {
	switch i {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "no-activity"
	}
}

// intensityTiers maps the share |net| / maxAbs(|net|) to a grade.
var intensityTiers = []struct {
	MinShare float64
	Level    Intensity
}{
	{0.7, High},
	{0.3, Medium},
	{0.0, Low},
}

func classifyIntensity(share float64) Intensity {
	if share <= 0 {
		return NoActivity
	}
	for _, t := range intensityTiers {
		if share > t.MinShare {
			return t.Level
		}
	}
	return NoActivity
}

// DailyFlow is the cash activity of one calendar day: non-negative inflow
// and outflow magnitudes, their net, and the contributing rows in order.
type DailyFlow struct {
	On           Date
	Inflows      Money
	Outflows     Money
	Net          Money // Inflows - Outflows
	Transactions []ForecastTransaction
	Intensity    Intensity
}

func (d DailyFlow) TransactionCount() int { return len(d.Transactions) }

// AggregateDaily buckets transactions into one DailyFlow per calendar day
// of the range, zero-activity days included, and grades each day's
// intensity relative to the returned set. Rows outside the range are
// ignored; rows keep their incoming order inside a day.
func AggregateDaily(rows []ForecastTransaction, rng Range) []DailyFlow {
	var days []DailyFlow
	index := make(map[Date]int)
	for d := range rng.Days() {
		index[d] = len(days)
		days = append(days, DailyFlow{On: d})
	}

	for _, row := range rows {
		i, ok := index[row.Date]
		if !ok {
			continue
		}
		day := &days[i]
		if row.Type.IsInflow() {
			day.Inflows = day.Inflows.Add(row.Amount)
		} else {
			day.Outflows = day.Outflows.Add(row.Amount)
		}
		day.Net = day.Inflows.Sub(day.Outflows)
		day.Transactions = append(day.Transactions, row)
	}

	classifyDays(days)
	return days
}

// classifyDays grades each day against the largest absolute net of the set.
func classifyDays(days []DailyFlow) {
	var maxAbs Money
	for _, d := range days {
		if a := d.Net.Abs(); a.GreaterThan(maxAbs) {
			maxAbs = a
		}
	}
	for i := range days {
		days[i].Intensity = shareIntensity(days[i].Net, maxAbs)
	}
}

func shareIntensity(net, maxAbs Money) Intensity {
	if maxAbs.IsZero() || net.IsZero() {
		return NoActivity
	}
	share := net.value.Abs().Div(maxAbs.value).InexactFloat64()
	return classifyIntensity(share)
}

// PeriodSummary totals a run of days: flow magnitudes, net, the count of
// days with any activity, and the single day with the largest absolute
// net flow (PeakFlow keeps that day's signed net).
type PeriodSummary struct {
	Inflows    Money
	Outflows   Money
	Net        Money
	ActiveDays int
	PeakDay    Date
	PeakFlow   Money
}

// Summarize totals any run of daily buckets. The calendars use it for
// their own summaries; it also serves callers that aggregate days outside
// a calendar shape.
func Summarize(days []DailyFlow) PeriodSummary {
	var s PeriodSummary
	for _, d := range days {
		s.Inflows = s.Inflows.Add(d.Inflows)
		s.Outflows = s.Outflows.Add(d.Outflows)
		if d.TransactionCount() > 0 {
			s.ActiveDays++
		}
		if d.Net.Abs().GreaterThan(s.PeakFlow.Abs()) {
			s.PeakDay, s.PeakFlow = d.On, d.Net
		}
	}
	s.Net = s.Inflows.Sub(s.Outflows)
	return s
}

// MonthlyCalendar is one calendar month of daily buckets, exactly the days
// of that month, 28 to 31 of them, no gaps, no duplicates, plus the month's
// summary. Intensity on the calendar itself is only set when the month sits
// inside a wider view, relative to its sibling months.
type MonthlyCalendar struct {
	Year      int
	Month     time.Month
	Days      []DailyFlow
	Summary   PeriodSummary
	Intensity Intensity
}

// NewMonthlyCalendar aggregates the rows falling inside the given month.
// No activity at all is fine: the calendar comes back complete with
// zero-activity days.
func NewMonthlyCalendar(year int, month time.Month, rows []ForecastTransaction) MonthlyCalendar {
	rng := Monthly.Range(NewDate(year, month, 1))
	days := AggregateDaily(rows, rng)
	return MonthlyCalendar{
		Year:    year,
		Month:   month,
		Days:    days,
		Summary: Summarize(days),
	}
}

// PeriodCalendar is a quarter or year view built from the same daily
// buckets as the monthly view: the days are aggregated once over the whole
// range and re-grouped per month, not re-derived by a second algorithm.
type PeriodCalendar struct {
	Range   Range
	Months  []MonthlyCalendar
	Summary PeriodSummary
}

// NewPeriodCalendar slices one daily aggregation into per-month calendars.
// Day intensity is graded within each month; month intensity across the
// sibling months of the view.
func NewPeriodCalendar(rng Range, rows []ForecastTransaction) PeriodCalendar {
	days := AggregateDaily(rows, rng)

	var months []MonthlyCalendar
	start := 0
	for mr := range rng.Months() {
		var sub []DailyFlow
		for i := start; i < len(days); i++ {
			if days[i].On.After(mr.To) {
				break
			}
			sub = append(sub, days[i])
		}
		start += len(sub)
		classifyDays(sub)
		months = append(months, MonthlyCalendar{
			Year:    mr.From.Year(),
			Month:   mr.From.Month(),
			Days:    sub,
			Summary: Summarize(sub),
		})
	}

	var maxAbs Money
	for _, m := range months {
		if a := m.Summary.Net.Abs(); a.GreaterThan(maxAbs) {
			maxAbs = a
		}
	}
	for i := range months {
		months[i].Intensity = shareIntensity(months[i].Summary.Net, maxAbs)
	}

	return PeriodCalendar{Range: rng, Months: months, Summary: Summarize(days)}
}
