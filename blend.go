package pacing

import "sort"

// BlendOptions carries the caller-side state of a unified forecast: which
// sources to include, under which scenario, and the as-of date separating
// history from forecast. Everything is an explicit parameter; the engine
// holds no session state.
type BlendOptions struct {
	Scenario           Scenario
	IncludeManual      bool
	IncludePacingModel bool
	Stale              StalePolicy
	AsOf               Date
}

// DefaultBlendOptions enables every source under the Base scenario.
func DefaultBlendOptions(asOf Date) BlendOptions {
	return BlendOptions{
		Scenario:           Base,
		IncludeManual:      true,
		IncludePacingModel: true,
		Stale:              DropStale,
		AsOf:               asOf,
	}
}

// slot identifies the granularity at which forecast sources conflict:
// one investment, one calendar month, one flow type.
type slot struct {
	investment string
	month      Date // first of month
	typ        FlowType
}

func slotOf(investment string, on Date, typ FlowType) slot {
	return slot{investment: investment, month: on.StartOf(Monthly), typ: typ}
}

// Blend merges the three candidate cash-flow sources into a single
// date-ordered transaction list:
//
//   - actuals are always included, never suppressed by any toggle, and
//     win their slot outright;
//   - manual entries require IncludeManual, lose any slot an actual
//     claims, and go stale once their date passes AsOf: stale entries are
//     dropped by default or kept under KeepStale;
//   - pacing-model points (supplied by the caller as projector output, nil
//     when the model is off or the investment is not projectable) become at
//     most one capital-call row and one distribution row per month, dated
//     at the period start, zero amounts elided. A model row is suppressed
//     whenever an actual or manual entry occupies the same slot.
//
// Rows outside the range are dropped. The result is sorted by date, then
// source (actual, manual, model), then flow type, then investment, and is
// deterministic for identical inputs.
func Blend(actuals []CashFlowTransaction, manual []ForecastTransaction, points []ForecastPoint, rng Range, opts BlendOptions) []ForecastTransaction {
	var rows []ForecastTransaction

	actualSlots := make(map[slot]bool)
	for _, a := range actuals {
		if !rng.Contains(a.Date) {
			continue
		}
		actualSlots[slotOf(a.Investment, a.Date, a.Type)] = true
		rows = append(rows, ForecastTransaction{
			Investment: a.Investment,
			Date:       a.Date,
			Type:       a.Type,
			Amount:     a.Amount,
			Source:     SourceActual,
		})
	}

	// Every manual entry in range claims its slot against the model, even
	// one dropped as stale: the human said something about that slot.
	manualSlots := make(map[slot]bool)
	if opts.IncludeManual {
		for _, m := range manual {
			if !rng.Contains(m.Date) {
				continue
			}
			sl := slotOf(m.Investment, m.Date, m.Type)
			manualSlots[sl] = true
			if actualSlots[sl] {
				continue
			}
			if !m.Date.After(opts.AsOf) && opts.Stale == DropStale {
				// stale: history belongs to actuals
				continue
			}
			m.Source = SourceManual
			rows = append(rows, m)
		}
	}

	if opts.IncludePacingModel {
		for _, pt := range points {
			on := pt.Period.From
			if !rng.Contains(on) {
				continue
			}
			conf := modelConfidence(opts.AsOf, on)
			claimed := func(typ FlowType) bool {
				sl := slotOf(pt.Investment, on, typ)
				return actualSlots[sl] || manualSlots[sl]
			}
			if pt.Calls.IsPositive() && !claimed(CapitalCall) {
				rows = append(rows, ForecastTransaction{
					Investment: pt.Investment,
					Date:       on,
					Type:       CapitalCall,
					Amount:     pt.Calls,
					Source:     SourceModel,
					Confidence: conf,
				})
			}
			if pt.Distributions.IsPositive() && !claimed(Distribution) {
				rows = append(rows, ForecastTransaction{
					Investment: pt.Investment,
					Date:       on,
					Type:       Distribution,
					Amount:     pt.Distributions,
					Source:     SourceModel,
					Confidence: conf,
				})
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		if a.Source != b.Source {
			return a.Source.rank() < b.Source.rank()
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Investment < b.Investment
	})
	return rows
}

// modelConfidence decays with distance ahead of the as-of date: 80% now,
// minus 10 points per whole year, floored at 30%.
func modelConfidence(asOf, on Date) Percent {
	yearsAhead := on.StartOf(Monthly).MonthsSince(asOf.StartOf(Monthly)) / 12
	if yearsAhead < 0 {
		yearsAhead = 0
	}
	c := Percent(80 - 10*yearsAhead)
	if c < 30 {
		return 30
	}
	return c
}
