package pacing

import "errors"

// LiquidityPoint is one month of the portfolio cash walk: summed projected
// calls and distributions, their net, and the running balance after them.
type LiquidityPoint struct {
	Period        Range // one calendar month
	Calls         Money
	Distributions Money
	Net           Money // Distributions - Calls
	Balance       Money
	Gap           bool // balance below zero
}

// LiquidityForecast is the result of a portfolio liquidity run. A month
// whose running balance goes negative is a cash gap; MaxGap is the lowest
// balance reached over the horizon. Investments that could not be
// projected are listed in NotProjectable: they contributed nothing and
// did not abort the run.
type LiquidityForecast struct {
	Start          Money
	Scenario       Scenario
	Points         []LiquidityPoint
	MaxGap         Money
	GapMonths      int
	NotProjectable []string
}

// ForecastLiquidity projects every investment over the horizon under one
// scenario (Base when empty), sums the portfolio's monthly calls and
// distributions, and walks a running cash balance seeded with
// startingCash. Per-investment projection failures are isolated: the
// investment is skipped and reported, never fatal.
func ForecastLiquidity(investments []Investment, startingCash Money, horizonMonths int, asOf Date, sc Scenario) (LiquidityForecast, error) {
	sc, err := ParseScenario(string(sc))
	if err != nil {
		return LiquidityForecast{}, err
	}
	f := LiquidityForecast{Start: startingCash, Scenario: sc, MaxGap: startingCash}
	if horizonMonths <= 0 {
		return f, nil
	}

	var series [][]ForecastPoint
	for _, inv := range investments {
		pts, err := Project(inv, sc, horizonMonths, asOf)
		if err != nil {
			if errors.Is(err, ErrNotProjectable) {
				f.NotProjectable = append(f.NotProjectable, inv.ID)
				continue
			}
			return LiquidityForecast{}, err
		}
		series = append(series, pts)
	}

	balance := startingCash
	month := asOf.StartOf(Monthly)
	for k := 0; k < horizonMonths; k++ {
		var calls, dists Money
		for _, pts := range series {
			calls = calls.Add(pts[k].Calls)
			dists = dists.Add(pts[k].Distributions)
		}
		net := dists.Sub(calls)
		balance = balance.Add(net)

		gap := balance.IsNegative()
		if gap {
			f.GapMonths++
		}
		if k == 0 || balance.LessThan(f.MaxGap) {
			f.MaxGap = balance
		}

		f.Points = append(f.Points, LiquidityPoint{
			Period:        Monthly.Range(month),
			Calls:         calls,
			Distributions: dists,
			Net:           net,
			Balance:       balance,
			Gap:           gap,
		})
		month = month.AddMonth(1)
	}
	return f, nil
}
