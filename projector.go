package pacing

import (
	"fmt"
	"time"
)

// Investment is the engine's view of one private-market position: the
// commitment-level facts and pacing parameters a projection needs. It is
// owned externally (see InvestmentSource) and read-only here.
type Investment struct {
	ID         string
	Name       string
	Commitment Money
	Called     Money // cumulative capital drawn to date, at most Commitment
	Vintage    int   // year the fund began calling capital

	InvestmentPeriod int // years during which capital can be called
	FundLife         int // years until final liquidation

	TargetIRR     Percent
	TargetMOIC    Factor
	Calls         CallSchedule
	Distributions DistributionTiming
	Bow           float64 // J-curve dip depth, in (0,1)
}

// Uncalled returns the commitment not yet drawn, clamped at zero.
func (inv Investment) Uncalled() Money {
	u := inv.Commitment.Sub(inv.Called)
	if u.IsNegative() {
		return M(0, inv.Commitment.Currency())
	}
	return u
}

// Projectable reports whether the pacing parameters can drive a projection.
func (inv Investment) Projectable() error {
	if inv.InvestmentPeriod <= 0 || inv.FundLife <= 0 {
		return fmt.Errorf("investment %q: %w: investment period %dy, fund life %dy",
			inv.ID, ErrNotProjectable, inv.InvestmentPeriod, inv.FundLife)
	}
	return nil
}

// vintageDate anchors pacing progress: a vintage year starts calling on
// January 1st of that year.
func (inv Investment) vintageDate() Date { return NewDate(inv.Vintage, time.January, 1) }

// ForecastPoint is one projected calendar month for one investment under
// one scenario, with running cumulative totals.
type ForecastPoint struct {
	Investment string
	Period     Range // one calendar month
	Scenario   Scenario

	Calls         Money
	Distributions Money
	NAV           Money

	// CumulativeCalls includes capital already called before the
	// projection started; the other cumulatives count projected flows only.
	CumulativeCalls         Money
	CumulativeDistributions Money
	CumulativeNet           Money
}

// Project walks month by month from the month containing asOf and returns
// one ForecastPoint per month of the horizon.
//
// The walk applies the pacing curves to the investment's current state:
// monthly calls draw a fixed fraction of today's uncalled capital, capped
// so total calls never exceed the commitment (excess is dropped, a fund
// cannot call more than committed); distributions draw on the distributable
// base (called capital times scenario-scaled MOIC times 0.6, the fraction
// of eventual value modeled as returned inside the window); NAV follows a
// J-curve, depressed by the bow factor early and recovering toward the
// undistributed value estimate by end of fund life.
//
// Project is a pure function: identical inputs give identical output.
func Project(inv Investment, sc Scenario, horizonMonths int, asOf Date) ([]ForecastPoint, error) {
	sc, err := ParseScenario(string(sc))
	if err != nil {
		return nil, err
	}
	if err := inv.Projectable(); err != nil {
		return nil, err
	}
	if horizonMonths <= 0 {
		return nil, nil
	}

	factor := sc.Factor()
	moic := inv.TargetMOIC.Mul(factor)
	vintage := inv.vintageDate()
	investmentMonths := inv.InvestmentPeriod * 12
	lifeMonths := inv.FundLife * 12

	uncalled := inv.Uncalled() // fixed at entry; monthly calls are fractions of it
	cumCalls := inv.Called
	cumDist := M(0, inv.Called.Currency())

	points := make([]ForecastPoint, 0, horizonMonths)
	for month := asOf.StartOf(Monthly); len(points) < horizonMonths; month = month.AddMonth(1) {
		elapsed := month.MonthsSince(vintage)

		// Capital calls while inside the investment period.
		var calls Money
		if uncalled.IsPositive() && elapsed >= 0 && elapsed < investmentMonths {
			p := float64(elapsed) / float64(investmentMonths)
			calls = uncalled.Mul(F(CallRate(inv.Calls, p)))
		}
		if cumCalls.Add(calls).GreaterThan(inv.Commitment) {
			calls = inv.Commitment.Sub(cumCalls)
			if calls.IsNegative() {
				calls = M(0, inv.Commitment.Currency())
			}
		}
		cumCalls = cumCalls.Add(calls)

		// Distributions on the distributable base.
		age := float64(elapsed) / 12
		p := float64(elapsed) / float64(lifeMonths)
		base := cumCalls.Mul(moic).Mul(F(0.6))
		dist := base.Mul(F(DistributionRate(inv.Distributions, age, p))).Mul(factor)
		cumDist = cumDist.Add(dist)

		nav := jcurveNAV(cumCalls, cumDist, moic, inv.Bow, elapsed, investmentMonths, lifeMonths)

		points = append(points, ForecastPoint{
			Investment:              inv.ID,
			Period:                  Monthly.Range(month),
			Scenario:                sc,
			Calls:                   calls,
			Distributions:           dist,
			NAV:                     nav,
			CumulativeCalls:         cumCalls,
			CumulativeDistributions: cumDist,
			// net counts projected flows only; the seed is history, not forecast
			CumulativeNet: cumDist.Sub(cumCalls.Sub(inv.Called)),
		})
	}
	return points, nil
}

// jcurveNAV values the position along a J-curve: held at the bow-depressed
// floor through the first third of the investment period, then recovering
// linearly toward called capital times MOIC, less what was already
// distributed, by the end of fund life. Never negative.
func jcurveNAV(cumCalls, cumDist Money, moic Factor, bow float64, elapsed, investmentMonths, lifeMonths int) Money {
	target := cumCalls.Mul(moic).Sub(cumDist)
	if target.IsNegative() {
		target = M(0, cumCalls.Currency())
	}
	if elapsed >= lifeMonths {
		return target
	}
	floor := cumCalls.Mul(F(1 - bow))
	dip := investmentMonths / 3
	if elapsed <= dip {
		return floor
	}
	w := float64(elapsed-dip) / float64(lifeMonths-dip)
	nav := floor.Add(target.Sub(floor).Mul(F(w)))
	if nav.IsNegative() {
		return M(0, cumCalls.Currency())
	}
	return nav
}
