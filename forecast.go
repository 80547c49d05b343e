package pacing

import (
	"errors"
	"time"
)

// The engine does not fetch or store anything itself: investments, actual
// flows and manual forecasts are consumed through these three contracts,
// supplied by the caller as already-fetched data.

type InvestmentSource interface {
	Investment(id string) (Investment, error)
	Investments() []Investment
}

type ActualSource interface {
	CashFlows(id string, r Range) []CashFlowTransaction
}

type ManualSource interface {
	ManualForecasts(id string, r Range) []ForecastTransaction
}

// Forecaster orchestrates the pure engine functions over the three
// repositories. It holds no state of its own; every method is a
// deterministic function of the sources' current content and its
// arguments.
type Forecaster struct {
	Investments InvestmentSource
	Actuals     ActualSource
	Manual      ManualSource
}

// UnifiedForecast is the blended daily view over a range, with the ids of
// investments whose pacing model could not run attached as warnings.
type UnifiedForecast struct {
	Range          Range
	Days           []DailyFlow
	NotProjectable []string
}

// UnifiedForecast blends every investment's sources over the range and
// buckets the result per day. Unprojectable investments lose only their
// model rows; their actuals and manual entries still count.
func (f *Forecaster) UnifiedForecast(rng Range, opts BlendOptions) (UnifiedForecast, error) {
	rows, skipped, err := f.blend(f.Investments.Investments(), rng, opts)
	if err != nil {
		return UnifiedForecast{}, err
	}
	return UnifiedForecast{
		Range:          rng,
		Days:           AggregateDaily(rows, rng),
		NotProjectable: skipped,
	}, nil
}

// InvestmentForecast is UnifiedForecast narrowed to one investment.
func (f *Forecaster) InvestmentForecast(id string, rng Range, opts BlendOptions) (UnifiedForecast, error) {
	inv, err := f.Investments.Investment(id)
	if err != nil {
		return UnifiedForecast{}, err
	}
	rows, skipped, err := f.blend([]Investment{inv}, rng, opts)
	if err != nil {
		return UnifiedForecast{}, err
	}
	return UnifiedForecast{
		Range:          rng,
		Days:           AggregateDaily(rows, rng),
		NotProjectable: skipped,
	}, nil
}

// MonthlyCalendar aggregates one calendar month. includeForecasts toggles
// both forecast sources at once; actuals are always in.
func (f *Forecaster) MonthlyCalendar(year int, month time.Month, includeForecasts bool, opts BlendOptions) (MonthlyCalendar, error) {
	if !includeForecasts {
		opts.IncludeManual = false
		opts.IncludePacingModel = false
	}
	rng := Monthly.Range(NewDate(year, month, 1))
	rows, _, err := f.blend(f.Investments.Investments(), rng, opts)
	if err != nil {
		return MonthlyCalendar{}, err
	}
	return NewMonthlyCalendar(year, month, rows), nil
}

// PeriodCalendar serves the quarter and year views from the same daily
// buckets as the monthly one.
func (f *Forecaster) PeriodCalendar(rng Range, opts BlendOptions) (PeriodCalendar, error) {
	rows, _, err := f.blend(f.Investments.Investments(), rng, opts)
	if err != nil {
		return PeriodCalendar{}, err
	}
	return NewPeriodCalendar(rng, rows), nil
}

// Liquidity runs the portfolio cash walk over every known investment.
func (f *Forecaster) Liquidity(startingCash Money, horizonMonths int, asOf Date, sc Scenario) (LiquidityForecast, error) {
	return ForecastLiquidity(f.Investments.Investments(), startingCash, horizonMonths, asOf, sc)
}

// ProjectInvestment projects one investment by id.
func (f *Forecaster) ProjectInvestment(id string, sc Scenario, horizonMonths int, asOf Date) ([]ForecastPoint, error) {
	inv, err := f.Investments.Investment(id)
	if err != nil {
		return nil, err
	}
	return Project(inv, sc, horizonMonths, asOf)
}

// blend gathers the three sources for the given investments and merges
// them. The pacing model runs from the as-of month to the end of the
// range; investments it cannot project are collected, not fatal.
func (f *Forecaster) blend(investments []Investment, rng Range, opts BlendOptions) (rows []ForecastTransaction, notProjectable []string, err error) {
	sc, err := ParseScenario(string(opts.Scenario))
	if err != nil {
		return nil, nil, err
	}
	opts.Scenario = sc

	horizon := 0
	if opts.IncludePacingModel {
		horizon = rng.To.StartOf(Monthly).MonthsSince(opts.AsOf.StartOf(Monthly)) + 1
	}

	var actuals []CashFlowTransaction
	var manual []ForecastTransaction
	var points []ForecastPoint
	for _, inv := range investments {
		actuals = append(actuals, f.Actuals.CashFlows(inv.ID, rng)...)
		manual = append(manual, f.Manual.ManualForecasts(inv.ID, rng)...)
		if horizon <= 0 {
			continue
		}
		pts, err := Project(inv, sc, horizon, opts.AsOf)
		if err != nil {
			if errors.Is(err, ErrNotProjectable) {
				notProjectable = append(notProjectable, inv.ID)
				continue
			}
			return nil, nil, err
		}
		points = append(points, pts...)
	}

	return Blend(actuals, manual, points, rng, opts), notProjectable, nil
}
