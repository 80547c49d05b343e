package pacing

import (
	"slices"
	"testing"
	"time"
)

func marchPoint(calls, dist float64) ForecastPoint {
	return ForecastPoint{
		Investment:    "pe-growth-iv",
		Period:        Monthly.Range(NewDate(2025, time.March, 1)),
		Scenario:      Base,
		Calls:         usd(calls),
		Distributions: usd(dist),
	}
}

func TestBlendActualWinsSlot(t *testing.T) {
	rng := Monthly.Range(NewDate(2025, time.March, 1))
	opts := DefaultBlendOptions(NewDate(2025, time.March, 15))

	actuals := []CashFlowTransaction{
		{Investment: "pe-growth-iv", Date: NewDate(2025, time.March, 10), Type: CapitalCall, Amount: usd(100_000)},
	}
	// A fresh manual entry and a model point compete for the same
	// investment, month and flow type as the settled call.
	manual := []ForecastTransaction{
		{Investment: "pe-growth-iv", Date: NewDate(2025, time.March, 20), Type: CapitalCall, Amount: usd(120_000)},
	}
	points := []ForecastPoint{marchPoint(90_000, 0)}

	rows := Blend(actuals, manual, points, rng, opts)
	if len(rows) != 1 {
		t.Fatalf("Blend() returned %d rows, want 1: %v", len(rows), rows)
	}
	got := rows[0]
	if got.Source != SourceActual || !got.Amount.Equal(usd(100_000)) {
		t.Errorf("Blend() kept %v %v, want the settled 100,000 call", got.Source, got.Amount)
	}
}

func TestBlendManualOverridesModel(t *testing.T) {
	rng := Monthly.Range(NewDate(2025, time.March, 1))
	opts := DefaultBlendOptions(NewDate(2025, time.March, 1))

	// The human expects a bigger call than the model; the model's
	// distribution occupies a different slot and survives.
	manual := []ForecastTransaction{
		{Investment: "pe-growth-iv", Date: NewDate(2025, time.March, 18), Type: CapitalCall, Amount: usd(150_000)},
	}
	points := []ForecastPoint{marchPoint(90_000, 50_000)}

	rows := Blend(nil, manual, points, rng, opts)
	if len(rows) != 2 {
		t.Fatalf("Blend() returned %d rows, want 2: %v", len(rows), rows)
	}
	// period-start model distribution first, manual call on its own date
	if rows[0].Source != SourceModel || rows[0].Type != Distribution || !rows[0].Amount.Equal(usd(50_000)) {
		t.Errorf("rows[0] = %+v, want the model 50,000 distribution", rows[0])
	}
	if rows[0].Confidence != 80 {
		t.Errorf("model row in the as-of month has confidence %v, want 80", rows[0].Confidence)
	}
	if rows[1].Source != SourceManual || rows[1].Type != CapitalCall || !rows[1].Amount.Equal(usd(150_000)) {
		t.Errorf("rows[1] = %+v, want the manual 150,000 call", rows[1])
	}
	if rows[1].Confidence != 0 {
		t.Errorf("manual row carries confidence %v, want none", rows[1].Confidence)
	}
}

func TestBlendStalePolicy(t *testing.T) {
	rng := Monthly.Range(NewDate(2025, time.March, 1))
	asOf := NewDate(2025, time.March, 15)

	// dated on or before asOf: stale
	manual := []ForecastTransaction{
		{Investment: "pe-growth-iv", Date: NewDate(2025, time.March, 1), Type: CapitalCall, Amount: usd(150_000)},
	}
	points := []ForecastPoint{marchPoint(90_000, 0)}

	// Dropped as stale, yet the slot stays claimed: no model call may
	// backfill a month the human spoke about.
	opts := DefaultBlendOptions(asOf)
	if rows := Blend(nil, manual, points, rng, opts); len(rows) != 0 {
		t.Errorf("drop policy: Blend() returned %d rows, want 0: %v", len(rows), rows)
	}

	opts.Stale = KeepStale
	rows := Blend(nil, manual, points, rng, opts)
	if len(rows) != 1 || rows[0].Source != SourceManual {
		t.Fatalf("keep policy: Blend() = %v, want the stale manual call only", rows)
	}

	// Once an actual settles the slot, even KeepStale yields to it.
	actuals := []CashFlowTransaction{
		{Investment: "pe-growth-iv", Date: NewDate(2025, time.March, 5), Type: CapitalCall, Amount: usd(98_000)},
	}
	rows = Blend(actuals, manual, points, rng, opts)
	if len(rows) != 1 || rows[0].Source != SourceActual {
		t.Fatalf("keep policy with actual: Blend() = %v, want the settled call only", rows)
	}
}

func TestBlendSourceToggles(t *testing.T) {
	rng := Monthly.Range(NewDate(2025, time.March, 1))

	actuals := []CashFlowTransaction{
		{Investment: "pe-growth-iv", Date: NewDate(2025, time.March, 3), Type: Fees, Amount: usd(12_000)},
	}
	manual := []ForecastTransaction{
		{Investment: "pe-growth-iv", Date: NewDate(2025, time.March, 25), Type: Distribution, Amount: usd(60_000)},
	}
	points := []ForecastPoint{marchPoint(90_000, 50_000)}

	opts := BlendOptions{Scenario: Base, AsOf: NewDate(2025, time.March, 1)}
	rows := Blend(actuals, manual, points, rng, opts)
	if len(rows) != 1 || rows[0].Source != SourceActual {
		t.Fatalf("all toggles off: Blend() = %v, want actuals only", rows)
	}

	// With manual entries excluded they claim nothing: the model
	// distribution reappears. Model rows sit at the period start, ahead
	// of the March 3 fee.
	opts.IncludePacingModel = true
	rows = Blend(actuals, manual, points, rng, opts)
	want := []Source{SourceModel, SourceModel, SourceActual}
	if len(rows) != 3 {
		t.Fatalf("model only: Blend() returned %d rows, want 3: %v", len(rows), rows)
	}
	for i, r := range rows {
		if r.Source != want[i] {
			t.Errorf("model only: rows[%d].Source = %v, want %v", i, r.Source, want[i])
		}
	}
}

func TestBlendElidesZeroModelAmounts(t *testing.T) {
	rng := Monthly.Range(NewDate(2025, time.March, 1))
	opts := DefaultBlendOptions(NewDate(2025, time.March, 1))

	rows := Blend(nil, nil, []ForecastPoint{marchPoint(0, 50_000)}, rng, opts)
	if len(rows) != 1 || rows[0].Type != Distribution {
		t.Fatalf("Blend() = %v, want a single distribution row", rows)
	}
	if got, want := rows[0].Date, NewDate(2025, time.March, 1); got != want {
		t.Errorf("model row dated %v, want the period start %v", got, want)
	}
}

func TestBlendDropsRowsOutsideRange(t *testing.T) {
	rng := Monthly.Range(NewDate(2025, time.April, 1))
	opts := DefaultBlendOptions(NewDate(2025, time.April, 1))

	actuals := []CashFlowTransaction{
		{Investment: "pe-growth-iv", Date: NewDate(2025, time.March, 10), Type: CapitalCall, Amount: usd(100_000)},
	}
	manual := []ForecastTransaction{
		{Investment: "pe-growth-iv", Date: NewDate(2025, time.May, 2), Type: Distribution, Amount: usd(60_000)},
	}
	points := []ForecastPoint{marchPoint(90_000, 50_000)}

	if rows := Blend(actuals, manual, points, rng, opts); len(rows) != 0 {
		t.Errorf("Blend() returned %d rows outside the range, want 0: %v", len(rows), rows)
	}
}

func TestBlendSortOrder(t *testing.T) {
	rng := NewRange(NewDate(2025, time.April, 1), NewDate(2025, time.May, 31))
	opts := DefaultBlendOptions(NewDate(2025, time.April, 20))

	actuals := []CashFlowTransaction{
		{Investment: "fund-b", Date: NewDate(2025, time.May, 1), Type: Distribution, Amount: usd(10)},
		{Investment: "fund-a", Date: NewDate(2025, time.May, 1), Type: CapitalCall, Amount: usd(20)},
		{Investment: "fund-e", Date: NewDate(2025, time.April, 28), Type: Yield, Amount: usd(5)},
	}
	manual := []ForecastTransaction{
		{Investment: "fund-c", Date: NewDate(2025, time.May, 1), Type: Yield, Amount: usd(30)},
	}
	points := []ForecastPoint{{
		Investment: "fund-d",
		Period:     Monthly.Range(NewDate(2025, time.May, 1)),
		Scenario:   Base,
		Calls:      usd(40),
	}}

	rows := Blend(actuals, manual, points, rng, opts)

	type key struct {
		src Source
		inv string
		typ FlowType
	}
	var got []key
	for _, r := range rows {
		got = append(got, key{r.Source, r.Investment, r.Type})
	}
	// date first, then source rank, then flow type, then investment
	want := []key{
		{SourceActual, "fund-e", Yield},
		{SourceActual, "fund-a", CapitalCall},
		{SourceActual, "fund-b", Distribution},
		{SourceManual, "fund-c", Yield},
		{SourceModel, "fund-d", CapitalCall},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Blend() order = %v, want %v", got, want)
	}
}

func TestModelConfidence(t *testing.T) {
	asOf := NewDate(2025, time.March, 15)
	cases := []struct {
		monthsAhead int
		want        Percent
	}{
		{0, 80},
		{11, 80},
		{12, 70},
		{24, 60},
		{60, 30},
		{72, 30}, // floored
		{-2, 80}, // a point behind the as-of date decays nothing
	}
	for _, c := range cases {
		on := asOf.StartOf(Monthly).AddMonth(c.monthsAhead)
		if got := modelConfidence(asOf, on); got != c.want {
			t.Errorf("modelConfidence(+%dmo) = %v, want %v", c.monthsAhead, got, c.want)
		}
	}
}
