package pacing

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// steadyFund is a mid-deployment buyout fund used across projection tests:
// 10M committed, 2M called, vintage 2022, 4y investment period, 10y life.
func steadyFund() Investment {
	return Investment{
		ID:               "pe-growth-iv",
		Name:             "PE Growth Fund IV",
		Commitment:       usd(10_000_000),
		Called:           usd(2_000_000),
		Vintage:          2022,
		InvestmentPeriod: 4,
		FundLife:         10,
		TargetMOIC:       F(2.5),
		Calls:            ScheduleSteady,
		Distributions:    TimingSteady,
		Bow:              0.3,
	}
}

func TestProjectSteadyPacing(t *testing.T) {
	inv := steadyFund()
	asOf := NewDate(2023, time.February, 15)

	points, err := Project(inv, Base, 12, asOf)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if len(points) != 12 {
		t.Fatalf("Project() returned %d points, want 12", len(points))
	}

	// The walk starts in the month containing asOf.
	if got, want := points[0].Period.From, NewDate(2023, time.February, 1); got != want {
		t.Errorf("first point starts %v, want %v", got, want)
	}
	if got, want := points[11].Period.From, NewDate(2024, time.January, 1); got != want {
		t.Errorf("last point starts %v, want %v", got, want)
	}

	// Steady schedule draws 8% of the 8M uncalled every month: 640,000.
	// The fund is younger than two years throughout (vintage 2022, last
	// point elapsed month 24 has life progress 0.2, below the steady
	// knee), so no month distributes.
	for i, pt := range points {
		if pt.Investment != "pe-growth-iv" || pt.Scenario != Base {
			t.Fatalf("points[%d] tagged %q/%q, want pe-growth-iv/base", i, pt.Investment, pt.Scenario)
		}
		if !pt.Calls.Equal(usd(640_000)) {
			t.Errorf("points[%d].Calls = %v, want 640,000", i, pt.Calls)
		}
		if !pt.Distributions.IsZero() {
			t.Errorf("points[%d].Distributions = %v, want zero", i, pt.Distributions)
		}
	}

	// Cumulative calls include the 2M already drawn; net counts projected
	// flows only.
	if got := points[0].CumulativeCalls; !got.Equal(usd(2_640_000)) {
		t.Errorf("points[0].CumulativeCalls = %v, want 2,640,000", got)
	}
	if got := points[0].CumulativeNet; !got.Equal(usd(-640_000)) {
		t.Errorf("points[0].CumulativeNet = %v, want -640,000", got)
	}
	if got := points[11].CumulativeCalls; !got.Equal(usd(9_680_000)) {
		t.Errorf("points[11].CumulativeCalls = %v, want 9,680,000", got)
	}
	if got := points[11].CumulativeNet; !got.Equal(usd(-7_680_000)) {
		t.Errorf("points[11].CumulativeNet = %v, want -7,680,000", got)
	}

	// NAV sits on the bow-depressed floor through the first third of the
	// investment period (16 months): 2,640,000 * 0.7 in February 2023,
	// 4,560,000 * 0.7 in May.
	if got := points[0].NAV; !got.Equal(usd(1_848_000)) {
		t.Errorf("points[0].NAV = %v, want 1,848,000", got)
	}
	if got := points[3].NAV; !got.Equal(usd(3_192_000)) {
		t.Errorf("points[3].NAV = %v, want 3,192,000", got)
	}
}

func TestProjectCapsCallsAtCommitment(t *testing.T) {
	inv := Investment{
		ID:               "nearly-drawn",
		Commitment:       usd(1_000_000),
		Called:           usd(995_000),
		Vintage:          2024,
		InvestmentPeriod: 4,
		FundLife:         10,
		TargetMOIC:       F(2.5),
		Calls:            ScheduleSteady,
		Bow:              0.3,
	}

	points, err := Project(inv, Base, 15, NewDate(2024, time.June, 10))
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	// 8% of the 5,000 uncalled is 400 a month. Twelve full draws reach
	// 999,800; the thirteenth is clipped to 200 and later months call
	// nothing.
	for i := 0; i < 12; i++ {
		if !points[i].Calls.Equal(usd(400)) {
			t.Errorf("points[%d].Calls = %v, want 400", i, points[i].Calls)
		}
	}
	if !points[12].Calls.Equal(usd(200)) {
		t.Errorf("points[12].Calls = %v, want 200", points[12].Calls)
	}
	for i := 13; i < 15; i++ {
		if !points[i].Calls.IsZero() {
			t.Errorf("points[%d].Calls = %v, want zero", i, points[i].Calls)
		}
	}
	if got := points[14].CumulativeCalls; !got.Equal(usd(1_000_000)) {
		t.Errorf("final CumulativeCalls = %v, want exactly the 1,000,000 commitment", got)
	}
}

func TestProjectScenarioOrdering(t *testing.T) {
	inv := Investment{
		ID:               "harvesting",
		Commitment:       usd(10_000_000),
		Called:           usd(4_000_000),
		Vintage:          2022,
		InvestmentPeriod: 6,
		FundLife:         10,
		TargetMOIC:       F(2.0),
		Calls:            ScheduleSteady,
		Distributions:    TimingSteady,
		Bow:              0.3,
	}
	asOf := NewDate(2025, time.March, 20)

	runs := map[Scenario][]ForecastPoint{}
	for _, sc := range []Scenario{Bear, Base, Bull} {
		points, err := Project(inv, sc, 12, asOf)
		if err != nil {
			t.Fatalf("Project(%v) error = %v", sc, err)
		}
		runs[sc] = points
	}

	// First month, elapsed 38 of a 120 month life: cumulative calls reach
	// 4,480,000 and the steady rate 0.05 applies to the distributable
	// base of calls * moic * 0.6. The scenario factor scales both the
	// moic and the rate:
	//   base: 4,480,000 * 2.0  * 0.6 * 0.05        = 268,800
	//   bull: 4,480,000 * 2.3  * 0.6 * 0.05 * 1.15 = 355,488
	//   bear: 4,480,000 * 1.7  * 0.6 * 0.05 * 0.85 = 194,208
	if got := runs[Base][0].Distributions; !got.Equal(usd(268_800)) {
		t.Errorf("base first distribution = %v, want 268,800", got)
	}
	if got := runs[Bull][0].Distributions; !got.Equal(usd(355_488)) {
		t.Errorf("bull first distribution = %v, want 355,488", got)
	}
	if got := runs[Bear][0].Distributions; !got.Equal(usd(194_208)) {
		t.Errorf("bear first distribution = %v, want 194,208", got)
	}

	for i := range runs[Base] {
		// Scenarios shift return expectations, never the obligation to
		// fund calls.
		if !runs[Bull][i].Calls.Equal(runs[Base][i].Calls) || !runs[Bear][i].Calls.Equal(runs[Base][i].Calls) {
			t.Errorf("month %d: calls differ across scenarios: bear %v, base %v, bull %v",
				i, runs[Bear][i].Calls, runs[Base][i].Calls, runs[Bull][i].Calls)
		}
		if !runs[Bull][i].Calls.Equal(usd(480_000)) {
			t.Errorf("month %d: calls = %v, want 480,000", i, runs[Bull][i].Calls)
		}
		bull, base, bear := runs[Bull][i].CumulativeNet, runs[Base][i].CumulativeNet, runs[Bear][i].CumulativeNet
		if !bull.GreaterThanOrEqual(base) || !base.GreaterThanOrEqual(bear) {
			t.Errorf("month %d: cumulative net not ordered: bull %v, base %v, bear %v", i, bull, base, bear)
		}
	}
}

func TestProjectIsPure(t *testing.T) {
	inv := steadyFund()
	asOf := NewDate(2024, time.September, 1)

	first, err := Project(inv, Bull, 24, asOf)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	second, err := Project(inv, Bull, 24, asOf)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two identical projections differ")
	}
}

func TestProjectNotProjectable(t *testing.T) {
	inv := steadyFund()
	inv.InvestmentPeriod = 0

	_, err := Project(inv, Base, 12, NewDate(2025, time.January, 1))
	if !errors.Is(err, ErrNotProjectable) {
		t.Errorf("Project() error = %v, want ErrNotProjectable", err)
	}
}

func TestProjectInvalidScenario(t *testing.T) {
	_, err := Project(steadyFund(), Scenario("wild"), 12, NewDate(2025, time.January, 1))
	if !errors.Is(err, ErrInvalidScenario) {
		t.Errorf("Project() error = %v, want ErrInvalidScenario", err)
	}
}

func TestProjectEmptyHorizon(t *testing.T) {
	for _, horizon := range []int{0, -3} {
		points, err := Project(steadyFund(), Base, horizon, NewDate(2025, time.January, 1))
		if err != nil {
			t.Errorf("Project(horizon %d) error = %v", horizon, err)
		}
		if points != nil {
			t.Errorf("Project(horizon %d) = %v, want nil", horizon, points)
		}
	}
}

func TestProjectBeforeVintage(t *testing.T) {
	inv := Investment{
		ID:               "committed-not-started",
		Commitment:       usd(5_000_000),
		Called:           usd(0),
		Vintage:          2030,
		InvestmentPeriod: 4,
		FundLife:         10,
		TargetMOIC:       F(2.5),
		Calls:            ScheduleFrontLoaded,
		Bow:              0.3,
	}

	points, err := Project(inv, Base, 3, NewDate(2025, time.June, 15))
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("Project() returned %d points, want 3", len(points))
	}
	for i, pt := range points {
		if !pt.Calls.IsZero() || !pt.Distributions.IsZero() || !pt.NAV.IsZero() {
			t.Errorf("points[%d] = calls %v, dist %v, nav %v before vintage, want all zero",
				i, pt.Calls, pt.Distributions, pt.NAV)
		}
	}
}

func TestJCurveNAV(t *testing.T) {
	cases := []struct {
		name     string
		cumCalls Money
		cumDist  Money
		elapsed  int
		want     Money
	}{
		// dip = 48/3 = 16 months; floor = calls * 0.7; target = calls * 2 - dist
		{"held at the floor early", usd(1_000_000), usd(0), 10, usd(700_000)},
		{"floor holds at the dip boundary", usd(1_000_000), usd(0), 16, usd(700_000)},
		{"halfway recovered", usd(1_000_000), usd(0), 68, usd(1_350_000)}, // 700,000 + 1,300,000 * 52/104
		{"fully recovered at end of life", usd(1_000_000), usd(0), 120, usd(2_000_000)},
		{"held at target past end of life", usd(1_000_000), usd(0), 130, usd(2_000_000)},
		{"distributions deplete the target", usd(1_000_000), usd(2_500_000), 120, usd(0)},
		{"depleted target pulls recovery down", usd(1_000_000), usd(2_500_000), 68, usd(350_000)},
	}
	for _, c := range cases {
		got := jcurveNAV(c.cumCalls, c.cumDist, F(2), 0.3, c.elapsed, 48, 120)
		if !got.Equal(c.want) {
			t.Errorf("%s: jcurveNAV(elapsed %d) = %v, want %v", c.name, c.elapsed, got, c.want)
		}
	}
}
