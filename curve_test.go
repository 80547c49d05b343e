package pacing

import "testing"

func TestParseCallSchedule(t *testing.T) {
	cases := []struct {
		in      string
		want    CallSchedule
		wantErr bool
	}{
		{"front-loaded", ScheduleFrontLoaded, false},
		{"frontloaded", ScheduleFrontLoaded, false},
		{"Front", ScheduleFrontLoaded, false},
		{"steady", ScheduleSteady, false},
		{"", ScheduleSteady, false},
		{"back-loaded", ScheduleBackLoaded, false},
		{" backloaded ", ScheduleBackLoaded, false},
		{"bullet", ScheduleSteady, true},
	}
	for _, c := range cases {
		got, err := ParseCallSchedule(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseCallSchedule(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("ParseCallSchedule(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseDistributionTiming(t *testing.T) {
	cases := []struct {
		in      string
		want    DistributionTiming
		wantErr bool
	}{
		{"early", TimingEarly, false},
		{"Steady", TimingSteady, false},
		{"backend", TimingBackend, false},
		{"back-end", TimingBackend, false},
		{"", "", false}, // unspecified timing is legal
		{"bullet", "", true},
	}
	for _, c := range cases {
		got, err := ParseDistributionTiming(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseDistributionTiming(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDistributionTiming(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCallRate(t *testing.T) {
	cases := []struct {
		name     string
		schedule CallSchedule
		progress float64
		want     float64
	}{
		{"front-loaded peaks at vintage", ScheduleFrontLoaded, 0, 0.15},
		{"front-loaded decays by half mid-period", ScheduleFrontLoaded, 0.5, 0.075},
		{"front-loaded reaches zero at period end", ScheduleFrontLoaded, 1, 0},
		{"steady at vintage", ScheduleSteady, 0, 0.08},
		{"steady mid-period", ScheduleSteady, 0.5, 0.08},
		{"steady at period end", ScheduleSteady, 1, 0.08},
		{"back-loaded starts at zero", ScheduleBackLoaded, 0, 0},
		{"back-loaded mid-period", ScheduleBackLoaded, 0.5, 0.06},
		{"back-loaded peaks at period end", ScheduleBackLoaded, 1, 0.12},
		{"before the investment period", ScheduleSteady, -0.01, 0},
		{"past the investment period", ScheduleSteady, 1.01, 0},
		{"unknown schedule", CallSchedule("bullet"), 0.5, 0},
	}
	for _, c := range cases {
		if got := CallRate(c.schedule, c.progress); got != c.want {
			t.Errorf("%s: CallRate(%q, %v) = %v, want %v", c.name, c.schedule, c.progress, got, c.want)
		}
	}
}

func TestDistributionRate(t *testing.T) {
	cases := []struct {
		name     string
		timing   DistributionTiming
		ageYears float64
		progress float64
		want     float64
	}{
		{"no fund distributes before age two", TimingEarly, 1.9, 0.5, 0},
		{"age gate opens at exactly two years", TimingEarly, 2, 0.5, 0.05},
		{"early timing ramps with progress", TimingEarly, 3, 0.5, 0.05},
		{"early timing at end of life", TimingEarly, 12, 1, 0.10},
		{"steady timing before the knee", TimingSteady, 4, 0.3, 0},
		{"steady timing after the knee", TimingSteady, 4, 0.35, 0.05},
		{"backend timing before the ramp", TimingBackend, 8, 0.6, 0},
		{"backend timing on the ramp", TimingBackend, 9, 0.8, 0.12},
		{"default curve before the knee", "", 4, 0.4, 0},
		{"default curve after the knee", "", 5, 0.5, 0.06},
		{"unknown timing falls back to the default curve", DistributionTiming("bullet"), 5, 0.5, 0.06},
		{"past end of life", TimingSteady, 11, 1.01, 0},
		{"negative progress", TimingSteady, 3, -0.01, 0},
	}
	for _, c := range cases {
		if got := DistributionRate(c.timing, c.ageYears, c.progress); got != c.want {
			t.Errorf("%s: DistributionRate(%q, %v, %v) = %v, want %v", c.name, c.timing, c.ageYears, c.progress, got, c.want)
		}
	}
}
