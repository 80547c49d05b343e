package pacing

import (
	"fmt"
	"strings"
)

// CallSchedule is the deployment shape of an investment: how fast committed
// capital is expected to be called over the investment period.
type CallSchedule string

const (
	ScheduleFrontLoaded CallSchedule = "front-loaded"
	ScheduleSteady      CallSchedule = "steady"
	ScheduleBackLoaded  CallSchedule = "back-loaded"
)

func ParseCallSchedule(s string) (CallSchedule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front-loaded", "frontloaded", "front":
		return ScheduleFrontLoaded, nil
	case "steady", "":
		return ScheduleSteady, nil
	case "back-loaded", "backloaded", "back":
		return ScheduleBackLoaded, nil
	default:
		return ScheduleSteady, fmt.Errorf("unknown call schedule %q", s)
	}
}

// DistributionTiming is the return shape of an investment: when fund
// proceeds are expected to come back over the fund life.
type DistributionTiming string

const (
	TimingEarly   DistributionTiming = "early"
	TimingSteady  DistributionTiming = "steady"
	TimingBackend DistributionTiming = "backend"
)

func ParseDistributionTiming(s string) (DistributionTiming, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "early":
		return TimingEarly, nil
	case "steady":
		return TimingSteady, nil
	case "backend", "back-end":
		return TimingBackend, nil
	case "":
		// unspecified timing is legal, served by the default curve
		return "", nil
	default:
		return "", fmt.Errorf("unknown distribution timing %q", s)
	}
}

// The pacing curves are parametric heuristics with fixed constants, not
// models fitted to historical vintage data. Calibrated curves can replace
// them behind the same rate(shape, progress) contract without touching the
// rest of the engine.

// callRates maps each schedule to its per-month deployment rate over the
// normalized investment-period progress in [0,1].
var callRates = map[CallSchedule]func(p float64) float64{
	ScheduleFrontLoaded: func(p float64) float64 { return max(0, (1-p)*0.15) }, // peaks at vintage, decays linearly
	ScheduleSteady:      func(p float64) float64 { return 0.08 },
	ScheduleBackLoaded:  func(p float64) float64 { return p * 0.12 }, // rises toward the end of the period
}

// distributionRates maps each timing to its per-month return rate over the
// normalized fund-life progress in [0,1].
var distributionRates = map[DistributionTiming]func(p float64) float64{
	TimingEarly: func(p float64) float64 { return max(0, p*0.10) },
	TimingSteady: func(p float64) float64 {
		if p > 0.3 {
			return 0.05
		}
		return 0
	},
	TimingBackend: func(p float64) float64 {
		if p > 0.6 {
			return p * 0.15
		}
		return 0
	},
}

// defaultDistributionRate serves investments with no declared timing.
func defaultDistributionRate(p float64) float64 {
	if p > 0.4 {
		return 0.06
	}
	return 0
}

// CallRate returns the fraction of uncalled capital expected to be called
// in one month, at the given progress through the investment period.
// Outside the investment period the rate is zero.
func CallRate(s CallSchedule, progress float64) float64 {
	if progress < 0 || progress > 1 {
		return 0
	}
	fn, ok := callRates[s]
	if !ok {
		return 0
	}
	return fn(progress)
}

// DistributionRate returns the fraction of the distributable base expected
// to be returned in one month, at the given fund age (years) and progress
// through the fund life. Funds distribute nothing before age 2 whatever
// their declared timing, and nothing past the end of fund life.
func DistributionRate(t DistributionTiming, ageYears, progress float64) float64 {
	if ageYears < 2 || progress < 0 || progress > 1 {
		return 0
	}
	fn, ok := distributionRates[t]
	if !ok {
		fn = defaultDistributionRate
	}
	return fn(progress)
}
