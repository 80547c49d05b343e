package pacing

import (
	"fmt"
	"strings"
)

// Scenario names one of the three fixed projection cases. There is no
// sampled distribution of outcomes: Bull and Bear are deterministic
// scalings of the Base parameters.
type Scenario string

const (
	Bull Scenario = "bull"
	Base Scenario = "base"
	Bear Scenario = "bear"
)

// Factor returns the scenario's scaling applied to the target MOIC and the
// distribution rate. Calls are left untouched so that cumulative net cash
// flow is never worse in Bull than in Base, nor in Base than in Bear, at
// any month of a projection.
func (s Scenario) Factor() Factor {
	switch s {
	case Bull:
		return F(1.15)
	case Bear:
		return F(0.85)
	default:
		return F(1)
	}
}

func (s Scenario) String() string { return string(s) }

// ParseScenario validates a caller-supplied scenario tag. The empty string
// defaults to Base; anything else unknown is an ErrInvalidScenario.
func ParseScenario(s string) (Scenario, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bull":
		return Bull, nil
	case "base", "":
		return Base, nil
	case "bear":
		return Bear, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidScenario, s)
	}
}
