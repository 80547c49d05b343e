package pacing

import "fmt"

// FlowType classifies a cash movement between the family office and an
// investment. Amounts are always stored as positive magnitudes; the
// direction of the money is derived from the type, never from the sign.
type FlowType string

const (
	// Outflows: cash leaves the office.
	CapitalCall  FlowType = "capital-call"
	Contribution FlowType = "contribution"
	Fees         FlowType = "fees"

	// Inflows: cash comes back.
	Distribution      FlowType = "distribution"
	Yield             FlowType = "yield"
	ReturnOfPrincipal FlowType = "return-of-principal"
)

// IsInflow reports whether cash flows toward the office.
func (t FlowType) IsInflow() bool {
	switch t {
	case Distribution, Yield, ReturnOfPrincipal:
		return true
	}
	return false
}

// Sign is +1 for inflows and -1 for outflows.
func (t FlowType) Sign() int {
	if t.IsInflow() {
		return 1
	}
	return -1
}

// DrawsCommitment reports whether the flow draws down the investment's
// unfunded commitment. Fees are paid-in capital for multiples but do not
// reduce the commitment.
func (t FlowType) DrawsCommitment() bool {
	return t == CapitalCall || t == Contribution
}

func ParseFlowType(s string) (FlowType, error) {
	switch FlowType(s) {
	case CapitalCall, Contribution, Fees, Distribution, Yield, ReturnOfPrincipal:
		return FlowType(s), nil
	default:
		return "", fmt.Errorf("unknown flow type: %q", s)
	}
}

// CashFlowTransaction is one actual, already-settled cash movement. It is
// immutable input to the engine: actuals are history, never suppressed or
// rewritten by any forecast toggle.
type CashFlowTransaction struct {
	Investment string
	Date       Date
	Type       FlowType
	Amount     Money // positive magnitude
}

// Source tags where a unified-forecast row came from.
type Source string

const (
	SourceActual Source = "actual"
	SourceManual Source = "manual"
	SourceModel  Source = "pacing_model"
)

// rank orders rows of the same day deterministically: history first, then
// human forecasts, then model output.
func (s Source) rank() int {
	switch s {
	case SourceActual:
		return 0
	case SourceManual:
		return 1
	default:
		return 2
	}
}

// ForecastTransaction is one row of the unified cash-flow view: an actual,
// a manual forecast entry, or a synthetic pacing-model flow.
type ForecastTransaction struct {
	Investment string
	Date       Date
	Type       FlowType
	Amount     Money // positive magnitude
	Source     Source

	// Confidence is only meaningful on pacing_model rows; it decays with
	// distance into the future.
	Confidence Percent
}

// IsForecast reports whether the row is projected rather than settled.
func (t ForecastTransaction) IsForecast() bool { return t.Source != SourceActual }
