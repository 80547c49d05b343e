package pacing

import "errors"

// Sentinel errors of the engine. Callers discriminate with errors.Is; every
// wrapping site includes the offending investment id or input value.
var (
	// ErrNotProjectable marks an investment whose pacing parameters cannot
	// drive a projection (investment period or fund life not positive).
	// Portfolio-level operations skip such investments and report them in
	// the result; they never abort the batch.
	ErrNotProjectable = errors.New("not projectable")

	// ErrInvalidScenario rejects an unrecognized scenario tag. The scenario
	// is caller-supplied, so there is nothing to recover internally.
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrUnknownInvestment rejects an operation naming an investment the
	// source has never seen.
	ErrUnknownInvestment = errors.New("unknown investment")
)

// An absence of data is not an error: requesting a calendar over a range
// with no flows returns a complete calendar of zero-activity days.
