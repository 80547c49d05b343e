package pacing

import (
	"fmt"
	"iter"
)

// Snapshot represents a view of the pacing book at a single point in time.
// It is a stateless calculator that computes all values on-the-fly by
// processing ledger transactions up to its 'on' date.
//
// A Snapshot is also the ledger-backed implementation of the engine's
// three sources: it serves investments, actual cash flows and manual
// forecasts, so a Forecaster can run straight off a book.
type Snapshot struct {
	ledger *Ledger
	on     Date
}

// NewSnapshot creates a snapshot of the ledger on the given date.
func NewSnapshot(ledger *Ledger, on Date) *Snapshot {
	return &Snapshot{ledger: ledger, on: on}
}

// On returns the date of the snapshot.
func (s *Snapshot) On() Date {
	return s.on
}

// Forecaster returns a forecaster reading all three sources from this snapshot.
func (s *Snapshot) Forecaster() *Forecaster {
	return &Forecaster{Investments: s, Actuals: s, Manual: s}
}

// --- private calculation helpers ---

// transactions returns an iterator over ledger transactions up to the snapshot's date.
func (s *Snapshot) transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range s.ledger.transactions {
			if tx.When().After(s.on) {
				break
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// sum iterates over a sequence of investment ids, applies a metric function
// to each and returns the total.
func (s *Snapshot) sum(iterator iter.Seq[string], metricFunc func(string) Money) Money {
	var total Money
	for key := range iterator {
		total = total.Add(metricFunc(key))
	}
	return total
}

// flowSum totals the flows of one investment accepted by the given predicate.
func (s *Snapshot) flowSum(id string, accept func(FlowType) bool) Money {
	var total Money
	for tx := range s.transactions() {
		if v, ok := tx.(Flow); ok && v.Investment == id && accept(v.FlowType()) {
			total = total.Add(v.Amount)
		}
	}
	return total
}

// --- public calculation helpers ---

// Commitment returns the declared commitment of the investment.
func (s *Snapshot) Commitment(id string) Money {
	if d := s.ledger.Declaration(id); d != nil {
		return d.Commitment
	}
	return Money{}
}

// Called calculates the capital drawn against the commitment on the
// snapshot's date: capital calls plus out-of-schedule contributions.
// Fees are excluded; they are paid-in capital but draw no commitment.
func (s *Snapshot) Called(id string) Money {
	return s.flowSum(id, FlowType.DrawsCommitment)
}

// Fees calculates the management fees paid since inception.
func (s *Snapshot) Fees(id string) Money {
	return s.flowSum(id, func(t FlowType) bool { return t == Fees })
}

// PaidIn calculates the total cash sent to the investment since inception:
// called capital plus fees.
func (s *Snapshot) PaidIn(id string) Money {
	return s.flowSum(id, func(t FlowType) bool { return !t.IsInflow() })
}

// Distributed calculates the total cash received back from the investment
// since inception: distributions, yield and returned principal.
func (s *Snapshot) Distributed(id string) Money {
	return s.flowSum(id, FlowType.IsInflow)
}

// Uncalled returns the commitment not yet drawn, clamped at zero. A fund
// that recalled distributed capital can be over-drawn; the unfunded
// balance never goes negative.
func (s *Snapshot) Uncalled(id string) Money {
	u := s.Commitment(id).Sub(s.Called(id))
	if u.IsNegative() {
		return M(0, s.Commitment(id).Currency())
	}
	return u
}

// NetCashFlow calculates the investment's lifetime net cash position:
// distributions received minus capital paid in. Negative while the
// position is in its J-curve.
func (s *Snapshot) NetCashFlow(id string) Money {
	return s.Distributed(id).Sub(s.PaidIn(id))
}

// NAVHistory collects the NAV observations recorded for the investment up
// to the snapshot's date, in chronological order.
func (s *Snapshot) NAVHistory(id string) *History[Money] {
	h := &History[Money]{}
	for tx := range s.transactions() {
		if v, ok := tx.(Value); ok && v.Investment == id {
			h.Append(v.When(), v.Amount)
		}
	}
	return h
}

// NAV returns the most recent NAV observation on or before the snapshot's
// date, and whether one exists. An investment with no statement yet has no
// NAV, which is absence of data, not zero value.
func (s *Snapshot) NAV(id string) (Money, bool) {
	return s.NAVHistory(id).ValueAsOf(s.on)
}

// InceptionDate returns the date of the first recorded cash movement for
// the investment, if it falls on or before the snapshot's date.
func (s *Snapshot) InceptionDate(id string) (Date, bool) {
	d, ok := s.ledger.InceptionDate(id)
	if !ok || d.After(s.on) {
		return Date{}, false
	}
	return d, true
}

// LastValuationDate returns the date of the NAV observation the snapshot's
// NAV is carried from.
func (s *Snapshot) LastValuationDate(id string) (Date, bool) {
	return s.ledger.LastValuationDate(id, s.on)
}

// DPI is the distributed-to-paid-in multiple: realized return per unit of
// cash invested.
func (s *Snapshot) DPI(id string) Factor {
	paidIn := s.PaidIn(id)
	if paidIn.IsZero() {
		return Factor{}
	}
	return s.Distributed(id).Over(paidIn)
}

// RVPI is the residual-value-to-paid-in multiple: unrealized value still in
// the fund per unit of cash invested.
func (s *Snapshot) RVPI(id string) Factor {
	paidIn := s.PaidIn(id)
	if paidIn.IsZero() {
		return Factor{}
	}
	nav, ok := s.NAV(id)
	if !ok {
		return Factor{}
	}
	return nav.Over(paidIn)
}

// TVPI is the total-value-to-paid-in multiple: DPI plus RVPI.
func (s *Snapshot) TVPI(id string) Factor {
	paidIn := s.PaidIn(id)
	if paidIn.IsZero() {
		return Factor{}
	}
	nav, _ := s.NAV(id)
	return s.Distributed(id).Add(nav).Over(paidIn)
}

// FundAge returns the age of the fund in years on the snapshot's date,
// measured from January 1st of the vintage year.
func (s *Snapshot) FundAge(id string) float64 {
	d := s.ledger.Declaration(id)
	if d == nil {
		return 0
	}
	months := s.on.MonthsSince(NewDate(d.Vintage, 1, 1))
	return float64(months) / 12
}

// InvestmentIDs returns an iterator over all investments declared up to the
// snapshot's date. The order is based on the date of their declaration.
func (s *Snapshot) InvestmentIDs() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for tx := range s.transactions() {
			if v, ok := tx.(Declare); ok {
				if _, exists := seen[v.ID]; !exists {
					seen[v.ID] = struct{}{}
					if !yield(v.ID) {
						return
					}
				}
			}
		}
	}
}

// --- portfolio totals ---

// TotalCommitment returns the total declared commitment across investments.
func (s *Snapshot) TotalCommitment() Money {
	return s.sum(s.InvestmentIDs(), s.Commitment)
}

// TotalCalled returns the total capital drawn across investments.
func (s *Snapshot) TotalCalled() Money {
	return s.sum(s.InvestmentIDs(), s.Called)
}

// TotalUncalled returns the total unfunded commitment across investments.
func (s *Snapshot) TotalUncalled() Money {
	return s.sum(s.InvestmentIDs(), s.Uncalled)
}

// TotalPaidIn returns the total cash sent across investments.
func (s *Snapshot) TotalPaidIn() Money {
	return s.sum(s.InvestmentIDs(), s.PaidIn)
}

// TotalDistributed returns the total cash received across investments.
func (s *Snapshot) TotalDistributed() Money {
	return s.sum(s.InvestmentIDs(), s.Distributed)
}

// TotalNAV returns the total of the latest NAV observations across
// investments. Investments without an observation contribute nothing.
func (s *Snapshot) TotalNAV() Money {
	return s.sum(s.InvestmentIDs(), func(id string) Money {
		nav, _ := s.NAV(id)
		return nav
	})
}

// TotalNetCashFlow returns the portfolio's lifetime net cash position.
func (s *Snapshot) TotalNetCashFlow() Money {
	return s.sum(s.InvestmentIDs(), s.NetCashFlow)
}

// --- engine sources ---

// Investment assembles the engine's view of one investment on the
// snapshot's date: the declared pacing parameters plus the capital drawn
// so far.
func (s *Snapshot) Investment(id string) (Investment, error) {
	d := s.ledger.Declaration(id)
	if d == nil || d.When().After(s.on) {
		return Investment{}, fmt.Errorf("%w: %q", ErrUnknownInvestment, id)
	}
	return Investment{
		ID:         d.ID,
		Name:       d.Name,
		Commitment: d.Commitment,
		Called:     s.Called(id),
		Vintage:    d.Vintage,

		InvestmentPeriod: d.Period,
		FundLife:         d.Life,

		TargetIRR:     d.TargetIRR,
		TargetMOIC:    d.TargetMOIC,
		Calls:         d.Calls,
		Distributions: d.Distributions,
		Bow:           d.Bow,
	}, nil
}

// Investments assembles the engine's view of every investment declared up
// to the snapshot's date.
func (s *Snapshot) Investments() []Investment {
	var investments []Investment
	for id := range s.InvestmentIDs() {
		inv, err := s.Investment(id)
		if err != nil {
			continue
		}
		investments = append(investments, inv)
	}
	return investments
}

// CashFlows returns the actual cash movements of one investment within the
// range, capped at the snapshot's date. A flow dated after the snapshot has
// not settled from this book's point of view; record it as an expectation
// until it does.
func (s *Snapshot) CashFlows(id string, r Range) []CashFlowTransaction {
	var flows []CashFlowTransaction
	for tx := range s.transactions() {
		v, ok := tx.(Flow)
		if !ok || v.Investment != id || !r.Contains(v.When()) {
			continue
		}
		flows = append(flows, CashFlowTransaction{
			Investment: v.Investment,
			Date:       v.When(),
			Type:       v.FlowType(),
			Amount:     v.Amount,
		})
	}
	return flows
}

// ManualForecasts returns the expectations recorded for one investment
// within the range. Unlike actual flows they are not capped at the
// snapshot's date: an expectation is knowledge about a future month, and
// the forecast blender decides what to do with the stale ones.
func (s *Snapshot) ManualForecasts(id string, r Range) []ForecastTransaction {
	var rows []ForecastTransaction
	for _, tx := range s.ledger.transactions {
		v, ok := tx.(Expect)
		if !ok || v.Investment != id || !r.Contains(v.When()) {
			continue
		}
		rows = append(rows, ForecastTransaction{
			Investment: v.Investment,
			Date:       v.When(),
			Type:       v.Type,
			Amount:     v.Amount,
			Source:     SourceManual,
		})
	}
	return rows
}
