package pacing

// NewSnapshot returns a snapshot of this ledger on the given date.
func (l *Ledger) NewSnapshot(on Date) *Snapshot {
	return NewSnapshot(l, on)
}

// NewReview returns a review of this ledger over the given period.
func (l *Ledger) NewReview(period Range) *Review {
	return &Review{
		start: NewSnapshot(l, period.From.Add(-1)),
		end:   NewSnapshot(l, period.To),
	}
}

// Review represents an analysis of the pacing book over a specific period
// (Range). It calculates period-based metrics by comparing two Snapshots:
// one at the start of the period and one at the end.
type Review struct {
	start *Snapshot // Snapshot at period.From - 1 day
	end   *Snapshot // Snapshot at period.To
}

// Start returns the snapshot at the beginning of the review period (taken on `period.From - 1`).
func (r *Review) Start() *Snapshot {
	return r.start
}

// End returns the snapshot at the end of the review period (taken on `period.To`).
func (r *Review) End() *Snapshot {
	return r.end
}

// Range returns the period range of the review.
func (r *Review) Range() Range {
	return NewRange(r.start.On().Add(1), r.end.On())
}

// Called calculates the capital drawn across the portfolio during the period.
func (r *Review) Called() Money {
	return r.end.TotalCalled().Sub(r.start.TotalCalled())
}

// PaidIn calculates the total cash sent to investments during the period.
func (r *Review) PaidIn() Money {
	return r.end.TotalPaidIn().Sub(r.start.TotalPaidIn())
}

// Distributed calculates the total cash received back during the period.
func (r *Review) Distributed() Money {
	return r.end.TotalDistributed().Sub(r.start.TotalDistributed())
}

// NetCashFlow calculates the portfolio's net cash movement during the
// period: distributions received minus capital paid in.
func (r *Review) NetCashFlow() Money {
	return r.Distributed().Sub(r.PaidIn())
}

// NAVChange calculates the change in reported portfolio value during the
// period. Investments without an observation on a boundary contribute
// nothing on that side.
func (r *Review) NAVChange() Money {
	return r.end.TotalNAV().Sub(r.start.TotalNAV())
}

// CommitmentChange calculates new commitments declared during the period.
func (r *Review) CommitmentChange() Money {
	return r.end.TotalCommitment().Sub(r.start.TotalCommitment())
}

// InvestmentCalled calculates the capital drawn by one investment during the period.
func (r *Review) InvestmentCalled(id string) Money {
	return r.end.Called(id).Sub(r.start.Called(id))
}

// InvestmentPaidIn calculates the cash sent to one investment during the period.
func (r *Review) InvestmentPaidIn(id string) Money {
	return r.end.PaidIn(id).Sub(r.start.PaidIn(id))
}

// InvestmentDistributed calculates the cash received from one investment during the period.
func (r *Review) InvestmentDistributed(id string) Money {
	return r.end.Distributed(id).Sub(r.start.Distributed(id))
}

// InvestmentNetCashFlow calculates one investment's net cash movement during the period.
func (r *Review) InvestmentNetCashFlow(id string) Money {
	return r.InvestmentDistributed(id).Sub(r.InvestmentPaidIn(id))
}

// InvestmentNAVChange calculates the change in one investment's reported
// value during the period.
func (r *Review) InvestmentNAVChange(id string) Money {
	endNAV, _ := r.end.NAV(id)
	startNAV, _ := r.start.NAV(id)
	return endNAV.Sub(startNAV)
}

// Transactions returns a slice of all transactions that occurred within the review period.
func (r *Review) Transactions() []Transaction {
	var periodTxs []Transaction
	periodRange := r.Range()
	for _, tx := range r.end.ledger.transactions {
		if periodRange.Contains(tx.When()) {
			periodTxs = append(periodTxs, tx)
		}
	}
	return periodTxs
}
