package pacing

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"
)

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in chronological order.
type Ledger struct {
	name         string
	transactions []Transaction
	declarations map[string]Declare // index investment declarations by id
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		declarations: make(map[string]Declare),
	}
}

// Name returns the ledger's name, usually derived from its file path.
func (l *Ledger) Name() string { return l.name }

// SetName sets the ledger's name.
func (l *Ledger) SetName(name string) { l.name = name }

// Declaration returns the investment declared with this id, or nil if unknown.
func (l *Ledger) Declaration(id string) *Declare {
	d, ok := l.declarations[id]
	if !ok {
		return nil
	}
	return &d
}

// Validate checks a transaction for correctness and applies quick fixes where
// applicable (e.g., filling the commitment currency or the pacing defaults).
// It returns the validated (and potentially modified) transaction or an error
// detailing the validation failure.
func (l *Ledger) Validate(tx Transaction) (Transaction, error) {
	ntx, err := tx.Validate(l)
	if err != nil {
		return ntx, fmt.Errorf("invalid %s transaction on %v: %w", tx.What(), tx.When(), err)
	}
	return ntx, nil
}

// Append appends transactions to this ledger and maintains the chronological order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	// process investment declarations.
	l.processTx(txs...)
	l.stableSort() // Ensure the ledger remains sorted after appending
}

// AppendOrUpdate adds a transaction to the ledger. If the transaction restates
// an existing entry (a Value for the same investment on the same day, or an
// Expect for the same investment, day and flow type) it replaces the old
// entry. Otherwise, it appends the new transaction.
//
// This is the replay path: the ledger file is append-only, so a correction
// is just a later line, and replaying through AppendOrUpdate keeps only the
// latest line of each restated slot.
func (l *Ledger) AppendOrUpdate(txs ...Transaction) {
	for _, tx := range txs {
		var replaced bool
		switch newTx := tx.(type) {
		case Value:
			for i, existingTx := range l.transactions {
				if oldTx, ok := existingTx.(Value); ok &&
					oldTx.When() == newTx.When() &&
					oldTx.Investment == newTx.Investment {
					if !oldTx.Amount.Equal(newTx.Amount) {
						l.transactions[i] = newTx // Update in place.
					}
					replaced = true
					break
				}
			}
		case Expect:
			for i, existingTx := range l.transactions {
				if oldTx, ok := existingTx.(Expect); ok &&
					oldTx.When() == newTx.When() &&
					oldTx.Investment == newTx.Investment &&
					oldTx.Type == newTx.Type {
					if !oldTx.Amount.Equal(newTx.Amount) {
						l.transactions[i] = newTx // Update in place.
					}
					replaced = true
					break
				}
			}
		}

		if !replaced {
			// If no existing transaction was found and replaced, append the new one.
			l.Append(tx)
		}
	}
}

func (l *Ledger) processTx(txs ...Transaction) {
	for _, tx := range txs {
		if v, ok := tx.(Declare); ok {
			l.declarations[v.ID] = v
		}
	}
}

// Transactions returns an iterator that yields each transaction in its
// chronological order. With no filter every transaction is yielded; with
// filters a transaction is yielded when any of them accepts it.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := len(filters) == 0
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// OldestTransactionDate returns the date of the earliest transaction in the ledger.
// It returns the zero date if the ledger has no transactions.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction in the ledger.
// It returns the zero date if the ledger has no transactions.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}

// InvestmentTransactions returns an iterator over transactions related to a
// specific investment up to and including a given date.
// The ledger must be sorted by date for this to work correctly.
func (l *Ledger) InvestmentTransactions(id string, max Date) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if tx.When().After(max) {
				// The ledger is sorted by date, so it's safe to return.
				return
			}
			if !ByInvestment(id)(tx) {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// AllDeclarations iterates over investments declared in this ledger, in id order.
func (l *Ledger) AllDeclarations() iter.Seq[Declare] {
	return func(yield func(Declare) bool) {
		ids := slices.Collect(maps.Keys(l.declarations))
		slices.Sort(ids)
		for _, id := range ids {
			if !yield(l.declarations[id]) {
				return
			}
		}
	}
}

// AllCurrencies iterates over all currencies that appear in the ledger's
// declarations, in sorted order.
func (l *Ledger) AllCurrencies() iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[string]struct{})
		for _, d := range l.declarations {
			visited[d.Currency()] = struct{}{}
		}
		currencies := slices.Collect(maps.Keys(visited))
		slices.Sort(currencies)
		for _, currency := range currencies {
			if !yield(currency) {
				return
			}
		}
	}
}

// ByInvestment returns a predicate that filters transactions by investment id.
func ByInvestment(id string) func(Transaction) bool {
	return func(tx Transaction) bool {
		switch v := tx.(type) {
		case Declare:
			return v.ID == id
		case Flow:
			return v.Investment == id
		case Expect:
			return v.Investment == id
		case Value:
			return v.Investment == id
		default:
			return false
		}
	}
}

// ByCommand returns a predicate that filters transactions by command type.
func ByCommand(cmds ...CommandType) func(Transaction) bool {
	return func(tx Transaction) bool {
		return slices.Contains(cmds, tx.What())
	}
}

// InceptionDate scans the ledger and returns the date of the first actual
// cash movement for the given investment.
func (l *Ledger) InceptionDate(id string) (Date, bool) {
	for _, tx := range l.transactions {
		if v, ok := tx.(Flow); ok && v.Investment == id {
			return v.When(), true
		}
	}
	return Date{}, false
}

// LastValuationDate scans the ledger in reverse and returns the date of the
// most recent NAV observation for the given investment on or before max.
// The boolean will be true if a date was found, otherwise false.
func (l *Ledger) LastValuationDate(id string, max Date) (Date, bool) {
	// Iterate backwards for efficiency, as we want the most recent date.
	for i := len(l.transactions) - 1; i >= 0; i-- {
		if l.transactions[i].When().After(max) {
			continue
		}
		if v, ok := l.transactions[i].(Value); ok && v.Investment == id {
			return v.When(), true
		}
	}
	return Date{}, false
}

// Fmt validates every transaction in chronological order, applying quick
// fixes, and returns a fresh canonical ledger with the validated entries.
// Restated valuations and expectations collapse to their latest line.
// A flow dated before its investment's declaration fails here: the
// commitment must exist before money can move against it.
func (l *Ledger) Fmt() (*Ledger, error) {
	formatted := NewLedger()
	formatted.name = l.name

	l.stableSort()
	for _, tx := range l.transactions {
		ntx, err := formatted.Validate(tx)
		if err != nil {
			return nil, err
		}
		formatted.AppendOrUpdate(ntx)
	}
	return formatted, nil
}
