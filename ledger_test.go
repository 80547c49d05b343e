package pacing

import (
	"errors"
	"reflect"
	"testing"
)

func TestLedger_InvestmentTransactions(t *testing.T) {
	// 1. Arrange: a sorted ledger mixing two investments.
	tx1 := NewCall(MustParse("2025-01-10"), "", "pe-a", M(100_000, USD))
	tx2 := NewDistribute(MustParse("2025-01-15"), "", "pe-a", M(40_000, USD))
	tx3 := NewCall(MustParse("2025-01-15"), "", "re-b", M(75_000, USD))
	tx4 := NewValue(MustParse("2025-01-20"), "", "pe-a", M(500_000, USD))
	tx5 := NewExpect(MustParse("2025-01-22"), "", "re-b", CapitalCall, M(25_000, USD))

	ledger := &Ledger{
		transactions: []Transaction{tx1, tx2, tx3, tx4, tx5},
	}
	// The ledger is pre-sorted by date for this test.

	testCases := []struct {
		name    string
		id      string
		maxDate string
		wantTx  []Transaction
	}{
		{
			name:    "before any transactions",
			id:      "pe-a",
			maxDate: "2025-01-09",
			wantTx:  []Transaction{},
		},
		{
			name:    "on the day of the first call",
			id:      "pe-a",
			maxDate: "2025-01-10",
			wantTx:  []Transaction{tx1},
		},
		{
			name:    "between transactions",
			id:      "pe-a",
			maxDate: "2025-01-14",
			wantTx:  []Transaction{tx1},
		},
		{
			name:    "on the distribution day",
			id:      "pe-a",
			maxDate: "2025-01-15",
			wantTx:  []Transaction{tx1, tx2},
		},
		{
			name:    "everything for pe-a",
			id:      "pe-a",
			maxDate: "2025-02-01",
			wantTx:  []Transaction{tx1, tx2, tx4},
		},
		{
			name:    "re-b on its call day",
			id:      "re-b",
			maxDate: "2025-01-15",
			wantTx:  []Transaction{tx3},
		},
		{
			name:    "everything for re-b",
			id:      "re-b",
			maxDate: "2025-02-01",
			wantTx:  []Transaction{tx3, tx5},
		},
		{
			name:    "unknown investment",
			id:      "ghost",
			maxDate: "2025-02-01",
			wantTx:  []Transaction{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			max := MustParse(tc.maxDate)
			gotTx := []Transaction{}
			for _, tx := range ledger.InvestmentTransactions(tc.id, max) {
				gotTx = append(gotTx, tx)
			}

			if !reflect.DeepEqual(gotTx, tc.wantTx) {
				t.Errorf("InvestmentTransactions(%q, %s) got %v, want %v", tc.id, tc.maxDate, gotTx, tc.wantTx)
			}
		})
	}
}

func TestLedger_AppendKeepsChronologicalOrder(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewCall(MustParse("2025-03-10"), "", "pe-a", M(100_000, USD)),
		NewDeclare(MustParse("2022-06-30"), "", "pe-a", "", M(10_000_000, USD), 2022, 4, 10),
		NewValue(MustParse("2024-12-31"), "", "pe-a", M(900_000, USD)),
	)

	want := []string{"2022-06-30", "2024-12-31", "2025-03-10"}
	for i, tx := range ledger.Transactions() {
		if got := tx.When().String(); got != want[i] {
			t.Errorf("transactions[%d] dated %s, want %s", i, got, want[i])
		}
	}
}

func TestLedger_AppendOrUpdate(t *testing.T) {
	ledger := declaredLedger(t)

	// restating a valuation on the same day replaces it
	ledger.AppendOrUpdate(NewValue(MustParse("2025-03-31"), "", "pe-a", M(1_000_000, USD)))
	ledger.AppendOrUpdate(NewValue(MustParse("2025-03-31"), "", "pe-a", M(1_100_000, USD)))
	if got := len(ledger.transactions); got != 2 {
		t.Fatalf("ledger has %d transactions after a restated value, want 2", got)
	}
	for _, tx := range ledger.transactions {
		if v, ok := tx.(Value); ok && !v.Amount.Equal(M(1_100_000, USD)) {
			t.Errorf("stored value = %v, want the restated 1,100,000", v.Amount)
		}
	}

	// restating an expectation needs the same investment, day and type
	ledger.AppendOrUpdate(NewExpect(MustParse("2025-04-15"), "", "pe-a", Distribution, M(75_000, USD)))
	ledger.AppendOrUpdate(NewExpect(MustParse("2025-04-15"), "", "pe-a", Distribution, M(90_000, USD)))
	if got := len(ledger.transactions); got != 3 {
		t.Fatalf("ledger has %d transactions after a restated expectation, want 3", got)
	}
	ledger.AppendOrUpdate(NewExpect(MustParse("2025-04-15"), "", "pe-a", CapitalCall, M(30_000, USD)))
	if got := len(ledger.transactions); got != 4 {
		t.Fatalf("ledger has %d transactions after a different flow type, want 4", got)
	}

	// actual flows are never merged: a second identical call is a second call
	ledger.AppendOrUpdate(NewCall(MustParse("2025-05-02"), "", "pe-a", M(50_000, USD)))
	ledger.AppendOrUpdate(NewCall(MustParse("2025-05-02"), "", "pe-a", M(50_000, USD)))
	if got := len(ledger.transactions); got != 6 {
		t.Fatalf("ledger has %d transactions after two identical calls, want 6", got)
	}
}

func TestLedger_Declarations(t *testing.T) {
	ledger := declaredLedger(t)
	second, err := ledger.Validate(NewDeclare(MustParse("2023-01-15"), "", "aa-credit", "", M(2_000_000, USD), 2023, 3, 8))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	ledger.Append(second)

	if ledger.Declaration("pe-a") == nil {
		t.Errorf("Declaration(pe-a) = nil, want the declared investment")
	}
	if ledger.Declaration("ghost") != nil {
		t.Errorf("Declaration(ghost) is not nil")
	}

	var ids []string
	for d := range ledger.AllDeclarations() {
		ids = append(ids, d.ID)
	}
	if want := []string{"aa-credit", "pe-a"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("AllDeclarations() order = %v, want %v", ids, want)
	}

	var currencies []string
	for cur := range ledger.AllCurrencies() {
		currencies = append(currencies, cur)
	}
	if want := []string{USD}; !reflect.DeepEqual(currencies, want) {
		t.Errorf("AllCurrencies() = %v, want %v", currencies, want)
	}
}

func TestLedger_InceptionAndLastValuation(t *testing.T) {
	ledger := declaredLedger(t)

	if _, ok := ledger.InceptionDate("pe-a"); ok {
		t.Errorf("InceptionDate() found a date before any flow")
	}
	if _, ok := ledger.LastValuationDate("pe-a", MustParse("2025-12-31")); ok {
		t.Errorf("LastValuationDate() found a date before any value")
	}

	ledger.Append(
		NewCall(MustParse("2025-02-10"), "", "pe-a", M(100_000, USD)),
		NewYield(MustParse("2025-01-05"), "", "pe-a", M(1_000, USD)),
		NewValue(MustParse("2025-03-31"), "", "pe-a", M(500_000, USD)),
		NewValue(MustParse("2025-06-30"), "", "pe-a", M(550_000, USD)),
	)

	if got, ok := ledger.InceptionDate("pe-a"); !ok || got != MustParse("2025-01-05") {
		t.Errorf("InceptionDate() = %v, %v, want 2025-01-05", got, ok)
	}
	if got, ok := ledger.LastValuationDate("pe-a", MustParse("2025-12-31")); !ok || got != MustParse("2025-06-30") {
		t.Errorf("LastValuationDate() = %v, %v, want 2025-06-30", got, ok)
	}
	// capped at a date between the two statements, the earlier one wins
	if got, ok := ledger.LastValuationDate("pe-a", MustParse("2025-05-15")); !ok || got != MustParse("2025-03-31") {
		t.Errorf("LastValuationDate(capped) = %v, %v, want 2025-03-31", got, ok)
	}
	if _, ok := ledger.LastValuationDate("pe-a", MustParse("2025-01-01")); ok {
		t.Errorf("LastValuationDate() found a statement before the first one")
	}
}

func TestLedger_TransactionsFilters(t *testing.T) {
	ledger := declaredLedger(t)
	ledger.Append(
		NewCall(MustParse("2025-02-10"), "", "pe-a", M(100_000, USD)),
		NewCall(MustParse("2025-03-10"), "", "pe-a", M(100_000, USD)),
		NewValue(MustParse("2025-03-31"), "", "pe-a", M(500_000, USD)),
	)

	count := func(filters ...func(Transaction) bool) int {
		n := 0
		for range ledger.Transactions(filters...) {
			n++
		}
		return n
	}

	if got := count(); got != 4 {
		t.Errorf("no filter yields %d transactions, want all 4", got)
	}
	if got := count(ByCommand(CmdValue)); got != 1 {
		t.Errorf("ByCommand(value) yields %d, want 1", got)
	}
	// filters are a union: a transaction passes when any accepts it
	if got := count(ByCommand(CmdValue), ByCommand(CmdCall)); got != 3 {
		t.Errorf("ByCommand(value)+ByCommand(call) yields %d, want 3", got)
	}
	if got := count(ByInvestment("ghost")); got != 0 {
		t.Errorf("ByInvestment(ghost) yields %d, want 0", got)
	}
}

func TestLedger_Fmt(t *testing.T) {
	t.Run("flow before declaration", func(t *testing.T) {
		ledger := NewLedger()
		// appended unvalidated, the declaration dated after the call
		ledger.Append(
			NewCall(MustParse("2022-01-10"), "", "pe-a", M(100_000, USD)),
			NewDeclare(MustParse("2022-06-30"), "", "pe-a", "", M(10_000_000, USD), 2022, 4, 10),
		)
		if _, err := ledger.Fmt(); !errors.Is(err, ErrUnknownInvestment) {
			t.Errorf("Fmt() error = %v, want ErrUnknownInvestment", err)
		}
	})

	t.Run("canonicalizes quick fixes", func(t *testing.T) {
		ledger := NewLedger()
		ledger.SetName("household")
		ledger.Append(
			NewDeclare(MustParse("2022-06-30"), "", "pe-a", "", M(10_000_000, USD), 0, 4, 10),
			NewCall(MustParse("2025-02-10"), "", "pe-a", M(100_000, "")),
		)

		formatted, err := ledger.Fmt()
		if err != nil {
			t.Fatalf("Fmt() error = %v", err)
		}
		if formatted.Name() != "household" {
			t.Errorf("Name() = %q, want household", formatted.Name())
		}
		if got := len(formatted.transactions); got != 2 {
			t.Fatalf("formatted ledger has %d transactions, want 2", got)
		}

		d := formatted.Declaration("pe-a")
		if d == nil {
			t.Fatal("formatted ledger lost the declaration")
		}
		if d.Vintage != 2022 || !d.TargetMOIC.Equal(F(2.5)) || d.Calls != ScheduleSteady || d.Bow != 0.30 {
			t.Errorf("declaration not canonicalized: vintage %d, moic %v, calls %q, bow %v", d.Vintage, d.TargetMOIC, d.Calls, d.Bow)
		}
		for _, tx := range formatted.transactions {
			if f, ok := tx.(Flow); ok && f.Currency() != USD {
				t.Errorf("flow currency = %q, want USD filled in", f.Currency())
			}
		}
	})

	t.Run("collapses restatements", func(t *testing.T) {
		ledger := declaredLedger(t)
		ledger.Append(
			NewExpect(MustParse("2025-03-10"), "", "pe-a", Distribution, M(75_000, USD)),
			NewExpect(MustParse("2025-03-10"), "", "pe-a", Distribution, M(80_000, USD)),
		)

		formatted, err := ledger.Fmt()
		if err != nil {
			t.Fatalf("Fmt() error = %v", err)
		}
		if got := len(formatted.transactions); got != 2 {
			t.Fatalf("formatted ledger has %d transactions, want 2", got)
		}
		for _, tx := range formatted.transactions {
			if e, ok := tx.(Expect); ok && !e.Amount.Equal(M(80_000, USD)) {
				t.Errorf("expectation = %v, want the corrected 80,000", e.Amount)
			}
		}
	})
}
