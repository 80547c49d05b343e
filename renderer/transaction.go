package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/pacing"
	md "github.com/nao1215/markdown"
)

// Transaction renders a one-line human description of a transaction.
func Transaction(tx pacing.Transaction) string {
	switch v := tx.(type) {
	case pacing.Declare:
		return fmt.Sprintf("Declared %s: %s committed, vintage %d", v.ID, v.Commitment, v.Vintage)
	case pacing.Flow:
		switch v.FlowType() {
		case pacing.CapitalCall:
			return fmt.Sprintf("Called %s for %s", v.Amount, v.Investment)
		case pacing.Contribution:
			return fmt.Sprintf("Contributed %s to %s", v.Amount, v.Investment)
		case pacing.Fees:
			return fmt.Sprintf("Paid %s of fees on %s", v.Amount, v.Investment)
		case pacing.Distribution:
			return fmt.Sprintf("Received %s distributed by %s", v.Amount, v.Investment)
		case pacing.Yield:
			return fmt.Sprintf("Received %s of income from %s", v.Amount, v.Investment)
		case pacing.ReturnOfPrincipal:
			return fmt.Sprintf("Received %s of principal back from %s", v.Amount, v.Investment)
		default:
			return fmt.Sprintf("%s of %s on %s", v.What(), v.Amount, v.Investment)
		}
	case pacing.Expect:
		return fmt.Sprintf("Expecting a %s of %s from %s", v.Type, v.Amount, v.Investment)
	case pacing.Value:
		return fmt.Sprintf("Valued %s at %s", v.Investment, v.Amount)
	default:
		return string(tx.What())
	}
}

// Transactions renders a transaction table, one row per transaction in
// the given order.
func Transactions(txs []pacing.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	if len(txs) == 0 {
		doc.PlainText("The ledger has no matching transactions.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Date", "Command", "Investment", "Amount", "Memo"},
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, transactionRow(tx))
	}
	doc.Table(table)
	return doc.String()
}

func transactionRow(tx pacing.Transaction) []string {
	date := tx.When().String()
	command := string(tx.What())
	switch v := tx.(type) {
	case pacing.Declare:
		return []string{date, command, v.ID, v.Commitment.String(), v.Memo}
	case pacing.Flow:
		return []string{date, command, v.Investment, v.Amount.String(), v.Memo}
	case pacing.Expect:
		return []string{date, command, v.Investment, v.Amount.String(), v.Memo}
	case pacing.Value:
		return []string{date, command, v.Investment, v.Amount.String(), v.Memo}
	default:
		return []string{date, command, "", "", ""}
	}
}
