package pacing

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdDeclare    CommandType = "declare"
	CmdCall       CommandType = "call"
	CmdContribute CommandType = "contribute"
	CmdFees       CommandType = "fees"
	CmdDistribute CommandType = "distribute"
	CmdYield      CommandType = "yield"
	CmdReturn     CommandType = "return-of-principal"
	CmdExpect     CommandType = "expect"
	CmdValue      CommandType = "value"
)

// flowTypes maps a cash movement command to the flow it records.
var flowTypes = map[CommandType]FlowType{
	CmdCall:       CapitalCall,
	CmdContribute: Contribution,
	CmdFees:       Fees,
	CmdDistribute: Distribution,
	CmdYield:      Yield,
	CmdReturn:     ReturnOfPrincipal,
}

// IsFlowCommand reports whether 'c' records an actual cash movement.
func IsFlowCommand(c CommandType) bool { _, ok := flowTypes[c]; return ok }

// Transaction defines the common interface for all types of pacing ledger
// entries that can be recorded.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "call", "distribute").
	When() Date        // When returns the date on which the transaction occurred.
	Equal(Transaction) bool
	Validate(ledger *Ledger) (Transaction, error)
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction (e.g., "call", "expect").
	Date    Date        `json:"date"`           // Date is the date when the transaction took place.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional rationale or note for the transaction.
}

// What returns the command name for the transaction, which is used to identify the type of transaction.
func (t baseCmd) What() CommandType {
	return t.Command
}

// When returns the date of the transaction.
func (t baseCmd) When() Date {
	return t.Date
}

// Rationale returns the memo associated with the transaction, which can provide additional context or rationale.
func (t baseCmd) Rationale() string {
	return t.Memo
}

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate checks the base command fields. It sets the date to today if it's zero.
// It's meant to be embedded in other transaction validation methods.
func (t *baseCmd) Validate() {
	if t.Date == (Date{}) {
		t.Date = Today()
	}
}

// invCmd is a component for investment-scoped transactions (every command
// except declare).
type invCmd struct {
	baseCmd
	Investment string `json:"investment"` // Investment is the ledger id of the position involved.
}

// Validate checks the investment command fields. It validates the base
// command and resolves the investment id against the ledger's declarations.
func (t *invCmd) Validate(ledger *Ledger) error {
	t.baseCmd.Validate()

	if t.Investment == "" {
		return errors.New("investment id is missing")
	}

	if ledger.Declaration(t.Investment) == nil {
		return fmt.Errorf("%w: %q is not declared in ledger", ErrUnknownInvestment, t.Investment)
	}

	return nil
}

// MarshalJSON implements the json.Marshaler interface for invCmd.
func (t invCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("investment", t.Investment)
	return w.MarshalJSON()
}

// --- Declare Command ---

// Declare represents a transaction to declare a private-market investment
// for use in the ledger. It records the commitment and the pacing
// parameters every later projection of this investment reads.
type Declare struct {
	baseCmd
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Commitment Money
	Vintage    int `json:"vintage"` // year the fund began (or will begin) calling capital
	Period     int `json:"period"`  // investment period, in years
	Life       int `json:"life"`    // fund life, in years

	TargetIRR     Percent            `json:"irr,omitempty"`
	TargetMOIC    Factor             `json:"moic"`
	Calls         CallSchedule       `json:"calls"`
	Distributions DistributionTiming `json:"distributions,omitempty"`
	Bow           float64            `json:"bow"`
}

// NewDeclare creates a new Declare transaction.
func NewDeclare(day Date, memo, id, name string, commitment Money, vintage, period, life int) Declare {
	return Declare{
		baseCmd:    baseCmd{Command: CmdDeclare, Date: day, Memo: memo},
		ID:         id,
		Name:       name,
		Commitment: commitment,
		Vintage:    vintage,
		Period:     period,
		Life:       life,
	}
}

// MarshalJSON implements the json.Marshaler interface for Declare.
func (t Declare) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("id", t.ID)
	w.Optional("name", t.Name)
	w.EmbedFrom(t.Commitment)
	w.Append("vintage", t.Vintage)
	w.Append("period", t.Period)
	w.Append("life", t.Life)
	w.Optional("irr", float64(t.TargetIRR))
	w.Append("moic", t.TargetMOIC)
	w.Append("calls", t.Calls)
	w.Optional("distributions", string(t.Distributions))
	w.Append("bow", t.Bow)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Declare.
// It handles the custom structure where amount and currency are separate fields.
func (t *Declare) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		baseCmd
		amountCmd
		ID            string  `json:"id"`
		Name          string  `json:"name"`
		Vintage       int     `json:"vintage"`
		Period        int     `json:"period"`
		Life          int     `json:"life"`
		TargetIRR     float64 `json:"irr"`
		TargetMOIC    Factor  `json:"moic"`
		Calls         string  `json:"calls"`
		Distributions string  `json:"distributions"`
		Bow           float64 `json:"bow"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	t.baseCmd = temp.baseCmd
	t.ID = temp.ID
	t.Name = temp.Name
	t.Commitment = temp.Money()
	t.Vintage = temp.Vintage
	t.Period = temp.Period
	t.Life = temp.Life
	t.TargetIRR = Percent(temp.TargetIRR)
	t.TargetMOIC = temp.TargetMOIC
	t.Calls = CallSchedule(temp.Calls)
	t.Distributions = DistributionTiming(temp.Distributions)
	t.Bow = temp.Bow
	return nil
}

func (t Declare) Equal(other Transaction) bool {
	o, ok := other.(Declare)
	return ok && t.baseCmd == o.baseCmd && t.ID == o.ID && t.Name == o.Name &&
		t.Commitment.Equal(o.Commitment) && t.Vintage == o.Vintage &&
		t.Period == o.Period && t.Life == o.Life &&
		t.TargetIRR.Equal(o.TargetIRR) && t.TargetMOIC.Equal(o.TargetMOIC) &&
		t.Calls == o.Calls && t.Distributions == o.Distributions && t.Bow == o.Bow
}

// Currency returns the currency of the commitment.
func (t Declare) Currency() string { return t.Commitment.Currency() }

// Validate checks the Declare transaction's fields.
// It ensures the id is not already declared, the commitment is positive in a
// valid currency, and fills the pacing defaults: vintage from the declare
// date, MOIC 2.5x, steady call schedule, 30% J-curve bow.
func (t Declare) Validate(ledger *Ledger) (Transaction, error) {
	t.baseCmd.Validate()
	if t.ID == "" {
		return t, errors.New("declaration id is missing")
	}
	if ledger.Declaration(t.ID) != nil {
		return t, fmt.Errorf("investment %q already declared in ledger", t.ID)
	}
	if !t.Commitment.IsPositive() {
		return t, fmt.Errorf("declaration commitment must be positive, got %v", t.Commitment)
	}
	if err := ValidateCurrency(t.Commitment.Currency()); err != nil {
		return t, fmt.Errorf("invalid currency for declaration: %w", err)
	}
	// One currency per book: there is no conversion anywhere downstream, so
	// a commitment in another currency is rejected here, not converted.
	for cur := range ledger.AllCurrencies() {
		if cur != t.Commitment.Currency() {
			return t, fmt.Errorf("declaration currency %s does not match ledger currency %s", t.Commitment.Currency(), cur)
		}
	}

	if t.Vintage == 0 {
		t.Vintage = t.Date.Year()
	}
	if t.Vintage < 1900 {
		return t, fmt.Errorf("declaration vintage %d is not a plausible year", t.Vintage)
	}
	if t.Period < 0 || t.Life < 0 {
		return t, fmt.Errorf("investment period and fund life cannot be negative, got %dy and %dy", t.Period, t.Life)
	}
	if t.Life > 0 && t.Period > t.Life {
		return t, fmt.Errorf("investment period %dy exceeds fund life %dy", t.Period, t.Life)
	}

	if t.TargetIRR < 0 {
		return t, fmt.Errorf("target IRR cannot be negative, got %s", t.TargetIRR)
	}
	if t.TargetMOIC.IsNegative() {
		return t, fmt.Errorf("target MOIC cannot be negative, got %s", t.TargetMOIC)
	}
	if t.TargetMOIC.IsZero() {
		t.TargetMOIC = F(2.5)
	}

	calls, err := ParseCallSchedule(string(t.Calls))
	if err != nil {
		return t, fmt.Errorf("invalid declaration: %w", err)
	}
	t.Calls = calls
	dists, err := ParseDistributionTiming(string(t.Distributions))
	if err != nil {
		return t, fmt.Errorf("invalid declaration: %w", err)
	}
	t.Distributions = dists

	if t.Bow == 0 {
		t.Bow = 0.30
	}
	if t.Bow < 0 || t.Bow >= 1 {
		return t, fmt.Errorf("J-curve bow must be within [0,1), got %g", t.Bow)
	}

	return t, nil
}

// --- Flow Commands ---

// Flow represents one actual cash movement between the office and an
// investment: a capital call, contribution, fee payment, distribution,
// yield payment or return of principal. The command tells the direction
// and nature of the flow; the amount is always a positive magnitude.
type Flow struct {
	invCmd
	Amount Money // Amount is the magnitude of the cash movement.
}

func newFlow(cmd CommandType, day Date, memo, investment string, amount Money) Flow {
	return Flow{
		invCmd: invCmd{baseCmd: baseCmd{Command: cmd, Date: day, Memo: memo}, Investment: investment},
		Amount: amount,
	}
}

// NewCall creates a capital call: the fund draws part of the commitment.
func NewCall(day Date, memo, investment string, amount Money) Flow {
	return newFlow(CmdCall, day, memo, investment, amount)
}

// NewContribute creates a contribution outside the formal call schedule.
func NewContribute(day Date, memo, investment string, amount Money) Flow {
	return newFlow(CmdContribute, day, memo, investment, amount)
}

// NewFees creates a management fee payment.
func NewFees(day Date, memo, investment string, amount Money) Flow {
	return newFlow(CmdFees, day, memo, investment, amount)
}

// NewDistribute creates a distribution from the fund back to the office.
func NewDistribute(day Date, memo, investment string, amount Money) Flow {
	return newFlow(CmdDistribute, day, memo, investment, amount)
}

// NewYield creates an income payment (interest, rent, dividend passthrough).
func NewYield(day Date, memo, investment string, amount Money) Flow {
	return newFlow(CmdYield, day, memo, investment, amount)
}

// NewReturnOfPrincipal creates a capital give-back that restores no commitment.
func NewReturnOfPrincipal(day Date, memo, investment string, amount Money) Flow {
	return newFlow(CmdReturn, day, memo, investment, amount)
}

// FlowType returns the cash flow classification of the command.
func (t Flow) FlowType() FlowType { return flowTypes[t.Command] }

// Currency returns the currency of the transaction.
func (t Flow) Currency() string { return t.Amount.Currency() }

// MarshalJSON implements the json.Marshaler interface for Flow.
func (t Flow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.invCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Flow.
// It handles the custom structure where amount and currency are separate fields.
func (t *Flow) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		invCmd
		amountCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	t.invCmd = temp.invCmd
	t.Amount = temp.Money()
	return nil
}

func (t Flow) Equal(other Transaction) bool {
	o, ok := other.(Flow)
	return ok && t.invCmd == o.invCmd && t.Amount.Equal(o.Amount)
}

// Validate checks the Flow transaction's fields. It ensures the amount is
// positive and in the commitment's currency, filling the currency when
// missing. A call may exceed the remaining commitment: funds do recall
// distributed capital, and the unfunded balance simply floors at zero.
func (t Flow) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.invCmd.Validate(ledger); err != nil {
		return t, err
	}
	if !IsFlowCommand(t.Command) {
		return t, fmt.Errorf("unknown flow command %q", t.Command)
	}

	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("%s amount must be positive, got %v", t.Command, t.Amount)
	}

	declared := ledger.Declaration(t.Investment) // We know this is not nil from invCmd.Validate
	currency := declared.Currency()
	// first the quick fix
	if t.Currency() == "" {
		t.Amount = M(t.Amount.value, currency)
	} else if currency != t.Currency() {
		return t, fmt.Errorf("%s currency %s does not match investment currency %s", t.Command, t.Currency(), currency)
	}

	return t, nil
}

// --- Expect Command ---

// Expect represents a manual forecast: a cash movement the office knows is
// coming (a notice received, a secondary closing, a scheduled fee) before
// it settles. Expected entries override the pacing model for their month
// and flow type, and actual entries in turn override them.
type Expect struct {
	invCmd
	Type   FlowType `json:"type"` // Type classifies the expected movement.
	Amount Money    // Amount is the expected magnitude.
}

// NewExpect creates a new Expect transaction.
func NewExpect(day Date, memo, investment string, typ FlowType, amount Money) Expect {
	return Expect{
		invCmd: invCmd{baseCmd: baseCmd{Command: CmdExpect, Date: day, Memo: memo}, Investment: investment},
		Type:   typ,
		Amount: amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Expect.
func (t Expect) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.invCmd)
	w.Append("type", t.Type)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Expect.
func (t *Expect) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		invCmd
		amountCmd
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	t.invCmd = temp.invCmd
	t.Type = FlowType(temp.Type)
	t.Amount = temp.Money()
	return nil
}

func (t Expect) Equal(other Transaction) bool {
	o, ok := other.(Expect)
	return ok && t.invCmd == o.invCmd && t.Type == o.Type && t.Amount.Equal(o.Amount)
}

// Currency returns the currency of the transaction.
func (t Expect) Currency() string { return t.Amount.Currency() }

// Validate checks the Expect transaction's fields. Past-dated expectations
// are legal: they go stale rather than invalid, and the forecast blender
// decides what to do with them.
func (t Expect) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.invCmd.Validate(ledger); err != nil {
		return t, err
	}

	typ, err := ParseFlowType(string(t.Type))
	if err != nil {
		return t, fmt.Errorf("invalid expectation: %w", err)
	}
	t.Type = typ

	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("expected amount must be positive, got %v", t.Amount)
	}

	declared := ledger.Declaration(t.Investment) // We know this is not nil from invCmd.Validate
	currency := declared.Currency()
	if t.Currency() == "" {
		t.Amount = M(t.Amount.value, currency)
	} else if currency != t.Currency() {
		return t, fmt.Errorf("expectation currency %s does not match investment currency %s", t.Currency(), currency)
	}

	return t, nil
}

// --- Value Command ---

// Value represents a NAV observation: the reported value of the position
// on a statement date. Projections and multiples read the latest
// observation on or before their as-of date.
type Value struct {
	invCmd
	Amount Money // Amount is the reported net asset value.
}

// NewValue creates a new Value transaction.
func NewValue(day Date, memo, investment string, amount Money) Value {
	return Value{
		invCmd: invCmd{baseCmd: baseCmd{Command: CmdValue, Date: day, Memo: memo}, Investment: investment},
		Amount: amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Value.
func (t Value) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.invCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Value.
func (t *Value) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		invCmd
		amountCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	t.invCmd = temp.invCmd
	t.Amount = temp.Money()
	return nil
}

func (t Value) Equal(other Transaction) bool {
	o, ok := other.(Value)
	return ok && t.invCmd == o.invCmd && t.Amount.Equal(o.Amount)
}

// Currency returns the currency of the transaction.
func (t Value) Currency() string { return t.Amount.Currency() }

// Validate checks the Value transaction's fields. A zero NAV is legal (a
// written-off position); a negative one is not.
func (t Value) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.invCmd.Validate(ledger); err != nil {
		return t, err
	}

	if t.Amount.IsNegative() {
		return t, fmt.Errorf("reported value cannot be negative, got %v", t.Amount)
	}

	declared := ledger.Declaration(t.Investment) // We know this is not nil from invCmd.Validate
	currency := declared.Currency()
	if t.Currency() == "" {
		t.Amount = M(t.Amount.value, currency)
	} else if currency != t.Currency() {
		return t, fmt.Errorf("value currency %s does not match investment currency %s", t.Currency(), currency)
	}

	return t, nil
}
