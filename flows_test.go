package pacing

import "testing"

func TestFlowTypeDirection(t *testing.T) {
	cases := []struct {
		typ             FlowType
		inflow          bool
		drawsCommitment bool
	}{
		{CapitalCall, false, true},
		{Contribution, false, true},
		{Fees, false, false}, // paid-in for multiples, but no commitment drawdown
		{Distribution, true, false},
		{Yield, true, false},
		{ReturnOfPrincipal, true, false},
	}
	for _, c := range cases {
		if got := c.typ.IsInflow(); got != c.inflow {
			t.Errorf("%s.IsInflow() = %v, want %v", c.typ, got, c.inflow)
		}
		if got := c.typ.DrawsCommitment(); got != c.drawsCommitment {
			t.Errorf("%s.DrawsCommitment() = %v, want %v", c.typ, got, c.drawsCommitment)
		}
		wantSign := -1
		if c.inflow {
			wantSign = 1
		}
		if got := c.typ.Sign(); got != wantSign {
			t.Errorf("%s.Sign() = %d, want %d", c.typ, got, wantSign)
		}
	}
}

func TestParseFlowType(t *testing.T) {
	for _, valid := range []string{"capital-call", "contribution", "fees", "distribution", "yield", "return-of-principal"} {
		if _, err := ParseFlowType(valid); err != nil {
			t.Errorf("ParseFlowType(%q) error = %v", valid, err)
		}
	}
	if _, err := ParseFlowType("dividend"); err == nil {
		t.Errorf("ParseFlowType(\"dividend\") accepted an unknown type")
	}
}
