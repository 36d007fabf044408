package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func expense(paidBy string, amount float64, splits ...*ExpenseSplit) *Expense {
	return &Expense{
		PaidBy: paidBy,
		Amount: decimal.NewFromFloat(amount),
		Splits: splits,
	}
}

func TestComputeBalances_EqualSplit(t *testing.T) {
	// A pays 30 split equally across A, B, C.
	balances := ComputeBalances([]*Expense{
		expense("a", 30, split("a", 10), split("b", 10), split("c", 10)),
	}, nil)

	want := map[string]struct{ paid, owed, net string }{
		"a": {"30", "10", "20"},
		"b": {"0", "10", "-10"},
		"c": {"0", "10", "-10"},
	}

	for userID, w := range want {
		b, ok := balances[userID]
		if !ok {
			t.Fatalf("missing balance for %s", userID)
		}
		if b.Paid.String() != w.paid {
			t.Errorf("%s paid = %s, want %s", userID, b.Paid, w.paid)
		}
		if b.Owed.String() != w.owed {
			t.Errorf("%s owed = %s, want %s", userID, b.Owed, w.owed)
		}
		if b.Net.String() != w.net {
			t.Errorf("%s net = %s, want %s", userID, b.Net, w.net)
		}
	}
}

func TestComputeBalances_Conservation(t *testing.T) {
	// Nets must sum to zero for any expense history.
	expenses := []*Expense{
		expense("a", 30, split("a", 10), split("b", 10), split("c", 10)),
		expense("b", 15, split("b", 7.5), split("c", 7.5)),
		expense("c", 99.99, split("a", 33.33), split("b", 33.33), split("c", 33.33)),
	}

	balances := ComputeBalances(expenses, nil)

	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Net)
	}

	if !total.IsZero() {
		t.Errorf("nets sum to %s, want 0", total)
	}
}

func TestComputeBalances_TwoExpenses(t *testing.T) {
	// A pays 30 split A/B/C, then B pays 15 split B/C.
	expenses := []*Expense{
		expense("a", 30, split("a", 10), split("b", 10), split("c", 10)),
		expense("b", 15, split("b", 7.5), split("c", 7.5)),
	}

	balances := ComputeBalances(expenses, nil)

	if got := balances["a"].Net.String(); got != "20" {
		t.Errorf("a net = %s, want 20", got)
	}
	if got := balances["b"].Net.String(); got != "-2.5" {
		t.Errorf("b net = %s, want -2.5", got)
	}
	if got := balances["c"].Net.String(); got != "-17.5" {
		t.Errorf("c net = %s, want -17.5", got)
	}
}

func TestComputeBalances_SettlementZeroesDebt(t *testing.T) {
	expenses := []*Expense{
		expense("a", 100, split("a", 50), split("b", 50)),
	}
	settlements := []*Settlement{
		{FromUserID: "b", ToUserID: "a", Amount: decimal.NewFromInt(50)},
	}

	balances := ComputeBalances(expenses, settlements)

	if !balances["a"].Net.IsZero() {
		t.Errorf("a net = %s, want 0", balances["a"].Net)
	}
	if !balances["b"].Net.IsZero() {
		t.Errorf("b net = %s, want 0", balances["b"].Net)
	}
}

func TestComputeBalances_Empty(t *testing.T) {
	balances := ComputeBalances(nil, nil)
	if len(balances) != 0 {
		t.Errorf("expected empty map, got %d entries", len(balances))
	}
}
