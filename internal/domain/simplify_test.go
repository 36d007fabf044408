package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func nets(pairs map[string]float64) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(pairs))
	for id, v := range pairs {
		m[id] = decimal.NewFromFloat(v)
	}
	return m
}

// applyAll plays the transactions back against the input balances.
func applyAll(balances map[string]decimal.Decimal, txns []SettlementTransaction) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(balances))
	for id, v := range balances {
		out[id] = v
	}
	for _, tx := range txns {
		out[tx.From] = out[tx.From].Add(tx.Amount)
		out[tx.To] = out[tx.To].Sub(tx.Amount)
	}
	return out
}

func TestSimplifyDebts_AllZero(t *testing.T) {
	txns := SimplifyDebts(nets(map[string]float64{"a": 0, "b": 0, "c": 0}))
	if len(txns) != 0 {
		t.Errorf("expected no transactions, got %d", len(txns))
	}
}

func TestSimplifyDebts_SinglePair(t *testing.T) {
	txns := SimplifyDebts(nets(map[string]float64{"a": 50, "b": -50}))

	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].From != "b" || txns[0].To != "a" || txns[0].Amount.String() != "50" {
		t.Errorf("got %s -> %s amount %s, want b -> a amount 50", txns[0].From, txns[0].To, txns[0].Amount)
	}
}

func TestSimplifyDebts_LargestFirst(t *testing.T) {
	// A +20, B -2.5, C -17.5: largest debtor C settles first.
	txns := SimplifyDebts(nets(map[string]float64{"a": 20, "b": -2.5, "c": -17.5}))

	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}

	if txns[0].From != "c" || txns[0].To != "a" || txns[0].Amount.String() != "17.5" {
		t.Errorf("first transaction = %+v, want c -> a 17.5", txns[0])
	}
	if txns[1].From != "b" || txns[1].To != "a" || txns[1].Amount.String() != "2.5" {
		t.Errorf("second transaction = %+v, want b -> a 2.5", txns[1])
	}

	total := decimal.Zero
	for _, tx := range txns {
		total = total.Add(tx.Amount)
	}
	if total.String() != "20" {
		t.Errorf("transactions sum to %s, want 20", total)
	}
}

func TestSimplifyDebts_TieBreakLowerID(t *testing.T) {
	txns := SimplifyDebts(nets(map[string]float64{"b": 10, "a": 10, "d": -10, "c": -10}))

	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
	if txns[0].From != "c" || txns[0].To != "a" {
		t.Errorf("first transaction = %+v, want c -> a", txns[0])
	}
	if txns[1].From != "d" || txns[1].To != "b" {
		t.Errorf("second transaction = %+v, want d -> b", txns[1])
	}
}

func TestSimplifyDebts_Deterministic(t *testing.T) {
	input := map[string]float64{
		"u1": 42.17, "u2": -13.5, "u3": -28.67, "u4": 100, "u5": -100,
	}

	first := SimplifyDebts(nets(input))
	for i := 0; i < 20; i++ {
		again := SimplifyDebts(nets(input))
		if len(again) != len(first) {
			t.Fatalf("run %d: %d transactions, first run had %d", i, len(again), len(first))
		}
		for j := range first {
			if first[j].From != again[j].From || first[j].To != again[j].To || !first[j].Amount.Equal(again[j].Amount) {
				t.Fatalf("run %d: transaction %d = %+v, first run had %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestSimplifyDebts_DrivesBalancesToZero(t *testing.T) {
	cases := []map[string]float64{
		{"a": 50, "b": -50},
		{"a": 20, "b": -2.5, "c": -17.5},
		{"a": 33.33, "b": 33.33, "c": -66.66},
		{"a": 1.5, "b": 2.5, "c": -1, "d": -3},
		{"a": 250, "b": -100, "c": -75, "d": -75},
	}

	for _, c := range cases {
		balances := nets(c)
		txns := SimplifyDebts(balances)

		// Count bound: at most non-zero parties minus one.
		nonZero := 0
		for _, v := range balances {
			if v.Abs().GreaterThan(ZeroTolerance) {
				nonZero++
			}
		}
		if len(txns) > nonZero-1 {
			t.Errorf("%v: %d transactions exceeds bound %d", c, len(txns), nonZero-1)
		}

		after := applyAll(balances, txns)
		for id, v := range after {
			if v.Abs().GreaterThan(ZeroTolerance) {
				t.Errorf("%v: %s left with %s after settling", c, id, v)
			}
		}
	}
}

func TestSimplifyDebts_IgnoresDust(t *testing.T) {
	// Residues inside the tolerance band are already settled.
	txns := SimplifyDebts(nets(map[string]float64{"a": 0.005, "b": -0.005}))
	if len(txns) != 0 {
		t.Errorf("expected no transactions for dust balances, got %d", len(txns))
	}
}
