package domain

import "github.com/shopspring/decimal"

// ZeroTolerance is the band around zero within which a balance counts
// as settled. Residues below it are dropped rather than chased.
var ZeroTolerance = decimal.New(1, -2) // 0.01

// SettlementTransaction is one proposed payment from a debtor to a
// creditor, part of the set zeroing all balances. Derived, never
// persisted.
type SettlementTransaction struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// SimplifyDebts turns net balances into a payment list using a greedy
// min-cash-flow pass: repeatedly match the creditor with the largest
// remaining credit against the debtor with the largest remaining debt
// (ties broken by lower user ID) and transfer the smaller of the two.
// Each transaction zeroes at least one side, so at most
// creditors+debtors-1 transactions are emitted.
//
// Largest-first is a heuristic, not a provably minimal answer for
// every balance graph (true minimisation is NP-hard once cycles span
// more than two parties). The selection and tie-break rules are load
// bearing: callers and tests depend on the exact output order.
func SimplifyDebts(nets map[string]decimal.Decimal) []SettlementTransaction {
	type party struct {
		id     string
		amount decimal.Decimal
	}

	var creditors, debtors []party
	for id, net := range nets {
		switch {
		case net.GreaterThan(ZeroTolerance):
			creditors = append(creditors, party{id: id, amount: net})
		case net.LessThan(ZeroTolerance.Neg()):
			debtors = append(debtors, party{id: id, amount: net.Neg()})
		}
	}

	// Largest amount wins; equal amounts go to the lower user ID so
	// the result does not depend on map iteration order.
	pick := func(ps []party) int {
		best := 0
		for i := 1; i < len(ps); i++ {
			switch ps[i].amount.Cmp(ps[best].amount) {
			case 1:
				best = i
			case 0:
				if ps[i].id < ps[best].id {
					best = i
				}
			}
		}
		return best
	}

	var txns []SettlementTransaction
	for len(creditors) > 0 && len(debtors) > 0 {
		ci := pick(creditors)
		di := pick(debtors)

		transfer := decimal.Min(creditors[ci].amount, debtors[di].amount)
		txns = append(txns, SettlementTransaction{
			From:   debtors[di].id,
			To:     creditors[ci].id,
			Amount: transfer,
		})

		creditors[ci].amount = creditors[ci].amount.Sub(transfer)
		debtors[di].amount = debtors[di].amount.Sub(transfer)

		if creditors[ci].amount.LessThanOrEqual(ZeroTolerance) {
			creditors = append(creditors[:ci], creditors[ci+1:]...)
		}
		if debtors[di].amount.LessThanOrEqual(ZeroTolerance) {
			debtors = append(debtors[:di], debtors[di+1:]...)
		}
	}

	return txns
}
