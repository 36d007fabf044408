package domain

import "github.com/shopspring/decimal"

// Balance is a user's derived position within a trip. It is a pure
// function of the committed ledger and is never persisted.
type Balance struct {
	UserID string
	Name   string
	Paid   decimal.Decimal
	Owed   decimal.Decimal
	Net    decimal.Decimal
}

// ComputeBalances folds the full expense history and any recorded
// settlement payments into per-user positions. For every split the
// payer's paid and net are credited by the split amount and the split
// owner's owed is charged; a payer who participates in their own
// expense nets out on their own share. Amounts stay unrounded here;
// rounding happens only at the output boundary.
func ComputeBalances(expenses []*Expense, settlements []*Settlement) map[string]*Balance {
	balances := make(map[string]*Balance)

	get := func(userID string) *Balance {
		b, ok := balances[userID]
		if !ok {
			b = &Balance{
				UserID: userID,
				Paid:   decimal.Zero,
				Owed:   decimal.Zero,
				Net:    decimal.Zero,
			}
			balances[userID] = b
		}
		return b
	}

	for _, e := range expenses {
		for _, s := range e.Splits {
			payer := get(e.PaidBy)
			ower := get(s.UserID)

			payer.Paid = payer.Paid.Add(s.Amount)
			payer.Net = payer.Net.Add(s.Amount)
			ower.Owed = ower.Owed.Add(s.Amount)
			ower.Net = ower.Net.Sub(s.Amount)
		}
	}

	// A settlement payment counts as money paid by the debtor and
	// owed by the creditor, driving both nets toward zero.
	for _, st := range settlements {
		from := get(st.FromUserID)
		to := get(st.ToUserID)

		from.Paid = from.Paid.Add(st.Amount)
		from.Net = from.Net.Add(st.Amount)
		to.Owed = to.Owed.Add(st.Amount)
		to.Net = to.Net.Sub(st.Amount)
	}

	return balances
}
