package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitTolerance is the largest gap allowed between an expense amount
// and the sum of its splits, in currency units.
var SplitTolerance = decimal.New(1, -2) // 0.01

// Expense represents a shared cost paid by one member of a trip.
// An expense is never persisted without its splits.
type Expense struct {
	ID          string
	TripID      string
	Description string
	Amount      decimal.Decimal
	Currency    string
	PaidBy      string
	Date        time.Time
	CreatedAt   time.Time
	Splits      []*ExpenseSplit

	// PaidByName is the payer's display name, joined in on read.
	PaidByName string
}

// ExpenseSplit is one user's share of an expense.
type ExpenseSplit struct {
	ID         string
	ExpenseID  string
	UserID     string
	Amount     decimal.Decimal
	Percentage *decimal.Decimal

	// UserName is the split owner's display name, joined in on read.
	UserName string
}

// Validate checks the expense and its splits.
func (e *Expense) Validate() error {
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if err := ValidateDescription(e.Description); err != nil {
		return err
	}

	if err := ValidateCurrency(e.Currency); err != nil {
		return err
	}

	if len(e.Splits) == 0 {
		return ErrEmptySplits
	}

	sum := decimal.Zero
	for _, s := range e.Splits {
		if s.Amount.IsNegative() {
			return ErrInvalidSplitAmount
		}
		sum = sum.Add(s.Amount)
	}

	if sum.Sub(e.Amount).Abs().GreaterThan(SplitTolerance) {
		return ErrSplitSumMismatch
	}

	return nil
}
