package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func split(userID string, amount float64) *ExpenseSplit {
	return &ExpenseSplit{UserID: userID, Amount: decimal.NewFromFloat(amount)}
}

func TestExpense_Validate(t *testing.T) {
	tests := []struct {
		name        string
		description string
		amount      decimal.Decimal
		currency    string
		splits      []*ExpenseSplit
		wantErr     error
	}{
		{
			name:     "valid equal split",
			amount:   decimal.NewFromInt(30),
			currency: "USD",
			splits:   []*ExpenseSplit{split("a", 10), split("b", 10), split("c", 10)},
		},
		{
			name:     "valid within tolerance",
			amount:   decimal.NewFromInt(10),
			currency: "USD",
			splits:   []*ExpenseSplit{split("a", 3.33), split("b", 3.33), split("c", 3.33)},
		},
		{
			name:     "rejects mismatch above tolerance",
			amount:   decimal.NewFromInt(10),
			currency: "USD",
			splits:   []*ExpenseSplit{split("a", 3), split("b", 3), split("c", 3)},
			wantErr:  ErrSplitSumMismatch,
		},
		{
			name:     "rejects zero amount",
			amount:   decimal.Zero,
			currency: "USD",
			splits:   []*ExpenseSplit{split("a", 0)},
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "rejects negative amount",
			amount:   decimal.NewFromInt(-5),
			currency: "USD",
			splits:   []*ExpenseSplit{split("a", -5)},
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "rejects empty splits",
			amount:   decimal.NewFromInt(30),
			currency: "USD",
			splits:   nil,
			wantErr:  ErrEmptySplits,
		},
		{
			name:     "rejects negative split",
			amount:   decimal.NewFromInt(10),
			currency: "USD",
			splits:   []*ExpenseSplit{split("a", 20), split("b", -10)},
			wantErr:  ErrInvalidSplitAmount,
		},
		{
			name:     "rejects unknown currency",
			amount:   decimal.NewFromInt(10),
			currency: "XXX",
			splits:   []*ExpenseSplit{split("a", 10)},
			wantErr:  ErrInvalidCurrency,
		},
		{
			name:        "rejects oversized description",
			description: strings.Repeat("x", MaxDescriptionLength+1),
			amount:      decimal.NewFromInt(10),
			currency:    "USD",
			splits:      []*ExpenseSplit{split("a", 10)},
			wantErr:     ErrDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Expense{
				Description: tt.description,
				Amount:      tt.amount,
				Currency:    tt.currency,
				Splits:      tt.splits,
			}

			err := e.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSettlement_Validate(t *testing.T) {
	s := &Settlement{FromUserID: "a", ToUserID: "a", Amount: decimal.NewFromInt(10)}
	if err := s.Validate(); !errors.Is(err, ErrSameUser) {
		t.Errorf("expected ErrSameUser, got %v", err)
	}

	s = &Settlement{FromUserID: "a", ToUserID: "b", Amount: decimal.Zero}
	if err := s.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	s = &Settlement{FromUserID: "a", ToUserID: "b", Amount: decimal.NewFromInt(10)}
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
