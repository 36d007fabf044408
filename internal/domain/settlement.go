package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is a recorded payment between two members that clears
// debt. Unlike SettlementTransaction it is persisted ledger state and
// feeds back into balance aggregation.
type Settlement struct {
	ID         string
	TripID     string
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// Validate checks the settlement payment.
func (s *Settlement) Validate() error {
	if s.FromUserID == s.ToUserID {
		return ErrSameUser
	}

	if s.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
