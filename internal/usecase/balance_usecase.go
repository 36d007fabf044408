package usecase

import (
	"context"

	"github.com/iho/tripledger/internal/domain"
)

// BalanceUseCase derives per-user balances from the full ledger
// history. There is no persisted aggregate: every query recomputes
// from the latest committed state, O(splits) per call.
type BalanceUseCase struct {
	tripRepo       TripRepository
	expenseRepo    ExpenseRepository
	settlementRepo SettlementRepository
	userRepo       UserRepository
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(
	tripRepo TripRepository,
	expenseRepo ExpenseRepository,
	settlementRepo SettlementRepository,
	userRepo UserRepository,
) *BalanceUseCase {
	return &BalanceUseCase{
		tripRepo:       tripRepo,
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		userRepo:       userRepo,
	}
}

// GetTripBalances computes net positions for every user touched by
// the trip's ledger, with display names attached.
func (uc *BalanceUseCase) GetTripBalances(ctx context.Context, tripID string) (map[string]*domain.Balance, error) {
	if _, err := uc.tripRepo.GetByID(ctx, tripID); err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.ListAllByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	settlements, err := uc.settlementRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	balances := domain.ComputeBalances(expenses, settlements)
	if len(balances) == 0 {
		return balances, nil
	}

	ids := make([]string, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}

	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for id, b := range balances {
		if u, ok := users[id]; ok {
			b.Name = u.Name
		}
	}

	return balances, nil
}
