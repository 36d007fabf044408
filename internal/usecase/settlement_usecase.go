package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/infrastructure/metrics"
)

// SettlementUseCase computes the simplified payment plan for a trip
// and records settlement payments back into the ledger.
type SettlementUseCase struct {
	balanceUC      *BalanceUseCase
	settlementRepo SettlementRepository
	idGen          IDGenerator
	publisher      EventPublisher
	metrics        *metrics.Metrics
	logger         zerolog.Logger
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	balanceUC *BalanceUseCase,
	settlementRepo SettlementRepository,
	idGen IDGenerator,
	publisher EventPublisher,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *SettlementUseCase {
	return &SettlementUseCase{
		balanceUC:      balanceUC,
		settlementRepo: settlementRepo,
		idGen:          idGen,
		publisher:      publisher,
		metrics:        metrics,
		logger:         logger,
	}
}

// GetSettlementPlan derives the payment list that zeroes the trip's
// current balances. Pure read: successive calls without intervening
// writes return identical plans.
func (uc *SettlementUseCase) GetSettlementPlan(ctx context.Context, tripID string) ([]domain.SettlementTransaction, error) {
	balances, err := uc.balanceUC.GetTripBalances(ctx, tripID)
	if err != nil {
		return nil, err
	}

	nets := make(map[string]decimal.Decimal, len(balances))
	for id, b := range balances {
		nets[id] = b.Net
	}

	plan := domain.SimplifyDebts(nets)

	if uc.metrics != nil {
		uc.metrics.PlansComputed.Inc()
		uc.metrics.PlanTransactions.Observe(float64(len(plan)))
	}

	return plan, nil
}

// RecordSettlementInput represents input for recording a payment.
type RecordSettlementInput struct {
	TripID     string
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
}

// RecordSettlement persists a settlement payment and publishes
// settlement-added to the trip channel.
func (uc *SettlementUseCase) RecordSettlement(ctx context.Context, input RecordSettlementInput) (*domain.Settlement, error) {
	if _, err := uc.balanceUC.tripRepo.GetByID(ctx, input.TripID); err != nil {
		return nil, err
	}

	settlement := &domain.Settlement{
		ID:         uc.idGen.Generate(),
		TripID:     input.TripID,
		FromUserID: input.FromUserID,
		ToUserID:   input.ToUserID,
		Amount:     input.Amount,
		CreatedAt:  time.Now().UTC(),
	}

	if err := settlement.Validate(); err != nil {
		return nil, err
	}

	if err := uc.settlementRepo.Create(ctx, settlement); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SettlementsRecorded.Inc()
	}

	if err := uc.publisher.Publish(ctx, domain.Event{
		TripID:  settlement.TripID,
		Name:    domain.EventSettlementAdded,
		Payload: settlement,
	}); err != nil {
		uc.logger.Warn().Err(err).
			Str("trip_id", settlement.TripID).
			Msg("event publish failed")
	}

	return settlement, nil
}

// ListSettlements returns a trip's recorded payments newest-first.
func (uc *SettlementUseCase) ListSettlements(ctx context.Context, tripID string) ([]*domain.Settlement, error) {
	if _, err := uc.balanceUC.tripRepo.GetByID(ctx, tripID); err != nil {
		return nil, err
	}

	return uc.settlementRepo.ListByTrip(ctx, tripID)
}
