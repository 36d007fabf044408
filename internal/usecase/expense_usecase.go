package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/infrastructure/metrics"
)

// ExpenseUseCase handles the trip ledger: recording expenses with
// their splits and listing ledger history.
type ExpenseUseCase struct {
	txManager   TransactionManager
	tripRepo    TripRepository
	expenseRepo ExpenseRepository
	idGen       IDGenerator
	publisher   EventPublisher
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	txManager TransactionManager,
	tripRepo TripRepository,
	expenseRepo ExpenseRepository,
	idGen IDGenerator,
	publisher EventPublisher,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		txManager:   txManager,
		tripRepo:    tripRepo,
		expenseRepo: expenseRepo,
		idGen:       idGen,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// SplitInput is one user's share in a create-expense request.
type SplitInput struct {
	UserID     string
	Amount     decimal.Decimal
	Percentage *decimal.Decimal
}

// RecordExpenseInput represents input for recording an expense.
type RecordExpenseInput struct {
	TripID      string
	Description string
	Amount      decimal.Decimal
	Currency    string
	PaidBy      string
	Date        time.Time
	Splits      []SplitInput
}

// RecordExpense validates and persists an expense together with all
// of its splits in one transaction, then publishes expense-added to
// the trip channel. The write is the only atomicity boundary: either
// the expense and every split land, or nothing does.
func (uc *ExpenseUseCase) RecordExpense(ctx context.Context, input RecordExpenseInput) (*domain.Expense, error) {
	if _, err := uc.tripRepo.GetByID(ctx, input.TripID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	expense := &domain.Expense{
		ID:          uc.idGen.Generate(),
		TripID:      input.TripID,
		Description: input.Description,
		Amount:      input.Amount,
		Currency:    strings.ToUpper(strings.TrimSpace(input.Currency)),
		PaidBy:      input.PaidBy,
		Date:        input.Date,
		CreatedAt:   now,
	}

	for _, s := range input.Splits {
		expense.Splits = append(expense.Splits, &domain.ExpenseSplit{
			ID:         uc.idGen.Generate(),
			ExpenseID:  expense.ID,
			UserID:     s.UserID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		})
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.expenseRepo.Create(ctx, tx, expense); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesRecorded.Inc()
		uc.metrics.ExpenseAmount.Observe(expense.Amount.InexactFloat64())
		uc.metrics.ExpenseDuration.Observe(time.Since(now).Seconds())
	}

	uc.publish(ctx, domain.Event{
		TripID:  expense.TripID,
		Name:    domain.EventExpenseAdded,
		Payload: expense,
	})

	return expense, nil
}

// ListExpenses returns a page of a trip's expenses newest-first with
// splits attached. Limit and offset are clamped before hitting the
// repository.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, tripID string, limit, offset int) ([]*domain.Expense, error) {
	if _, err := uc.tripRepo.GetByID(ctx, tripID); err != nil {
		return nil, err
	}

	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.expenseRepo.ListByTrip(ctx, tripID, limit, offset)
}

// publish broadcasts an invalidation hint. Subscribers re-fetch on
// receipt, so a lost publish only delays their next refresh; it never
// fails the committed write.
func (uc *ExpenseUseCase) publish(ctx context.Context, event domain.Event) {
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn().Err(err).
			Str("trip_id", event.TripID).
			Str("event", event.Name).
			Msg("event publish failed")
	}
}
