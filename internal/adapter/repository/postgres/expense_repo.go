package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// ExpenseRepository implements expense persistence. An expense and its
// splits are written inside one transaction; there is no path that
// leaves a split orphaned.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts an expense and all of its splits within the given
// transaction
func (r *ExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO expenses (id, trip_id, description, amount, currency, paid_by, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgxTx.Exec(ctx, query,
		expense.ID,
		expense.TripID,
		expense.Description,
		expense.Amount,
		expense.Currency,
		expense.PaidBy,
		expense.Date,
		expense.CreatedAt,
	)
	if err != nil {
		return err
	}

	splitQuery := `
		INSERT INTO expense_splits (id, expense_id, user_id, amount, percentage)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, split := range expense.Splits {
		if _, err := pgxTx.Exec(ctx, splitQuery,
			split.ID,
			split.ExpenseID,
			split.UserID,
			split.Amount,
			split.Percentage,
		); err != nil {
			return err
		}
	}

	return nil
}

// ListByTrip retrieves a page of a trip's expenses newest-first with
// splits and display names attached
func (r *ExpenseRepository) ListByTrip(ctx context.Context, tripID string, limit, offset int) ([]*domain.Expense, error) {
	query := `
		SELECT e.id, e.trip_id, e.description, e.amount, e.currency, e.paid_by, e.date, e.created_at, u.name
		FROM expenses e
		JOIN users u ON u.id = e.paid_by
		WHERE e.trip_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, tripID, limit, offset)
}

// ListAllByTrip retrieves the complete expense history. Balance
// aggregation folds every split, so it must never see a truncated
// page.
func (r *ExpenseRepository) ListAllByTrip(ctx context.Context, tripID string) ([]*domain.Expense, error) {
	query := `
		SELECT e.id, e.trip_id, e.description, e.amount, e.currency, e.paid_by, e.date, e.created_at, u.name
		FROM expenses e
		JOIN users u ON u.id = e.paid_by
		WHERE e.trip_id = $1
		ORDER BY e.created_at DESC
	`

	return r.list(ctx, query, tripID)
}

func (r *ExpenseRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	byID := make(map[string]*domain.Expense)
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(
			&expense.ID,
			&expense.TripID,
			&expense.Description,
			&expense.Amount,
			&expense.Currency,
			&expense.PaidBy,
			&expense.Date,
			&expense.CreatedAt,
			&expense.PaidByName,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, &expense)
		byID[expense.ID] = &expense
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(expenses) == 0 {
		return expenses, nil
	}

	ids := make([]string, 0, len(expenses))
	for _, e := range expenses {
		ids = append(ids, e.ID)
	}

	splitQuery := `
		SELECT s.id, s.expense_id, s.user_id, s.amount, s.percentage, u.name
		FROM expense_splits s
		JOIN users u ON u.id = s.user_id
		WHERE s.expense_id = ANY($1)
		ORDER BY s.id
	`

	splitRows, err := r.pool.Query(ctx, splitQuery, ids)
	if err != nil {
		return nil, err
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var split domain.ExpenseSplit
		if err := splitRows.Scan(
			&split.ID,
			&split.ExpenseID,
			&split.UserID,
			&split.Amount,
			&split.Percentage,
			&split.UserName,
		); err != nil {
			return nil, err
		}
		if expense, ok := byID[split.ExpenseID]; ok {
			expense.Splits = append(expense.Splits, &split)
		}
	}

	return expenses, splitRows.Err()
}
