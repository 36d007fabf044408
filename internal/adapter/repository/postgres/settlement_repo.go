package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tripledger/internal/domain"
)

// SettlementRepository implements settlement payment persistence
type SettlementRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewSettlementRepository creates a new settlement repository
func NewSettlementRepository(pool *pgxpool.Pool, retrier *Retrier) *SettlementRepository {
	return &SettlementRepository{pool: pool, retrier: retrier}
}

// Create inserts a settlement payment
func (r *SettlementRepository) Create(ctx context.Context, settlement *domain.Settlement) error {
	query := `
		INSERT INTO settlements (id, trip_id, from_user_id, to_user_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, query,
			settlement.ID,
			settlement.TripID,
			settlement.FromUserID,
			settlement.ToUserID,
			settlement.Amount,
			settlement.CreatedAt,
		)
		return err
	})
}

// ListByTrip retrieves a trip's settlements newest-first
func (r *SettlementRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Settlement, error) {
	query := `
		SELECT id, trip_id, from_user_id, to_user_id, amount, created_at
		FROM settlements
		WHERE trip_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settlements []*domain.Settlement
	for rows.Next() {
		var settlement domain.Settlement
		if err := rows.Scan(
			&settlement.ID,
			&settlement.TripID,
			&settlement.FromUserID,
			&settlement.ToUserID,
			&settlement.Amount,
			&settlement.CreatedAt,
		); err != nil {
			return nil, err
		}
		settlements = append(settlements, &settlement)
	}

	return settlements, rows.Err()
}
