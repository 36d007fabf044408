package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// TripRepository implements trip persistence
type TripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository creates a new trip repository
func NewTripRepository(pool *pgxpool.Pool) *TripRepository {
	return &TripRepository{pool: pool}
}

// Create inserts a new trip within the given transaction
func (r *TripRepository) Create(ctx context.Context, tx usecase.Transaction, trip *domain.Trip) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO trips (id, name, destination, start_date, end_date, organizer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := pgxTx.Exec(ctx, query,
		trip.ID,
		trip.Name,
		trip.Destination,
		trip.StartDate,
		trip.EndDate,
		trip.OrganizerID,
		trip.CreatedAt,
	)

	return err
}

// GetByID retrieves a trip by ID
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `
		SELECT id, name, destination, start_date, end_date, organizer_id, created_at
		FROM trips
		WHERE id = $1
	`

	var trip domain.Trip
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&trip.ID,
		&trip.Name,
		&trip.Destination,
		&trip.StartDate,
		&trip.EndDate,
		&trip.OrganizerID,
		&trip.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}

	return &trip, nil
}

// List retrieves all trips newest-first
func (r *TripRepository) List(ctx context.Context, limit, offset int) ([]*domain.Trip, error) {
	query := `
		SELECT id, name, destination, start_date, end_date, organizer_id, created_at
		FROM trips
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrips(rows)
}

// ListByUser retrieves trips the user is a member of, newest-first
func (r *TripRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Trip, error) {
	query := `
		SELECT t.id, t.name, t.destination, t.start_date, t.end_date, t.organizer_id, t.created_at
		FROM trips t
		JOIN trip_members m ON m.trip_id = t.id
		WHERE m.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrips(rows)
}

func scanTrips(rows pgx.Rows) ([]*domain.Trip, error) {
	var trips []*domain.Trip
	for rows.Next() {
		var trip domain.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.Name,
			&trip.Destination,
			&trip.StartDate,
			&trip.EndDate,
			&trip.OrganizerID,
			&trip.CreatedAt,
		); err != nil {
			return nil, err
		}
		trips = append(trips, &trip)
	}

	return trips, rows.Err()
}
