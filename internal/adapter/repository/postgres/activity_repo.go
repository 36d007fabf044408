package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tripledger/internal/domain"
)

// ActivityRepository implements itinerary activity persistence
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Create inserts a new activity
func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (id, trip_id, title, description, date, time, location, position, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		activity.ID,
		activity.TripID,
		activity.Title,
		activity.Description,
		activity.Date,
		activity.Time,
		activity.Location,
		activity.Position,
		activity.Status,
		activity.CreatedBy,
		activity.CreatedAt,
	)

	return err
}

// GetByID retrieves an activity by ID
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `
		SELECT id, trip_id, title, description, date, time, location, position, status, created_by, created_at
		FROM activities
		WHERE id = $1
	`

	var activity domain.Activity
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&activity.ID,
		&activity.TripID,
		&activity.Title,
		&activity.Description,
		&activity.Date,
		&activity.Time,
		&activity.Location,
		&activity.Position,
		&activity.Status,
		&activity.CreatedBy,
		&activity.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}

	return &activity, nil
}

// ListByTrip retrieves a trip's activities in itinerary order
func (r *ActivityRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Activity, error) {
	query := `
		SELECT id, trip_id, title, description, date, time, location, position, status, created_by, created_at
		FROM activities
		WHERE trip_id = $1
		ORDER BY date, time NULLS LAST, position
	`

	rows, err := r.pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var activity domain.Activity
		if err := rows.Scan(
			&activity.ID,
			&activity.TripID,
			&activity.Title,
			&activity.Description,
			&activity.Date,
			&activity.Time,
			&activity.Location,
			&activity.Position,
			&activity.Status,
			&activity.CreatedBy,
			&activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		activities = append(activities, &activity)
	}

	return activities, rows.Err()
}

// Update replaces an activity's mutable fields
func (r *ActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	query := `
		UPDATE activities
		SET title = $2, description = $3, date = $4, time = $5, location = $6, position = $7, status = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		activity.ID,
		activity.Title,
		activity.Description,
		activity.Date,
		activity.Time,
		activity.Location,
		activity.Position,
		activity.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}

	return nil
}

// Delete removes an activity
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM activities WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}

	return nil
}
