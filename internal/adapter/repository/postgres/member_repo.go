package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// MemberRepository implements trip membership persistence
type MemberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// Create inserts a new trip member within the given transaction
func (r *MemberRepository) Create(ctx context.Context, tx usecase.Transaction, member *domain.TripMember) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO trip_members (id, trip_id, user_id, role, permissions, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := pgxTx.Exec(ctx, query,
		member.ID,
		member.TripID,
		member.UserID,
		member.Role,
		member.Permissions,
		member.JoinedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrAlreadyMember
	}

	return err
}

// ListByTrip retrieves a trip's members with display names
func (r *MemberRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.TripMember, error) {
	query := `
		SELECT m.id, m.trip_id, m.user_id, m.role, m.permissions, m.joined_at, u.name
		FROM trip_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.trip_id = $1
		ORDER BY m.joined_at
	`

	rows, err := r.pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.TripMember
	for rows.Next() {
		var member domain.TripMember
		if err := rows.Scan(
			&member.ID,
			&member.TripID,
			&member.UserID,
			&member.Role,
			&member.Permissions,
			&member.JoinedAt,
			&member.Name,
		); err != nil {
			return nil, err
		}
		members = append(members, &member)
	}

	return members, rows.Err()
}
