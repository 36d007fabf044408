package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tripledger/internal/domain"
)

// VoteRepository implements group poll persistence
type VoteRepository struct {
	pool *pgxpool.Pool
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(pool *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{pool: pool}
}

// Create inserts a new vote
func (r *VoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, trip_id, title, description, options, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		vote.ID,
		vote.TripID,
		vote.Title,
		vote.Description,
		vote.Options,
		vote.CreatedBy,
		vote.CreatedAt,
	)

	return err
}

// GetByID retrieves a vote by ID, without responses
func (r *VoteRepository) GetByID(ctx context.Context, id string) (*domain.Vote, error) {
	query := `
		SELECT id, trip_id, title, description, options, created_by, created_at
		FROM votes
		WHERE id = $1
	`

	var vote domain.Vote
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&vote.ID,
		&vote.TripID,
		&vote.Title,
		&vote.Description,
		&vote.Options,
		&vote.CreatedBy,
		&vote.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVoteNotFound
	}
	if err != nil {
		return nil, err
	}

	return &vote, nil
}

// ListByTrip retrieves a trip's votes newest-first with responses and
// display names attached
func (r *VoteRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Vote, error) {
	query := `
		SELECT v.id, v.trip_id, v.title, v.description, v.options, v.created_by, v.created_at, u.name
		FROM votes v
		JOIN users u ON u.id = v.created_by
		WHERE v.trip_id = $1
		ORDER BY v.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []*domain.Vote
	byID := make(map[string]*domain.Vote)
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(
			&vote.ID,
			&vote.TripID,
			&vote.Title,
			&vote.Description,
			&vote.Options,
			&vote.CreatedBy,
			&vote.CreatedAt,
			&vote.CreatedByName,
		); err != nil {
			return nil, err
		}
		votes = append(votes, &vote)
		byID[vote.ID] = &vote
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(votes) == 0 {
		return votes, nil
	}

	ids := make([]string, 0, len(votes))
	for _, v := range votes {
		ids = append(ids, v.ID)
	}

	responseQuery := `
		SELECT r.id, r.vote_id, r.user_id, r.option, u.name
		FROM vote_responses r
		JOIN users u ON u.id = r.user_id
		WHERE r.vote_id = ANY($1)
		ORDER BY r.id
	`

	responseRows, err := r.pool.Query(ctx, responseQuery, ids)
	if err != nil {
		return nil, err
	}
	defer responseRows.Close()

	for responseRows.Next() {
		var response domain.VoteResponse
		if err := responseRows.Scan(
			&response.ID,
			&response.VoteID,
			&response.UserID,
			&response.Option,
			&response.UserName,
		); err != nil {
			return nil, err
		}
		if vote, ok := byID[response.VoteID]; ok {
			vote.Responses = append(vote.Responses, &response)
		}
	}

	return votes, responseRows.Err()
}

// UpsertResponse records a user's answer, replacing any earlier one
func (r *VoteRepository) UpsertResponse(ctx context.Context, response *domain.VoteResponse) error {
	query := `
		INSERT INTO vote_responses (id, vote_id, user_id, option)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (vote_id, user_id) DO UPDATE SET option = EXCLUDED.option
	`

	_, err := r.pool.Exec(ctx, query,
		response.ID,
		response.VoteID,
		response.UserID,
		response.Option,
	)

	return err
}
