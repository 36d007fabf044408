package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/tripledger/internal/domain"
)

// VoteUseCase handles group polls and responses.
type VoteUseCase struct {
	tripRepo  TripRepository
	voteRepo  VoteRepository
	idGen     IDGenerator
	publisher EventPublisher
	logger    zerolog.Logger
}

// NewVoteUseCase creates a new VoteUseCase.
func NewVoteUseCase(
	tripRepo TripRepository,
	voteRepo VoteRepository,
	idGen IDGenerator,
	publisher EventPublisher,
	logger zerolog.Logger,
) *VoteUseCase {
	return &VoteUseCase{
		tripRepo:  tripRepo,
		voteRepo:  voteRepo,
		idGen:     idGen,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateVoteInput represents input for creating a vote.
type CreateVoteInput struct {
	TripID      string
	Title       string
	Description string
	Options     []string
	CreatedBy   string
}

// CreateVote creates a poll and publishes vote-created.
func (uc *VoteUseCase) CreateVote(ctx context.Context, input CreateVoteInput) (*domain.Vote, error) {
	if _, err := uc.tripRepo.GetByID(ctx, input.TripID); err != nil {
		return nil, err
	}

	if err := domain.ValidateName(input.Title); err != nil {
		return nil, err
	}

	vote := &domain.Vote{
		ID:          uc.idGen.Generate(),
		TripID:      input.TripID,
		Title:       input.Title,
		Description: input.Description,
		Options:     input.Options,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.voteRepo.Create(ctx, vote); err != nil {
		return nil, err
	}

	uc.publish(ctx, vote.TripID, domain.EventVoteCreated, vote)

	return vote, nil
}

// ListVotes lists a trip's polls newest-first with responses attached.
func (uc *VoteUseCase) ListVotes(ctx context.Context, tripID string) ([]*domain.Vote, error) {
	if _, err := uc.tripRepo.GetByID(ctx, tripID); err != nil {
		return nil, err
	}

	return uc.voteRepo.ListByTrip(ctx, tripID)
}

// RespondInput represents input for answering a vote.
type RespondInput struct {
	VoteID string
	UserID string
	Option string
}

// Respond records a user's answer, replacing any earlier one, and
// publishes vote-response.
func (uc *VoteUseCase) Respond(ctx context.Context, input RespondInput) (*domain.VoteResponse, error) {
	vote, err := uc.voteRepo.GetByID(ctx, input.VoteID)
	if err != nil {
		return nil, err
	}

	response := &domain.VoteResponse{
		ID:     uc.idGen.Generate(),
		VoteID: input.VoteID,
		UserID: input.UserID,
		Option: input.Option,
	}

	if err := uc.voteRepo.UpsertResponse(ctx, response); err != nil {
		return nil, err
	}

	uc.publish(ctx, vote.TripID, domain.EventVoteResponse, response)

	return response, nil
}

func (uc *VoteUseCase) publish(ctx context.Context, tripID, name string, payload any) {
	if err := uc.publisher.Publish(ctx, domain.Event{TripID: tripID, Name: name, Payload: payload}); err != nil {
		uc.logger.Warn().Err(err).
			Str("trip_id", tripID).
			Str("event", name).
			Msg("event publish failed")
	}
}
