package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/tripledger/internal/domain"
)

// TripUseCase handles trips and membership.
type TripUseCase struct {
	txManager  TransactionManager
	tripRepo   TripRepository
	memberRepo MemberRepository
	userRepo   UserRepository
	idGen      IDGenerator
	publisher  EventPublisher
	logger     zerolog.Logger
}

// NewTripUseCase creates a new TripUseCase.
func NewTripUseCase(
	txManager TransactionManager,
	tripRepo TripRepository,
	memberRepo MemberRepository,
	userRepo UserRepository,
	idGen IDGenerator,
	publisher EventPublisher,
	logger zerolog.Logger,
) *TripUseCase {
	return &TripUseCase{
		txManager:  txManager,
		tripRepo:   tripRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		idGen:      idGen,
		publisher:  publisher,
		logger:     logger,
	}
}

// CreateTripInput represents input for creating a trip.
type CreateTripInput struct {
	Name        string
	Destination string
	StartDate   *time.Time
	EndDate     *time.Time
	OrganizerID string
}

// CreateTrip creates a trip and enrolls the organizer as an editing
// organizer member in the same transaction.
func (uc *TripUseCase) CreateTrip(ctx context.Context, input CreateTripInput) (*domain.Trip, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(ctx, input.OrganizerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	trip := &domain.Trip{
		ID:          uc.idGen.Generate(),
		Name:        input.Name,
		Destination: input.Destination,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		OrganizerID: input.OrganizerID,
		CreatedAt:   now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.tripRepo.Create(ctx, tx, trip); err != nil {
		return nil, err
	}

	organizer := &domain.TripMember{
		ID:          uc.idGen.Generate(),
		TripID:      trip.ID,
		UserID:      input.OrganizerID,
		Role:        domain.RoleOrganizer,
		Permissions: domain.PermissionEdit,
		JoinedAt:    now,
	}

	if err := uc.memberRepo.Create(ctx, tx, organizer); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return trip, nil
}

// GetTrip retrieves a trip by ID.
func (uc *TripUseCase) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	return uc.tripRepo.GetByID(ctx, id)
}

// ListTrips lists trips newest-first, or only those a user belongs to
// when userID is non-empty. Limit and offset are clamped to sane
// bounds before they reach the repository.
func (uc *TripUseCase) ListTrips(ctx context.Context, userID string, limit, offset int) ([]*domain.Trip, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	if userID != "" {
		return uc.tripRepo.ListByUser(ctx, userID, limit, offset)
	}

	return uc.tripRepo.List(ctx, limit, offset)
}

// AddMemberInput represents input for adding a trip member.
type AddMemberInput struct {
	TripID      string
	UserID      string
	Role        string
	Permissions string
}

// AddMember adds a user to a trip and publishes member-added.
func (uc *TripUseCase) AddMember(ctx context.Context, input AddMemberInput) (*domain.TripMember, error) {
	if _, err := uc.tripRepo.GetByID(ctx, input.TripID); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	if input.Role == "" {
		input.Role = domain.RoleMember
	}
	if input.Permissions == "" {
		input.Permissions = domain.PermissionView
	}

	member := &domain.TripMember{
		ID:          uc.idGen.Generate(),
		TripID:      input.TripID,
		UserID:      input.UserID,
		Role:        input.Role,
		Permissions: input.Permissions,
		JoinedAt:    time.Now().UTC(),
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.memberRepo.Create(ctx, tx, member); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if err := uc.publisher.Publish(ctx, domain.Event{
		TripID:  member.TripID,
		Name:    domain.EventMemberAdded,
		Payload: member,
	}); err != nil {
		uc.logger.Warn().Err(err).
			Str("trip_id", member.TripID).
			Msg("event publish failed")
	}

	return member, nil
}

// ListMembers lists a trip's members with display names.
func (uc *TripUseCase) ListMembers(ctx context.Context, tripID string) ([]*domain.TripMember, error) {
	if _, err := uc.tripRepo.GetByID(ctx, tripID); err != nil {
		return nil, err
	}

	return uc.memberRepo.ListByTrip(ctx, tripID)
}
