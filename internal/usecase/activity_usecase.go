package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/tripledger/internal/domain"
)

// ActivityUseCase handles itinerary activities. Activities ride the
// same invalidation channel as the ledger but carry no balance logic.
type ActivityUseCase struct {
	tripRepo     TripRepository
	activityRepo ActivityRepository
	idGen        IDGenerator
	publisher    EventPublisher
	logger       zerolog.Logger
}

// NewActivityUseCase creates a new ActivityUseCase.
func NewActivityUseCase(
	tripRepo TripRepository,
	activityRepo ActivityRepository,
	idGen IDGenerator,
	publisher EventPublisher,
	logger zerolog.Logger,
) *ActivityUseCase {
	return &ActivityUseCase{
		tripRepo:     tripRepo,
		activityRepo: activityRepo,
		idGen:        idGen,
		publisher:    publisher,
		logger:       logger,
	}
}

// CreateActivityInput represents input for creating an activity.
type CreateActivityInput struct {
	TripID      string
	Title       string
	Description string
	Date        string
	Time        *string
	Location    *string
	Position    int
	CreatedBy   string
}

// CreateActivity creates an activity and publishes activity-added.
func (uc *ActivityUseCase) CreateActivity(ctx context.Context, input CreateActivityInput) (*domain.Activity, error) {
	if _, err := uc.tripRepo.GetByID(ctx, input.TripID); err != nil {
		return nil, err
	}

	if err := domain.ValidateName(input.Title); err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		ID:          uc.idGen.Generate(),
		TripID:      input.TripID,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
		Position:    input.Position,
		Status:      domain.ActivityStatusSuggested,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}

	uc.publish(ctx, activity.TripID, domain.EventActivityAdded, activity)

	return activity, nil
}

// ListActivities lists a trip's activities ordered by date, time and
// position.
func (uc *ActivityUseCase) ListActivities(ctx context.Context, tripID string) ([]*domain.Activity, error) {
	if _, err := uc.tripRepo.GetByID(ctx, tripID); err != nil {
		return nil, err
	}

	return uc.activityRepo.ListByTrip(ctx, tripID)
}

// UpdateActivityInput represents input for updating an activity.
type UpdateActivityInput struct {
	ID          string
	Title       string
	Description string
	Date        string
	Time        *string
	Location    *string
	Position    int
	Status      string
}

// UpdateActivity replaces an activity's mutable fields and publishes
// activity-updated. Last write wins; there is no version check.
func (uc *ActivityUseCase) UpdateActivity(ctx context.Context, input UpdateActivityInput) (*domain.Activity, error) {
	activity, err := uc.activityRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	activity.Title = input.Title
	activity.Description = input.Description
	activity.Date = input.Date
	activity.Time = input.Time
	activity.Location = input.Location
	activity.Position = input.Position
	if input.Status != "" {
		activity.Status = input.Status
	}

	if err := uc.activityRepo.Update(ctx, activity); err != nil {
		return nil, err
	}

	uc.publish(ctx, activity.TripID, domain.EventActivityUpdated, activity)

	return activity, nil
}

// DeleteActivity removes an activity and publishes activity-deleted.
func (uc *ActivityUseCase) DeleteActivity(ctx context.Context, id string) error {
	activity, err := uc.activityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.activityRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.publish(ctx, activity.TripID, domain.EventActivityDeleted, map[string]string{"id": id})

	return nil
}

func (uc *ActivityUseCase) publish(ctx context.Context, tripID, name string, payload any) {
	if err := uc.publisher.Publish(ctx, domain.Event{TripID: tripID, Name: name, Payload: payload}); err != nil {
		uc.logger.Warn().Err(err).
			Str("trip_id", tripID).
			Str("event", name).
			Msg("event publish failed")
	}
}
