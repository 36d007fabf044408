package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/tripledger/internal/domain"
)

// DocumentUseCase handles document metadata. File bytes are stored
// elsewhere; this only tracks references.
type DocumentUseCase struct {
	tripRepo     TripRepository
	documentRepo DocumentRepository
	idGen        IDGenerator
	publisher    EventPublisher
	logger       zerolog.Logger
}

// NewDocumentUseCase creates a new DocumentUseCase.
func NewDocumentUseCase(
	tripRepo TripRepository,
	documentRepo DocumentRepository,
	idGen IDGenerator,
	publisher EventPublisher,
	logger zerolog.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{
		tripRepo:     tripRepo,
		documentRepo: documentRepo,
		idGen:        idGen,
		publisher:    publisher,
		logger:       logger,
	}
}

// AddDocumentInput represents input for attaching a document.
type AddDocumentInput struct {
	TripID     string
	ActivityID *string
	Name       string
	FilePath   string
	FileType   *string
	UploadedBy string
}

// AddDocument records document metadata and publishes document-added.
func (uc *DocumentUseCase) AddDocument(ctx context.Context, input AddDocumentInput) (*domain.Document, error) {
	if _, err := uc.tripRepo.GetByID(ctx, input.TripID); err != nil {
		return nil, err
	}

	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	document := &domain.Document{
		ID:         uc.idGen.Generate(),
		TripID:     input.TripID,
		ActivityID: input.ActivityID,
		Name:       input.Name,
		FilePath:   input.FilePath,
		FileType:   input.FileType,
		UploadedBy: input.UploadedBy,
		CreatedAt:  time.Now().UTC(),
	}

	if err := uc.documentRepo.Create(ctx, document); err != nil {
		return nil, err
	}

	if err := uc.publisher.Publish(ctx, domain.Event{
		TripID:  document.TripID,
		Name:    domain.EventDocumentAdded,
		Payload: document,
	}); err != nil {
		uc.logger.Warn().Err(err).
			Str("trip_id", document.TripID).
			Msg("event publish failed")
	}

	return document, nil
}

// ListDocuments lists a trip's documents, optionally scoped to one
// activity.
func (uc *DocumentUseCase) ListDocuments(ctx context.Context, tripID string, activityID *string) ([]*domain.Document, error) {
	if _, err := uc.tripRepo.GetByID(ctx, tripID); err != nil {
		return nil, err
	}

	return uc.documentRepo.ListByTrip(ctx, tripID, activityID)
}
