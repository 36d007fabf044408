package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tripledger/internal/adapter/http/dto"
	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// ActivityService defines the behavior needed by ActivityHandler.
type ActivityService interface {
	CreateActivity(ctx context.Context, input usecase.CreateActivityInput) (*domain.Activity, error)
	ListActivities(ctx context.Context, tripID string) ([]*domain.Activity, error)
	UpdateActivity(ctx context.Context, input usecase.UpdateActivityInput) (*domain.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
}

// ActivityHandler handles itinerary activity HTTP requests.
type ActivityHandler struct {
	activityUC ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityUC ActivityService) *ActivityHandler {
	return &ActivityHandler{activityUC: activityUC}
}

// Create adds an activity to a trip's itinerary.
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "invalid request body")
		return
	}

	activity, err := h.activityUC.CreateActivity(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ActivityFromDomain(activity))
}

// List lists a trip's activities in itinerary order.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityUC.ListActivities(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ActivitiesFromDomain(activities))
}

// Update replaces an activity's mutable fields.
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "invalid request body")
		return
	}

	activity, err := h.activityUC.UpdateActivity(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "activityID")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ActivityFromDomain(activity))
}

// Delete removes an activity.
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.activityUC.DeleteActivity(r.Context(), chi.URLParam(r, "activityID")); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
