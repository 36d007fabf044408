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

// TripService defines the behavior needed by TripHandler.
type TripService interface {
	CreateTrip(ctx context.Context, input usecase.CreateTripInput) (*domain.Trip, error)
	GetTrip(ctx context.Context, id string) (*domain.Trip, error)
	ListTrips(ctx context.Context, userID string, limit, offset int) ([]*domain.Trip, error)
	AddMember(ctx context.Context, input usecase.AddMemberInput) (*domain.TripMember, error)
	ListMembers(ctx context.Context, tripID string) ([]*domain.TripMember, error)
}

// TripHandler handles trip and membership HTTP requests.
type TripHandler struct {
	tripUC TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripUC TripService) *TripHandler {
	return &TripHandler{tripUC: tripUC}
}

// Create creates a new trip.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "invalid request body")
		return
	}

	trip, err := h.tripUC.CreateTrip(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TripFromDomain(trip))
}

// Get retrieves a trip by ID.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	trip, err := h.tripUC.GetTrip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TripFromDomain(trip))
}

// List lists trips, optionally restricted to one user's memberships.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 0)
	offset := parseIntQuery(r, "offset", 0)

	trips, err := h.tripUC.ListTrips(r.Context(), r.URL.Query().Get("user_id"), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TripsFromDomain(trips))
}

// AddMember adds a user to a trip.
func (h *TripHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req dto.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "invalid request body")
		return
	}

	member, err := h.tripUC.AddMember(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MemberFromDomain(member))
}

// ListMembers lists a trip's members.
func (h *TripHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.tripUC.ListMembers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MembersFromDomain(members))
}
