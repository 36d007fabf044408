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

// VoteService defines the behavior needed by VoteHandler.
type VoteService interface {
	CreateVote(ctx context.Context, input usecase.CreateVoteInput) (*domain.Vote, error)
	ListVotes(ctx context.Context, tripID string) ([]*domain.Vote, error)
	Respond(ctx context.Context, input usecase.RespondInput) (*domain.VoteResponse, error)
}

// VoteHandler handles group poll HTTP requests.
type VoteHandler struct {
	voteUC VoteService
}

// NewVoteHandler creates a new VoteHandler.
func NewVoteHandler(voteUC VoteService) *VoteHandler {
	return &VoteHandler{voteUC: voteUC}
}

// Create opens a new poll on a trip.
func (h *VoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "invalid request body")
		return
	}

	vote, err := h.voteUC.CreateVote(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.VoteFromDomain(vote))
}

// List lists a trip's polls with responses.
func (h *VoteHandler) List(w http.ResponseWriter, r *http.Request) {
	votes, err := h.voteUC.ListVotes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.VotesFromDomain(votes))
}

// Respond records a user's answer to a poll.
func (h *VoteHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req dto.VoteResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "invalid request body")
		return
	}

	response, err := h.voteUC.Respond(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "voteID")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.VoteAnswerFromDomain(response))
}
