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

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	GetSettlementPlan(ctx context.Context, tripID string) ([]domain.SettlementTransaction, error)
	RecordSettlement(ctx context.Context, input usecase.RecordSettlementInput) (*domain.Settlement, error)
	ListSettlements(ctx context.Context, tripID string) ([]*domain.Settlement, error)
}

// SettlementHandler handles settlement plan queries and recorded
// payments.
type SettlementHandler struct {
	settlementUC SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// GetPlan returns the simplified payment plan for a trip.
func (h *SettlementHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.settlementUC.GetSettlementPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementPlanFromDomain(plan))
}

// Create records a settlement payment.
func (h *SettlementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "invalid request body")
		return
	}

	settlement, err := h.settlementUC.RecordSettlement(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.SettlementFromDomain(settlement))
}

// List lists a trip's recorded settlement payments.
func (h *SettlementHandler) List(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.settlementUC.ListSettlements(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementsFromDomain(settlements))
}
