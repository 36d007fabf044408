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

// DocumentService defines the behavior needed by DocumentHandler.
type DocumentService interface {
	AddDocument(ctx context.Context, input usecase.AddDocumentInput) (*domain.Document, error)
	ListDocuments(ctx context.Context, tripID string, activityID *string) ([]*domain.Document, error)
}

// DocumentHandler handles document metadata HTTP requests.
type DocumentHandler struct {
	documentUC DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentUC DocumentService) *DocumentHandler {
	return &DocumentHandler{documentUC: documentUC}
}

// Create attaches a document record to a trip.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "invalid request body")
		return
	}

	document, err := h.documentUC.AddDocument(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.DocumentFromDomain(document))
}

// List lists a trip's documents, optionally filtered to one activity.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	var activityID *string
	if v := r.URL.Query().Get("activity_id"); v != "" {
		activityID = &v
	}

	documents, err := h.documentUC.ListDocuments(r.Context(), chi.URLParam(r, "id"), activityID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DocumentsFromDomain(documents))
}
