package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/tripledger/internal/adapter/http/dto"
	"github.com/iho/tripledger/internal/usecase"
)

// CurrencyService defines the behavior needed by CurrencyHandler.
type CurrencyService interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*usecase.ConversionResult, error)
}

// CurrencyHandler handles currency conversion HTTP requests.
type CurrencyHandler struct {
	currencyUC CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(currencyUC CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyUC: currencyUC}
}

// Convert converts an amount between two currencies using the latest rates.
func (h *CurrencyHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidationError, "amount must be a decimal number")
		return
	}

	result, err := h.currencyUC.Convert(r.Context(), amount, q.Get("from"), q.Get("to"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConversionFromUseCase(result))
}
