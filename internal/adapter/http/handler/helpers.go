package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/tripledger/internal/adapter/http/dto"
	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// Error codes returned to clients. Validation failures are
// distinguishable from not-found and internal errors so clients never
// retry them.
const (
	codeValidationError = "validation_error"
	codeNotFound        = "not_found"
	codeConflict        = "conflict"
	codeInternalError   = "internal_error"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   code,
		Message: details,
	})
}

// writeDomainError maps a domain error to its status and code. Internal
// storage errors never leak their details.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := classifyDomainError(err)
	details := err.Error()
	if code == codeInternalError {
		details = ""
	}
	writeError(w, status, code, details)
}

func classifyDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTripNotFound),
		errors.Is(err, domain.ErrExpenseNotFound),
		errors.Is(err, domain.ErrActivityNotFound),
		errors.Is(err, domain.ErrVoteNotFound),
		errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAlreadyMember):
		return http.StatusConflict, codeConflict
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrEmptySplits),
		errors.Is(err, domain.ErrSplitSumMismatch),
		errors.Is(err, domain.ErrInvalidSplitAmount),
		errors.Is(err, domain.ErrSameUser),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrDescriptionTooLong):
		return http.StatusUnprocessableEntity, codeValidationError
	case errors.Is(err, usecase.ErrRateUnavailable):
		return http.StatusBadGateway, "rate_unavailable"
	default:
		return http.StatusInternalServerError, codeInternalError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
