package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/tripledger/internal/domain"
)

// ErrRateUnavailable is returned when no rate exists for a currency
// pair.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// CurrencyUseCase converts amounts between currencies using an
// external rate provider, with fetched rate tables cached per base
// currency.
type CurrencyUseCase struct {
	provider RateProvider
	cache    Cache
}

// NewCurrencyUseCase creates a new CurrencyUseCase.
func NewCurrencyUseCase(provider RateProvider, cache Cache) *CurrencyUseCase {
	return &CurrencyUseCase{provider: provider, cache: cache}
}

// ConversionResult is the outcome of a currency conversion.
type ConversionResult struct {
	Original  decimal.Decimal
	From      string
	To        string
	Rate      decimal.Decimal
	Converted decimal.Decimal
}

// Convert converts amount from one currency to another.
func (uc *CurrencyUseCase) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*ConversionResult, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if err := domain.ValidateCurrency(from); err != nil {
		return nil, err
	}
	if err := domain.ValidateCurrency(to); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	rates, err := uc.rates(ctx, from)
	if err != nil {
		return nil, err
	}

	rate, ok := rates[to]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrRateUnavailable, from, to)
	}

	return &ConversionResult{
		Original:  amount,
		From:      from,
		To:        to,
		Rate:      rate,
		Converted: amount.Mul(rate).Round(2),
	}, nil
}

func (uc *CurrencyUseCase) rates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	key := "rates:" + base

	if cached, err := uc.cache.Get(ctx, key); err == nil && cached != "" {
		var rates map[string]decimal.Decimal
		if err := json.Unmarshal([]byte(cached), &rates); err == nil {
			return rates, nil
		}
	}

	rates, err := uc.provider.Rates(ctx, base)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(rates); err == nil {
		// Best effort: a cold cache only costs an extra fetch.
		_ = uc.cache.Set(ctx, key, string(encoded), RateCacheTTL)
	}

	return rates, nil
}
