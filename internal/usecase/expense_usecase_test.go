package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
	"github.com/iho/tripledger/internal/usecase/mocks"
)

func seedTrip(tripRepo *mocks.MockTripRepository, id string) {
	tripRepo.Seed(&domain.Trip{ID: id, Name: "Test Trip", OrganizerID: "u-a"})
}

func splitInput(userID string, amount float64) usecase.SplitInput {
	return usecase.SplitInput{UserID: userID, Amount: decimal.NewFromFloat(amount)}
}

func TestExpenseUseCase_RecordExpense(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.RecordExpenseInput
		setupMocks  func(*mocks.MockTripRepository, *mocks.MockExpenseRepository)
		expectError bool
		errorType   error
		wantEvents  int
	}{
		{
			name: "successful expense",
			input: usecase.RecordExpenseInput{
				TripID:      "trip-1",
				Description: "Dinner",
				Amount:      decimal.NewFromInt(100),
				Currency:    "USD",
				PaidBy:      "u-a",
				Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				Splits:      []usecase.SplitInput{splitInput("u-a", 50), splitInput("u-b", 50)},
			},
			setupMocks: func(tripRepo *mocks.MockTripRepository, _ *mocks.MockExpenseRepository) {
				seedTrip(tripRepo, "trip-1")
			},
			wantEvents: 1,
		},
		{
			name: "unknown trip",
			input: usecase.RecordExpenseInput{
				TripID:   "missing",
				Amount:   decimal.NewFromInt(10),
				Currency: "USD",
				PaidBy:   "u-a",
				Splits:   []usecase.SplitInput{splitInput("u-a", 10)},
			},
			setupMocks:  func(_ *mocks.MockTripRepository, _ *mocks.MockExpenseRepository) {},
			expectError: true,
			errorType:   domain.ErrTripNotFound,
		},
		{
			name: "split sum mismatch",
			input: usecase.RecordExpenseInput{
				TripID:   "trip-1",
				Amount:   decimal.NewFromInt(100),
				Currency: "USD",
				PaidBy:   "u-a",
				Splits:   []usecase.SplitInput{splitInput("u-a", 40), splitInput("u-b", 40)},
			},
			setupMocks: func(tripRepo *mocks.MockTripRepository, _ *mocks.MockExpenseRepository) {
				seedTrip(tripRepo, "trip-1")
			},
			expectError: true,
			errorType:   domain.ErrSplitSumMismatch,
		},
		{
			name: "empty splits",
			input: usecase.RecordExpenseInput{
				TripID:   "trip-1",
				Amount:   decimal.NewFromInt(100),
				Currency: "USD",
				PaidBy:   "u-a",
			},
			setupMocks: func(tripRepo *mocks.MockTripRepository, _ *mocks.MockExpenseRepository) {
				seedTrip(tripRepo, "trip-1")
			},
			expectError: true,
			errorType:   domain.ErrEmptySplits,
		},
		{
			name: "repository failure surfaces",
			input: usecase.RecordExpenseInput{
				TripID:   "trip-1",
				Amount:   decimal.NewFromInt(10),
				Currency: "USD",
				PaidBy:   "u-a",
				Splits:   []usecase.SplitInput{splitInput("u-a", 10)},
			},
			setupMocks: func(tripRepo *mocks.MockTripRepository, expenseRepo *mocks.MockExpenseRepository) {
				seedTrip(tripRepo, "trip-1")
				expenseRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
					return errors.New("write failed")
				}
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tripRepo := mocks.NewMockTripRepository()
			expenseRepo := mocks.NewMockExpenseRepository()
			txMgr := mocks.NewMockTransactionManager()
			idGen := mocks.NewMockIDGenerator()
			publisher := mocks.NewMockEventPublisher()

			tt.setupMocks(tripRepo, expenseRepo)

			uc := usecase.NewExpenseUseCase(txMgr, tripRepo, expenseRepo, idGen, publisher, nil, zerolog.Nop())
			expense, err := uc.RecordExpense(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				if got := len(publisher.Events()); got != 0 {
					t.Errorf("expected no events on failure, got %d", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if expense.ID == "" {
				t.Error("expected expense to get an ID")
			}
			if len(expense.Splits) != len(tt.input.Splits) {
				t.Errorf("expected %d splits, got %d", len(tt.input.Splits), len(expense.Splits))
			}

			// Returned splits sum to the expense amount.
			sum := decimal.Zero
			for _, s := range expense.Splits {
				if s.ExpenseID != expense.ID {
					t.Errorf("split %s not linked to expense %s", s.ID, expense.ID)
				}
				sum = sum.Add(s.Amount)
			}
			if sum.Sub(expense.Amount).Abs().GreaterThan(domain.SplitTolerance) {
				t.Errorf("splits sum to %s, expense amount %s", sum, expense.Amount)
			}

			events := publisher.Events()
			if len(events) != tt.wantEvents {
				t.Fatalf("expected %d events, got %d", tt.wantEvents, len(events))
			}
			if events[0].Name != domain.EventExpenseAdded {
				t.Errorf("expected %s event, got %s", domain.EventExpenseAdded, events[0].Name)
			}
			if events[0].TripID != tt.input.TripID {
				t.Errorf("event published to trip %s, want %s", events[0].TripID, tt.input.TripID)
			}
		})
	}
}

func TestExpenseUseCase_ListExpenses_NewestFirst(t *testing.T) {
	tripRepo := mocks.NewMockTripRepository()
	expenseRepo := mocks.NewMockExpenseRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()
	publisher := mocks.NewMockEventPublisher()
	seedTrip(tripRepo, "trip-1")

	uc := usecase.NewExpenseUseCase(txMgr, tripRepo, expenseRepo, idGen, publisher, nil, zerolog.Nop())

	for _, desc := range []string{"first", "second", "third"} {
		_, err := uc.RecordExpense(context.Background(), usecase.RecordExpenseInput{
			TripID:      "trip-1",
			Description: desc,
			Amount:      decimal.NewFromInt(10),
			Currency:    "USD",
			PaidBy:      "u-a",
			Splits:      []usecase.SplitInput{splitInput("u-a", 10)},
		})
		if err != nil {
			t.Fatalf("record %s: %v", desc, err)
		}
	}

	expenses, err := uc.ListExpenses(context.Background(), "trip-1", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(expenses) != 3 {
		t.Fatalf("expected 3 expenses, got %d", len(expenses))
	}
	if expenses[0].Description != "third" || expenses[2].Description != "first" {
		t.Errorf("expenses not newest-first: %s, %s, %s",
			expenses[0].Description, expenses[1].Description, expenses[2].Description)
	}

	page, err := uc.ListExpenses(context.Background(), "trip-1", 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 1 || page[0].Description != "second" {
		t.Fatalf("expected the middle expense on page limit=1 offset=1, got %+v", page)
	}
}

func TestExpenseUseCase_ListExpenses_ClampsPagination(t *testing.T) {
	tripRepo := mocks.NewMockTripRepository()
	expenseRepo := mocks.NewMockExpenseRepository()
	seedTrip(tripRepo, "trip-1")

	var gotLimit, gotOffset int
	expenseRepo.ListByTripFunc = func(ctx context.Context, tripID string, limit, offset int) ([]*domain.Expense, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}

	uc := usecase.NewExpenseUseCase(
		mocks.NewMockTransactionManager(), tripRepo, expenseRepo,
		mocks.NewMockIDGenerator(), mocks.NewMockEventPublisher(), nil, zerolog.Nop())

	if _, err := uc.ListExpenses(context.Background(), "trip-1", 0, -5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 50 || gotOffset != 0 {
		t.Fatalf("expected defaults 50/0, got %d/%d", gotLimit, gotOffset)
	}

	if _, err := uc.ListExpenses(context.Background(), "trip-1", 5000, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 1000 || gotOffset != 10 {
		t.Fatalf("expected limit capped at 1000, got %d/%d", gotLimit, gotOffset)
	}
}
