package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tripledger/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
}

// TripRepository defines data access for trips.
type TripRepository interface {
	Create(ctx context.Context, tx Transaction, trip *domain.Trip) error
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Trip, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Trip, error)
}

// MemberRepository defines data access for trip members.
type MemberRepository interface {
	Create(ctx context.Context, tx Transaction, member *domain.TripMember) error
	ListByTrip(ctx context.Context, tripID string) ([]*domain.TripMember, error)
}

// ExpenseRepository defines data access for expenses. Create writes
// the expense and all of its splits inside the given transaction; an
// expense must never be visible without its splits.
type ExpenseRepository interface {
	Create(ctx context.Context, tx Transaction, expense *domain.Expense) error
	ListByTrip(ctx context.Context, tripID string, limit, offset int) ([]*domain.Expense, error)
	ListAllByTrip(ctx context.Context, tripID string) ([]*domain.Expense, error)
}

// SettlementRepository defines data access for recorded settlement
// payments.
type SettlementRepository interface {
	Create(ctx context.Context, settlement *domain.Settlement) error
	ListByTrip(ctx context.Context, tripID string) ([]*domain.Settlement, error)
}

// ActivityRepository defines data access for itinerary activities.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	ListByTrip(ctx context.Context, tripID string) ([]*domain.Activity, error)
	Update(ctx context.Context, activity *domain.Activity) error
	Delete(ctx context.Context, id string) error
}

// VoteRepository defines data access for votes and responses.
type VoteRepository interface {
	Create(ctx context.Context, vote *domain.Vote) error
	GetByID(ctx context.Context, id string) (*domain.Vote, error)
	ListByTrip(ctx context.Context, tripID string) ([]*domain.Vote, error)
	UpsertResponse(ctx context.Context, response *domain.VoteResponse) error
}

// DocumentRepository defines data access for document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, document *domain.Document) error
	ListByTrip(ctx context.Context, tripID string, activityID *string) ([]*domain.Document, error)
}

// EventPublisher broadcasts an event to a trip's channel. Delivery is
// at-most-once; a publish failure must not fail the write it follows.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RateProvider looks up currency exchange rates against a base
// currency from an external service.
type RateProvider interface {
	Rates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
