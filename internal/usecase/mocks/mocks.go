package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc   func(ctx context.Context, user *domain.User) error
	GetByIDFunc  func(ctx context.Context, id string) (*domain.User, error)
	GetByIDsFunc func(ctx context.Context, ids []string) (map[string]*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result[id] = u
		}
	}
	return result, nil
}

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	CreateFunc     func(ctx context.Context, tx usecase.Transaction, trip *domain.Trip) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Trip, error)
	ListFunc       func(ctx context.Context, limit, offset int) ([]*domain.Trip, error)
	ListByUserFunc func(ctx context.Context, userID string, limit, offset int) ([]*domain.Trip, error)
}

func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{trips: make(map[string]*domain.Trip)}
}

func (m *MockTripRepository) Create(ctx context.Context, tx usecase.Transaction, trip *domain.Trip) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, trip)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.trips[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTripNotFound
}

func (m *MockTripRepository) List(ctx context.Context, limit, offset int) ([]*domain.Trip, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var trips []*domain.Trip
	for _, t := range m.trips {
		trips = append(trips, t)
	}
	return trips, nil
}

func (m *MockTripRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Trip, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

// Seed adds a trip directly, bypassing Create.
func (m *MockTripRepository) Seed(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

// MockMemberRepository is a mock implementation of MemberRepository.
type MockMemberRepository struct {
	mu      sync.RWMutex
	members []*domain.TripMember

	CreateFunc     func(ctx context.Context, tx usecase.Transaction, member *domain.TripMember) error
	ListByTripFunc func(ctx context.Context, tripID string) ([]*domain.TripMember, error)
}

func NewMockMemberRepository() *MockMemberRepository {
	return &MockMemberRepository{}
}

func (m *MockMemberRepository) Create(ctx context.Context, tx usecase.Transaction, member *domain.TripMember) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, member)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members = append(m.members, member)
	return nil
}

func (m *MockMemberRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.TripMember, error) {
	if m.ListByTripFunc != nil {
		return m.ListByTripFunc(ctx, tripID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.TripMember
	for _, member := range m.members {
		if member.TripID == tripID {
			result = append(result, member)
		}
	}
	return result, nil
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
// The default Create prepends so ListByTrip returns newest-first like
// the real repository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses []*domain.Expense

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error
	ListByTripFunc    func(ctx context.Context, tripID string, limit, offset int) ([]*domain.Expense, error)
	ListAllByTripFunc func(ctx context.Context, tripID string) ([]*domain.Expense, error)
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{}
}

func (m *MockExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses = append([]*domain.Expense{expense}, m.expenses...)
	return nil
}

func (m *MockExpenseRepository) ListByTrip(ctx context.Context, tripID string, limit, offset int) ([]*domain.Expense, error) {
	if m.ListByTripFunc != nil {
		return m.ListByTripFunc(ctx, tripID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Expense
	for _, e := range m.expenses {
		if e.TripID == tripID {
			result = append(result, e)
		}
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockExpenseRepository) ListAllByTrip(ctx context.Context, tripID string) ([]*domain.Expense, error) {
	if m.ListAllByTripFunc != nil {
		return m.ListAllByTripFunc(ctx, tripID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Expense
	for _, e := range m.expenses {
		if e.TripID == tripID {
			result = append(result, e)
		}
	}
	return result, nil
}

// MockSettlementRepository is a mock implementation of
// SettlementRepository.
type MockSettlementRepository struct {
	mu          sync.RWMutex
	settlements []*domain.Settlement

	CreateFunc     func(ctx context.Context, settlement *domain.Settlement) error
	ListByTripFunc func(ctx context.Context, tripID string) ([]*domain.Settlement, error)
}

func NewMockSettlementRepository() *MockSettlementRepository {
	return &MockSettlementRepository{}
}

func (m *MockSettlementRepository) Create(ctx context.Context, settlement *domain.Settlement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, settlement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlements = append([]*domain.Settlement{settlement}, m.settlements...)
	return nil
}

func (m *MockSettlementRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Settlement, error) {
	if m.ListByTripFunc != nil {
		return m.ListByTripFunc(ctx, tripID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Settlement
	for _, s := range m.settlements {
		if s.TripID == tripID {
			result = append(result, s)
		}
	}
	return result, nil
}

// MockActivityRepository is a mock implementation of
// ActivityRepository.
type MockActivityRepository struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity

	CreateFunc     func(ctx context.Context, activity *domain.Activity) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Activity, error)
	ListByTripFunc func(ctx context.Context, tripID string) ([]*domain.Activity, error)
	UpdateFunc     func(ctx context.Context, activity *domain.Activity) error
	DeleteFunc     func(ctx context.Context, id string) error
}

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{activities: make(map[string]*domain.Activity)}
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, activity)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities[activity.ID] = activity
	return nil
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.activities[id]; ok {
		return a, nil
	}
	return nil, domain.ErrActivityNotFound
}

func (m *MockActivityRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Activity, error) {
	if m.ListByTripFunc != nil {
		return m.ListByTripFunc(ctx, tripID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Activity
	for _, a := range m.activities {
		if a.TripID == tripID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *MockActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, activity)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities[activity.ID] = activity
	return nil
}

func (m *MockActivityRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.activities, id)
	return nil
}

// MockVoteRepository is a mock implementation of VoteRepository.
type MockVoteRepository struct {
	mu    sync.RWMutex
	votes map[string]*domain.Vote

	CreateFunc         func(ctx context.Context, vote *domain.Vote) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Vote, error)
	ListByTripFunc     func(ctx context.Context, tripID string) ([]*domain.Vote, error)
	UpsertResponseFunc func(ctx context.Context, response *domain.VoteResponse) error
}

func NewMockVoteRepository() *MockVoteRepository {
	return &MockVoteRepository{votes: make(map[string]*domain.Vote)}
}

func (m *MockVoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, vote)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.votes[vote.ID] = vote
	return nil
}

func (m *MockVoteRepository) GetByID(ctx context.Context, id string) (*domain.Vote, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.votes[id]; ok {
		return v, nil
	}
	return nil, domain.ErrVoteNotFound
}

func (m *MockVoteRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Vote, error) {
	if m.ListByTripFunc != nil {
		return m.ListByTripFunc(ctx, tripID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Vote
	for _, v := range m.votes {
		if v.TripID == tripID {
			result = append(result, v)
		}
	}
	return result, nil
}

func (m *MockVoteRepository) UpsertResponse(ctx context.Context, response *domain.VoteResponse) error {
	if m.UpsertResponseFunc != nil {
		return m.UpsertResponseFunc(ctx, response)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vote, ok := m.votes[response.VoteID]
	if !ok {
		return domain.ErrVoteNotFound
	}
	for i, r := range vote.Responses {
		if r.UserID == response.UserID {
			vote.Responses[i] = response
			return nil
		}
	}
	vote.Responses = append(vote.Responses, response)
	return nil
}

// MockDocumentRepository is a mock implementation of
// DocumentRepository.
type MockDocumentRepository struct {
	mu        sync.RWMutex
	documents []*domain.Document

	CreateFunc     func(ctx context.Context, document *domain.Document) error
	ListByTripFunc func(ctx context.Context, tripID string, activityID *string) ([]*domain.Document, error)
}

func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{}
}

func (m *MockDocumentRepository) Create(ctx context.Context, document *domain.Document) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, document)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents = append(m.documents, document)
	return nil
}

func (m *MockDocumentRepository) ListByTrip(ctx context.Context, tripID string, activityID *string) ([]*domain.Document, error) {
	if m.ListByTripFunc != nil {
		return m.ListByTripFunc(ctx, tripID, activityID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Document
	for _, d := range m.documents {
		if d.TripID != tripID {
			continue
		}
		if activityID != nil && (d.ActivityID == nil || *d.ActivityID != *activityID) {
			continue
		}
		result = append(result, d)
	}
	return result, nil
}

// MockTransaction is a mock transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock transaction manager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator generates sequential IDs for tests.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%04d", m.next)
}

// MockEventPublisher records published events.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []domain.Event

	PublishFunc func(ctx context.Context, event domain.Event) error
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.Event) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a copy of the recorded events.
func (m *MockEventPublisher) Events() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Event, len(m.events))
	copy(out, m.events)
	return out
}
