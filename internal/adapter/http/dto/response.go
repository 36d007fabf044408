package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// TripResponse represents a trip in API responses.
type TripResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Destination string     `json:"destination,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	OrganizerID string     `json:"organizer_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TripFromDomain converts a domain trip to a response.
func TripFromDomain(t *domain.Trip) *TripResponse {
	return &TripResponse{
		ID:          t.ID,
		Name:        t.Name,
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		OrganizerID: t.OrganizerID,
		CreatedAt:   t.CreatedAt,
	}
}

// TripsFromDomain converts domain trips to responses.
func TripsFromDomain(trips []*domain.Trip) []*TripResponse {
	result := make([]*TripResponse, len(trips))
	for i, t := range trips {
		result[i] = TripFromDomain(t)
	}
	return result
}

// MemberResponse represents a trip member in API responses.
type MemberResponse struct {
	ID          string    `json:"id"`
	TripID      string    `json:"trip_id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name,omitempty"`
	Role        string    `json:"role"`
	Permissions string    `json:"permissions"`
	JoinedAt    time.Time `json:"joined_at"`
}

// MemberFromDomain converts a domain member to a response.
func MemberFromDomain(m *domain.TripMember) *MemberResponse {
	return &MemberResponse{
		ID:          m.ID,
		TripID:      m.TripID,
		UserID:      m.UserID,
		Name:        m.Name,
		Role:        m.Role,
		Permissions: m.Permissions,
		JoinedAt:    m.JoinedAt,
	}
}

// MembersFromDomain converts domain members to responses.
func MembersFromDomain(members []*domain.TripMember) []*MemberResponse {
	result := make([]*MemberResponse, len(members))
	for i, m := range members {
		result[i] = MemberFromDomain(m)
	}
	return result
}

// SplitResponse represents an expense split in API responses.
type SplitResponse struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	UserName   string           `json:"user_name,omitempty"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	TripID      string          `json:"trip_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	PayerID     string          `json:"payer_id"`
	PayerName   string          `json:"payer_name,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	Splits      []SplitResponse `json:"splits"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	splits := make([]SplitResponse, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = SplitResponse{
			ID:         s.ID,
			UserID:     s.UserID,
			UserName:   s.UserName,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		}
	}
	return &ExpenseResponse{
		ID:          e.ID,
		TripID:      e.TripID,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		PayerID:     e.PaidBy,
		PayerName:   e.PaidByName,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		Splits:      splits,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// BalanceEntry is one user's position in a balance response. Amounts
// are rounded to two decimal places at this boundary only.
type BalanceEntry struct {
	Paid decimal.Decimal `json:"paid"`
	Owed decimal.Decimal `json:"owed"`
	Net  decimal.Decimal `json:"net"`
	Name string          `json:"name"`
}

// BalancesFromDomain converts computed balances to the keyed response
// shape.
func BalancesFromDomain(balances map[string]*domain.Balance) map[string]BalanceEntry {
	result := make(map[string]BalanceEntry, len(balances))
	for id, b := range balances {
		result[id] = BalanceEntry{
			Paid: b.Paid.Round(2),
			Owed: b.Owed.Round(2),
			Net:  b.Net.Round(2),
			Name: b.Name,
		}
	}
	return result
}

// SettlementTransactionResponse is one proposed payment.
type SettlementTransactionResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// SettlementPlanResponse is the simplified payment plan for a trip.
type SettlementPlanResponse struct {
	Transactions      []SettlementTransactionResponse `json:"transactions"`
	TotalTransactions int                             `json:"totalTransactions"`
}

// SettlementPlanFromDomain converts a payment plan to a response.
func SettlementPlanFromDomain(plan []domain.SettlementTransaction) *SettlementPlanResponse {
	transactions := make([]SettlementTransactionResponse, len(plan))
	for i, tx := range plan {
		transactions[i] = SettlementTransactionResponse{
			From:   tx.From,
			To:     tx.To,
			Amount: tx.Amount.Round(2),
		}
	}
	return &SettlementPlanResponse{
		Transactions:      transactions,
		TotalTransactions: len(transactions),
	}
}

// SettlementResponse represents a recorded settlement payment.
type SettlementResponse struct {
	ID         string          `json:"id"`
	TripID     string          `json:"trip_id"`
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SettlementFromDomain converts a domain settlement to a response.
func SettlementFromDomain(s *domain.Settlement) *SettlementResponse {
	return &SettlementResponse{
		ID:         s.ID,
		TripID:     s.TripID,
		FromUserID: s.FromUserID,
		ToUserID:   s.ToUserID,
		Amount:     s.Amount,
		CreatedAt:  s.CreatedAt,
	}
}

// SettlementsFromDomain converts domain settlements to responses.
func SettlementsFromDomain(settlements []*domain.Settlement) []*SettlementResponse {
	result := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		result[i] = SettlementFromDomain(s)
	}
	return result
}

// ActivityResponse represents an activity in API responses.
type ActivityResponse struct {
	ID          string    `json:"id"`
	TripID      string    `json:"trip_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	Time        *string   `json:"time,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Position    int       `json:"position"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityFromDomain converts a domain activity to a response.
func ActivityFromDomain(a *domain.Activity) *ActivityResponse {
	return &ActivityResponse{
		ID:          a.ID,
		TripID:      a.TripID,
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date,
		Time:        a.Time,
		Location:    a.Location,
		Position:    a.Position,
		Status:      a.Status,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
	}
}

// ActivitiesFromDomain converts domain activities to responses.
func ActivitiesFromDomain(activities []*domain.Activity) []*ActivityResponse {
	result := make([]*ActivityResponse, len(activities))
	for i, a := range activities {
		result[i] = ActivityFromDomain(a)
	}
	return result
}

// VoteAnswerResponse represents one user's answer in API responses.
type VoteAnswerResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name,omitempty"`
	Option   string `json:"option"`
}

// VoteResponse represents a poll in API responses.
type VoteResponse struct {
	ID            string               `json:"id"`
	TripID        string               `json:"trip_id"`
	Title         string               `json:"title"`
	Description   string               `json:"description,omitempty"`
	Options       []string             `json:"options"`
	CreatedBy     string               `json:"created_by"`
	CreatedByName string               `json:"created_by_name,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	Responses     []VoteAnswerResponse `json:"responses"`
}

// VoteFromDomain converts a domain vote to a response.
func VoteFromDomain(v *domain.Vote) *VoteResponse {
	responses := make([]VoteAnswerResponse, len(v.Responses))
	for i, r := range v.Responses {
		responses[i] = VoteAnswerResponse{
			ID:       r.ID,
			UserID:   r.UserID,
			UserName: r.UserName,
			Option:   r.Option,
		}
	}
	return &VoteResponse{
		ID:            v.ID,
		TripID:        v.TripID,
		Title:         v.Title,
		Description:   v.Description,
		Options:       v.Options,
		CreatedBy:     v.CreatedBy,
		CreatedByName: v.CreatedByName,
		CreatedAt:     v.CreatedAt,
		Responses:     responses,
	}
}

// VotesFromDomain converts domain votes to responses.
func VotesFromDomain(votes []*domain.Vote) []*VoteResponse {
	result := make([]*VoteResponse, len(votes))
	for i, v := range votes {
		result[i] = VoteFromDomain(v)
	}
	return result
}

// VoteAnswerFromDomain converts a domain vote response to a response.
func VoteAnswerFromDomain(r *domain.VoteResponse) *VoteAnswerResponse {
	return &VoteAnswerResponse{
		ID:       r.ID,
		UserID:   r.UserID,
		UserName: r.UserName,
		Option:   r.Option,
	}
}

// DocumentResponse represents a document in API responses.
type DocumentResponse struct {
	ID         string    `json:"id"`
	TripID     string    `json:"trip_id"`
	ActivityID *string   `json:"activity_id,omitempty"`
	Name       string    `json:"name"`
	FilePath   string    `json:"file_path"`
	FileType   *string   `json:"file_type,omitempty"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// DocumentFromDomain converts a domain document to a response.
func DocumentFromDomain(d *domain.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:         d.ID,
		TripID:     d.TripID,
		ActivityID: d.ActivityID,
		Name:       d.Name,
		FilePath:   d.FilePath,
		FileType:   d.FileType,
		UploadedBy: d.UploadedBy,
		CreatedAt:  d.CreatedAt,
	}
}

// DocumentsFromDomain converts domain documents to responses.
func DocumentsFromDomain(documents []*domain.Document) []*DocumentResponse {
	result := make([]*DocumentResponse, len(documents))
	for i, d := range documents {
		result[i] = DocumentFromDomain(d)
	}
	return result
}

// ConversionResponse represents a currency conversion result.
type ConversionResponse struct {
	Original  decimal.Decimal `json:"original"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	Converted decimal.Decimal `json:"converted"`
}

// ConversionFromUseCase converts a conversion result to a response.
func ConversionFromUseCase(c *usecase.ConversionResult) *ConversionResponse {
	return &ConversionResponse{
		Original:  c.Original,
		From:      c.From,
		To:        c.To,
		Rate:      c.Rate,
		Converted: c.Converted,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
