package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tripledger/internal/usecase"
)

// CreateUserRequest represents a request to register a user.
type CreateUserRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Name:  r.Name,
		Email: r.Email,
	}
}

// CreateTripRequest represents a request to create a trip.
type CreateTripRequest struct {
	Name        string     `json:"name"`
	Destination string     `json:"destination"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	OrganizerID string     `json:"organizer_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTripRequest) ToUseCaseInput() usecase.CreateTripInput {
	return usecase.CreateTripInput{
		Name:        r.Name,
		Destination: r.Destination,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		OrganizerID: r.OrganizerID,
	}
}

// AddMemberRequest represents a request to add a trip member.
type AddMemberRequest struct {
	UserID      string `json:"user_id"`
	Role        string `json:"role,omitempty"`
	Permissions string `json:"permissions,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddMemberRequest) ToUseCaseInput(tripID string) usecase.AddMemberInput {
	return usecase.AddMemberInput{
		TripID:      tripID,
		UserID:      r.UserID,
		Role:        r.Role,
		Permissions: r.Permissions,
	}
}

// SplitRequest is one user's share in a create-expense request.
type SplitRequest struct {
	UserID     string           `json:"user_id"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// CreateExpenseRequest represents a request to record an expense.
type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	PayerID     string          `json:"payer_id"`
	Date        time.Time       `json:"date"`
	Splits      []SplitRequest  `json:"splits"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput(tripID string) usecase.RecordExpenseInput {
	splits := make([]usecase.SplitInput, len(r.Splits))
	for i, s := range r.Splits {
		splits[i] = usecase.SplitInput{
			UserID:     s.UserID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		}
	}
	return usecase.RecordExpenseInput{
		TripID:      tripID,
		Description: r.Description,
		Amount:      r.Amount,
		Currency:    r.Currency,
		PaidBy:      r.PayerID,
		Date:        r.Date,
		Splits:      splits,
	}
}

// CreateSettlementRequest represents a request to record a settlement
// payment.
type CreateSettlementRequest struct {
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSettlementRequest) ToUseCaseInput(tripID string) usecase.RecordSettlementInput {
	return usecase.RecordSettlementInput{
		TripID:     tripID,
		FromUserID: r.FromUserID,
		ToUserID:   r.ToUserID,
		Amount:     r.Amount,
	}
}

// CreateActivityRequest represents a request to create an activity.
type CreateActivityRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        *string `json:"time,omitempty"`
	Location    *string `json:"location,omitempty"`
	Position    int     `json:"position"`
	CreatedBy   string  `json:"created_by"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateActivityRequest) ToUseCaseInput(tripID string) usecase.CreateActivityInput {
	return usecase.CreateActivityInput{
		TripID:      tripID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
		Position:    r.Position,
		CreatedBy:   r.CreatedBy,
	}
}

// UpdateActivityRequest represents a request to update an activity.
type UpdateActivityRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        *string `json:"time,omitempty"`
	Location    *string `json:"location,omitempty"`
	Position    int     `json:"position"`
	Status      string  `json:"status,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateActivityRequest) ToUseCaseInput(id string) usecase.UpdateActivityInput {
	return usecase.UpdateActivityInput{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
		Position:    r.Position,
		Status:      r.Status,
	}
}

// CreateVoteRequest represents a request to open a poll.
type CreateVoteRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	CreatedBy   string   `json:"created_by"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateVoteRequest) ToUseCaseInput(tripID string) usecase.CreateVoteInput {
	return usecase.CreateVoteInput{
		TripID:      tripID,
		Title:       r.Title,
		Description: r.Description,
		Options:     r.Options,
		CreatedBy:   r.CreatedBy,
	}
}

// VoteResponseRequest represents a request to answer a poll.
type VoteResponseRequest struct {
	UserID string `json:"user_id"`
	Option string `json:"option"`
}

// ToUseCaseInput converts to use case input.
func (r *VoteResponseRequest) ToUseCaseInput(voteID string) usecase.RespondInput {
	return usecase.RespondInput{
		VoteID: voteID,
		UserID: r.UserID,
		Option: r.Option,
	}
}

// CreateDocumentRequest represents a request to attach a document.
type CreateDocumentRequest struct {
	ActivityID *string `json:"activity_id,omitempty"`
	Name       string  `json:"name"`
	FilePath   string  `json:"file_path"`
	FileType   *string `json:"file_type,omitempty"`
	UploadedBy string  `json:"uploaded_by"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDocumentRequest) ToUseCaseInput(tripID string) usecase.AddDocumentInput {
	return usecase.AddDocumentInput{
		TripID:     tripID,
		ActivityID: r.ActivityID,
		Name:       r.Name,
		FilePath:   r.FilePath,
		FileType:   r.FileType,
		UploadedBy: r.UploadedBy,
	}
}
