package domain

import "time"

// Vote is a group poll within a trip.
type Vote struct {
	ID          string
	TripID      string
	Title       string
	Description string
	Options     []string
	CreatedBy   string
	CreatedAt   time.Time

	// CreatedByName is the author's display name, joined in on read.
	CreatedByName string
	Responses     []*VoteResponse
}

// VoteResponse is one user's answer; re-voting replaces the previous
// answer.
type VoteResponse struct {
	ID     string
	VoteID string
	UserID string
	Option string

	// UserName is the responder's display name, joined in on read.
	UserName string
}
