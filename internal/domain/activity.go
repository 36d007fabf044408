package domain

import "time"

// Activity statuses.
const (
	ActivityStatusSuggested = "suggested"
	ActivityStatusConfirmed = "confirmed"
	ActivityStatusRejected  = "rejected"
)

// Activity is an itinerary entry. Manual ordering uses Position within
// a date; the ledger does not depend on activities.
type Activity struct {
	ID          string
	TripID      string
	Title       string
	Description string
	Date        string
	Time        *string
	Location    *string
	Position    int
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
}
