package domain

// Event names broadcast on trip channels.
const (
	EventExpenseAdded    = "expense-added"
	EventSettlementAdded = "settlement-added"
	EventMemberAdded     = "member-added"
	EventActivityAdded   = "activity-added"
	EventActivityUpdated = "activity-updated"
	EventActivityDeleted = "activity-deleted"
	EventVoteCreated     = "vote-created"
	EventVoteResponse    = "vote-response"
	EventDocumentAdded   = "document-added"
)

// Event is the envelope broadcast to every subscriber of a trip
// channel, the originator included. The payload is a hint: consumers
// re-fetch the canonical resource on receipt and never apply an event
// as an incremental diff. Delivery is at-most-once with no replay; a
// client offline at publish time misses the event and reconciles on
// its own reconnect-time re-fetch.
type Event struct {
	TripID  string `json:"trip_id"`
	Name    string `json:"name"`
	Payload any    `json:"payload,omitempty"`
}
