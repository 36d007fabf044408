package domain

import "time"

// Member roles and permissions.
const (
	RoleOrganizer = "organizer"
	RoleMember    = "member"

	PermissionEdit = "edit"
	PermissionView = "view"
)

// Trip represents a shared trip with its own ledger and channel.
type Trip struct {
	ID          string
	Name        string
	Destination string
	StartDate   *time.Time
	EndDate     *time.Time
	OrganizerID string
	CreatedAt   time.Time
}

// TripMember links a user to a trip.
type TripMember struct {
	ID          string
	TripID      string
	UserID      string
	Role        string
	Permissions string
	JoinedAt    time.Time

	// Name is the user's display name, joined in on read.
	Name string
}
