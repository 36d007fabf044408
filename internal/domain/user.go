package domain

import "time"

// User represents a registered participant.
type User struct {
	ID        string
	Name      string
	Email     *string
	CreatedAt time.Time
}
