package domain

import "time"

// Document is file metadata attached to a trip, optionally linked to
// an activity. File bytes live outside this system.
type Document struct {
	ID         string
	TripID     string
	ActivityID *string
	Name       string
	FilePath   string
	FileType   *string
	UploadedBy string
	CreatedAt  time.Time
}
