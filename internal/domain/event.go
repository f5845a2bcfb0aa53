package domain

import "time"

// Event represents a ticketed event owned by an organizer.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	PriceCents  int64
	IsFree      bool
	OrganizerID string
	CreatedAt   time.Time
}
