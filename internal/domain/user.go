package domain

import "time"

// User mirrors an account at the external identity provider. ID is the
// provider's subject claim, stored verbatim; it is the value compared
// against Event.OrganizerID and Order.BuyerID for authorization.
type User struct {
	ID        string
	Email     string
	Username  string
	FirstName string
	LastName  string
	CreatedAt time.Time
}

// DisplayName is the attendee name shown on a ticket.
func (u User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
