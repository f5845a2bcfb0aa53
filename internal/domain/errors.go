package domain

import "errors"

var (
	ErrMalformedCredential = errors.New("malformed ticket credential")
	// ErrTicketNotFound covers both a missing order and a credential whose
	// cross-references do not match the stored records; callers must not
	// distinguish the two.
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrUnauthorized      = errors.New("not authorized")
	ErrInvalidID         = errors.New("invalid id")
	ErrEventNotFound     = errors.New("event not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrTitleRequired     = errors.New("event title required")
	ErrInvalidEventDates = errors.New("event end must not precede start")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrDuplicateOrder    = errors.New("buyer already holds a ticket for this event")
	ErrIdentityRequired  = errors.New("identity required")
)
