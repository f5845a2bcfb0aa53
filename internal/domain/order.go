package domain

import "time"

// Order represents one buyer's purchase of one ticket to one event.
// The checkout flow creates it; after that the only permitted mutation
// is the one-way Used transition performed by the redemption service.
type Order struct {
	ID               string
	EventID          string
	BuyerID          string
	TotalAmountCents int64
	Used             bool
	CreatedAt        time.Time
}
