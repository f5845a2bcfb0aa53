package app

import "github.com/atpritam/Event-Flow/internal/auth"

// ViewerRole selects which of the two ticket views a viewer gets. It
// controls visibility only; RedemptionService re-derives authorization
// independently on every redeem call.
type ViewerRole string

const (
	// RoleOrganizer sees the scanner view with redemption controls.
	RoleOrganizer ViewerRole = "organizer"
	// RoleAttendee sees the ticket display only.
	RoleAttendee ViewerRole = "attendee"
)

// IsOrganizer is the single authorization predicate shared by view
// selection and the redemption guard, so display and enforcement cannot
// drift apart. An absent identity is never the organizer.
func IsOrganizer(viewer *auth.Identity, organizerID string) bool {
	return viewer != nil && organizerID != "" && viewer.Subject == organizerID
}

// RoleFor returns the view a given viewer is shown for a ticket owned
// by organizerID.
func RoleFor(viewer *auth.Identity, organizerID string) ViewerRole {
	if IsOrganizer(viewer, organizerID) {
		return RoleOrganizer
	}
	return RoleAttendee
}

// DisplayStatus is the user-facing state of a scanned ticket.
type DisplayStatus string

const (
	StatusValid      DisplayStatus = "valid"
	StatusMarkedUsed DisplayStatus = "marked_used"
	StatusUsedBefore DisplayStatus = "used_before"
	StatusExpired    DisplayStatus = "expired"
)

// StatusFor computes the display status for a resolved ticket.
// markedNow distinguishes a redemption performed during this scan from
// one that happened earlier. Used-state takes precedence over expiry: a
// redeemed ticket reports its redemption even after the event has ended.
func StatusFor(view TicketView, markedNow bool) DisplayStatus {
	switch {
	case markedNow:
		return StatusMarkedUsed
	case view.Used:
		return StatusUsedBefore
	case !view.Valid:
		return StatusExpired
	default:
		return StatusValid
	}
}
