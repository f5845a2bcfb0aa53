// Package ticket implements the credential carried by a scannable
// ticket: a compact, reversible reference to an order, its event, and
// the event's organizer. The credential is an identifier carrier, not a
// secret; possession grants viewing, never redemption.
package ticket

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/atpritam/Event-Flow/internal/domain"
)

// Credential is the {eventId, orderId, organizerId} tuple identifying a
// specific ticket. It is derived, never persisted.
type Credential struct {
	EventID     string `json:"eventId"`
	OrderID     string `json:"orderId"`
	OrganizerID string `json:"organizerId"`
}

// Encode serializes the credential into its transportable token form.
func Encode(c Credential) string {
	// Marshal of a flat string struct cannot fail.
	b, _ := json.Marshal(c)
	return string(b)
}

// Decode parses a token back into a credential. Non-JSON input or a
// token missing any of the three fields yields ErrMalformedCredential;
// callers treat that as "invalid ticket", never as a crash.
func Decode(token string) (Credential, error) {
	dec := json.NewDecoder(strings.NewReader(token))
	dec.DisallowUnknownFields()

	var c Credential
	if err := dec.Decode(&c); err != nil {
		return Credential{}, domain.ErrMalformedCredential
	}
	if c.EventID == "" || c.OrderID == "" || c.OrganizerID == "" {
		return Credential{}, domain.ErrMalformedCredential
	}
	return c, nil
}

// PayloadURL builds the URL embedded in the scannable code:
// <origin>/ticket-info?data=<percent-encoded token>.
func PayloadURL(origin string, c Credential) string {
	return strings.TrimRight(origin, "/") + "/ticket-info?data=" + url.QueryEscape(Encode(c))
}

// DecodeQueryParam reverses the query-string embedding performed by
// PayloadURL. The net/http layer already unescapes query values, so the
// raw value is tried first; a still percent-encoded value is unescaped
// and retried before giving up.
func DecodeQueryParam(data string) (Credential, error) {
	c, err := Decode(data)
	if err == nil {
		return c, nil
	}
	unescaped, uerr := url.QueryUnescape(data)
	if uerr != nil {
		return Credential{}, domain.ErrMalformedCredential
	}
	return Decode(unescaped)
}
