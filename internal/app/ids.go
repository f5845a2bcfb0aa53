package app

import "github.com/google/uuid"

func newID() string {
	return uuid.NewString()
}

// validID reports whether s is a well-formed record id. User subjects
// from the identity provider are opaque and never checked with this.
func validID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
