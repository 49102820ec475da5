// Package policy holds the pure authorization decision applied to every
// protected write. It has no dependencies and no side effects.
package policy

// Actor identifies a caller. Both values are boundary-supplied claims; the
// core never issues or verifies credentials.
type Actor struct {
	ID      string
	IsAdmin bool
}

// System is the actor used by bootstrap and seeding paths.
var System = Actor{IsAdmin: true}

// Anonymous reports whether the actor carries no identity at all.
func (a Actor) Anonymous() bool {
	return a.ID == "" && !a.IsAdmin
}

// Allowed grants access iff the actor is an admin or is the resource owner.
// Admin-only resources pass an empty ownerID, which no non-admin can match.
func Allowed(actor Actor, resourceOwnerID string) bool {
	if actor.IsAdmin {
		return true
	}
	return actor.ID != "" && actor.ID == resourceOwnerID
}
