package types

import "time"

// Role identifies the authorization level of an authenticated user.
// DialPro knows exactly two roles; anything else is rejected at login.
type Role string

const (
	// RoleAdmin grants organization-wide visibility over call records
	// and access to the administrative views.
	RoleAdmin Role = "admin"

	// RoleEmployee restricts visibility to the user's own call records
	// and the employee views.
	RoleEmployee Role = "employee"
)

// Valid reports whether the role is one of the two recognized roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User represents the identity established by a successful login.
// Exactly one User is active per session; it is destroyed on logout.
type User struct {
	// Email is the address the user signed in with.
	Email string `json:"email"`

	// Role determines menu visibility and record scope.
	Role Role `json:"role"`

	// Name is the user's display name. Call log entries reference it
	// loosely via their employee name; no referential integrity is
	// enforced.
	Name string `json:"name"`
}

// Session is the persisted record representing "who is currently logged
// in". At most one Session exists at a time; a valid persisted record on
// process start implies an authenticated state.
type Session struct {
	// User is the identity the session was issued for.
	User User `json:"user"`

	// CreatedAt is the timestamp the session was established.
	CreatedAt time.Time `json:"created_at"`
}
