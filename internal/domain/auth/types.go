package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	// RoleAdmin is the organization owner role. New signups default to it.
	RoleAdmin Role = "admin"
	// RoleManager is a branch-manager role assigned via the employees screen.
	RoleManager Role = "manager"
	// RoleStaff is the lowest tier.
	RoleStaff Role = "staff"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	default:
		return false
	}
}

// AtLeast reports whether r meets or exceeds required in the
// staff < manager < admin ordering. Unknown roles never satisfy anything.
func (r Role) AtLeast(required Role) bool {
	rank := map[Role]int{RoleStaff: 0, RoleManager: 1, RoleAdmin: 2}
	have, okHave := rank[r]
	want, okWant := rank[required]
	if !okHave || !okWant {
		return false
	}
	return have >= want
}

// Identity represents the authenticated principal returned by a credential
// or SSO provider. Adapters map provider-specific records into this shape.
type Identity struct {
	UserID        string // stable user identifier (uuid or OIDC sub)
	Email         string
	Name          string // display name from signup metadata; may be empty
	RequestedRole Role   // role requested at signup; empty means default
	ExpiresAt     time.Time
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           Role      `json:"role"`
	OrganizationID string    `json:"organization_id,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// IsOwner returns true if the session belongs to an organization owner.
func (s Session) IsOwner() bool { return s.Role == RoleAdmin }
