// Package model defines the core data types shared by the Zentra services and HTTP layer.
package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
)

const (
	maxUserNameLen  = 100
	maxUserEmailLen = 255
)

// emailPattern is intentionally loose: one "@" with non-empty local and
// domain parts containing a dot. Deliverability is the mail server's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserProfile is an application user linked 1:1 to an auth identity by ID.
// Employees created through the admin console share the owner's
// organization_id; the owner's own row points at the organization it manages.
type UserProfile struct {
	ID             string          `json:"id"                        db:"id"`
	Email          string          `json:"email"                     db:"email"`
	Name           string          `json:"name"                      db:"name"`
	Role           domainauth.Role `json:"role"                      db:"role"`
	OrganizationID *string         `json:"organization_id,omitempty" db:"organization_id"`
	CreatedAt      time.Time       `json:"created_at"                db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"                db:"updated_at"`

	// Organization is the owned organization, attached for admin users when
	// one exists. Never persisted through this struct.
	Organization *Organization `json:"organization,omitempty" db:"-"`
}

// CreateUserRequest represents parameters to create a UserProfile.
// ID is the auth identity ID; it is required because profiles are keyed by it.
type CreateUserRequest struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	Role           domainauth.Role `json:"role"`
	OrganizationID *string         `json:"organization_id,omitempty"`
}

// UpdateUserRequest represents parameters to update a UserProfile.
type UpdateUserRequest struct {
	Name           *string          `json:"name,omitempty"`
	Role           *domainauth.Role `json:"role,omitempty"`
	OrganizationID *string          `json:"organization_id,omitempty"`
}

// UsersListOptions controls listing users for the employees screen.
// OrganizationID is required; ExcludeID removes the requesting owner from
// the result set.
type UsersListOptions struct {
	OrganizationID string
	ExcludeID      string
	Limit          int
	Offset         int
}

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id is required")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxUserNameLen {
		return errors.New("name cannot exceed 100 characters")
	}
	if !r.Role.Valid() {
		return errors.New("invalid role")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateUserRequest.
func (r *UpdateUserRequest) HasUpdates() bool {
	return r.Name != nil || r.Role != nil || r.OrganizationID != nil
}

// Validate validates UpdateUserRequest, ensuring at least one field is set.
func (r *UpdateUserRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxUserNameLen {
			return errors.New("name cannot exceed 100 characters")
		}
	}
	if r.Role != nil && !r.Role.Valid() {
		return errors.New("invalid role")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if utf8.RuneCountInString(email) > maxUserEmailLen {
		return errors.New("email cannot exceed 255 characters")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("invalid email address")
	}
	return nil
}
