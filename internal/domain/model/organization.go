//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxOrganizationNameLen = 255
	maxBranchNameLen       = 255
)

// Organization is the tenant record owned by an admin user. The backing
// table is named shops for historical reasons; every admin owns at most one
// organization, keyed by ManagerID.
type Organization struct {
	ID        string    `json:"id"                 db:"id"`
	Name      string    `json:"name"               db:"name"`
	ManagerID string    `json:"manager_id"         db:"manager_id"`
	OrgCode   *string   `json:"org_code,omitempty" db:"org_code"`
	Passkey   *string   `json:"passkey,omitempty"  db:"passkey"`
	CreatedAt time.Time `json:"created_at"         db:"created_at"`
	UpdatedAt time.Time `json:"updated_at"         db:"updated_at"`
}

// Branch is a physical location belonging to an organization.
type Branch struct {
	ID             string    `json:"id"                db:"id"`
	Name           string    `json:"name"              db:"name"`
	OrganizationID string    `json:"organization_id"   db:"organization_id"`
	Address        *string   `json:"address,omitempty" db:"address"`
	CreatedAt      time.Time `json:"created_at"        db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"        db:"updated_at"`
}

// CreateOrganizationRequest represents parameters to create an Organization.
// OrgCode and Passkey are generated by the caller when set.
type CreateOrganizationRequest struct {
	Name      string  `json:"name"`
	ManagerID string  `json:"manager_id"`
	OrgCode   *string `json:"org_code,omitempty"`
	Passkey   *string `json:"passkey,omitempty"`
}

// CreateBranchRequest represents parameters to create a Branch. The
// organization is taken from the authenticated owner, never the request body.
type CreateBranchRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

// UpdateBranchRequest represents parameters to update a Branch.
type UpdateBranchRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

// BranchesListOptions controls paging for listing an organization's branches.
type BranchesListOptions struct {
	OrganizationID string
	Limit          int
	Offset         int
}

// Validate validates CreateOrganizationRequest.
func (r *CreateOrganizationRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxOrganizationNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.ManagerID) == "" {
		return errors.New("manager_id is required")
	}
	return nil
}

// Validate validates CreateBranchRequest.
func (r *CreateBranchRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxBranchNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateBranchRequest.
func (r *UpdateBranchRequest) HasUpdates() bool {
	return r.Name != nil || r.Address != nil
}

// Validate validates UpdateBranchRequest, ensuring at least one field is set.
func (r *UpdateBranchRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxBranchNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
	}
	return nil
}
