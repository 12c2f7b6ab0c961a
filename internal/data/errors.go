package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Identity repository sentinels.
	ErrIdentityNotFound = errors.New("identity not found")
	ErrEmailExists      = errors.New("email already registered")

	// User repository sentinels.
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	// Organization repository sentinels.
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrganizationExists   = errors.New("organization already exists for this owner")

	// Branch repository sentinels.
	ErrBranchNotFound = errors.New("branch not found")
)
