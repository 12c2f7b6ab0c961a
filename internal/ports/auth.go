package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/domain/model"
)

// SignUpInput carries inputs for creating a new credential-backed identity.
// Metadata (name, requested role) travels with the identity the same way the
// hosted auth providers carry user metadata.
type SignUpInput struct {
	Email         string
	Password      string
	Name          string
	RequestedRole domainauth.Role
}

// PasswordAuthenticator verifies and provisions credential-backed identities.
type PasswordAuthenticator interface {
	// SignUp registers a new identity. Duplicate emails surface as a conflict.
	SignUp(ctx context.Context, in SignUpInput) (domainauth.Identity, error)

	// SignIn checks the credentials and returns the identity. Unknown email
	// and wrong password are indistinguishable to the caller.
	SignIn(ctx context.Context, email, password string) (domainauth.Identity, error)
}

// BeginInput carries inputs for initiating an SSO auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// ProfileResolver maps an authenticated identity to an application user
// profile, provisioning one (and an organization, for owners) when absent.
type ProfileResolver interface {
	Resolve(ctx context.Context, ident domainauth.Identity) (*model.UserProfile, error)
}
