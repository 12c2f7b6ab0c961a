package password

// Package password provides the credential-backed PasswordAuthenticator,
// verifying bcrypt hashes stored alongside identities.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/zentra-pos/zentra/internal/data"
	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/ports"
)

// ErrInvalidCredentials is returned whenever sign-in fails, whether the email
// is unknown or the password is wrong. Callers must not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

// IdentityStore is the subset of data.IdentityRepo the authenticator needs.
type IdentityStore interface {
	Create(ctx context.Context, params data.CreateIdentityParams) (*data.IdentityRecord, error)
	GetByEmail(ctx context.Context, email string) (*data.IdentityRecord, error)
}

// Authenticator implements ports.PasswordAuthenticator against the identities table.
type Authenticator struct {
	store           IdentityStore
	cost            int
	sessionDuration time.Duration
}

// Options configures the Authenticator.
type Options struct {
	Store IdentityStore
	// Cost is the bcrypt cost; defaults to bcrypt.DefaultCost when zero.
	Cost int
	// SessionDuration bounds returned identity expiry; defaults to 8h when zero.
	SessionDuration time.Duration
}

// NewAuthenticator constructs an Authenticator from Options.
func NewAuthenticator(opts Options) (*Authenticator, error) {
	if opts.Store == nil {
		return nil, errors.New("password auth: identity store is required")
	}
	cost := opts.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dur := opts.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Authenticator{store: opts.Store, cost: cost, sessionDuration: dur}, nil
}

// SignUp registers a new identity with a bcrypt-hashed password.
func (a *Authenticator) SignUp(ctx context.Context, in ports.SignUpInput) (domainauth.Identity, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return domainauth.Identity{}, errors.New("email is required")
	}
	if in.Password == "" {
		return domainauth.Identity{}, errors.New("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.cost)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	rec, err := a.store.Create(ctx, data.CreateIdentityParams{
		Email:         email,
		PasswordHash:  string(hash),
		Name:          strings.TrimSpace(in.Name),
		RequestedRole: string(in.RequestedRole),
	})
	if err != nil {
		return domainauth.Identity{}, err
	}

	return a.identityFor(rec), nil
}

// SignIn verifies the credentials. A missing identity and a bad password both
// return ErrInvalidCredentials; the password check runs either way to keep
// the timing comparable.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (domainauth.Identity, error) {
	rec, err := a.store.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, data.ErrIdentityNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return domainauth.Identity{}, ErrInvalidCredentials
		}
		return domainauth.Identity{}, err
	}

	if compareErr := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); compareErr != nil {
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	return a.identityFor(rec), nil
}

func (a *Authenticator) identityFor(rec *data.IdentityRecord) domainauth.Identity {
	return domainauth.Identity{
		UserID:        rec.ID,
		Email:         rec.Email,
		Name:          rec.Name,
		RequestedRole: domainauth.Role(rec.RequestedRole),
		ExpiresAt:     time.Now().Add(a.sessionDuration),
	}
}

// dummyHash is compared against when the email is unknown.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("zentra-dummy-password"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return h
}()
