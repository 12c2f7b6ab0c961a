package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/domain/model"
	"github.com/zentra-pos/zentra/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.PasswordAuthenticator = (*MockPasswordAuthenticator)(nil)
	_ ports.AuthProvider          = (*MockAuthProvider)(nil)
	_ ports.SessionStore          = (*MemorySessionStore)(nil)
	_ ports.ProfileResolver       = (*MockProfileResolver)(nil)
)

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// ErrInvalidCredentials mirrors the password adapter's sentinel for tests.
var ErrInvalidCredentials = errors.New("invalid credentials")

// MockPasswordAuthenticator simulates the credential store for tests. With no
// Func overrides it keeps accounts in memory, keyed by lowercase email.
type MockPasswordAuthenticator struct {
	SignUpFunc func(ctx context.Context, in ports.SignUpInput) (domainauth.Identity, error)
	SignInFunc func(ctx context.Context, email, password string) (domainauth.Identity, error)

	accounts map[string]mockAccount
	nextID   int
}

type mockAccount struct {
	identity domainauth.Identity
	password string
}

// NewMockPasswordAuthenticator creates an empty in-memory authenticator.
func NewMockPasswordAuthenticator() *MockPasswordAuthenticator {
	return &MockPasswordAuthenticator{accounts: make(map[string]mockAccount)}
}

// Register adds an account directly, bypassing SignUp.
func (m *MockPasswordAuthenticator) Register(ident domainauth.Identity, password string) {
	if m.accounts == nil {
		m.accounts = make(map[string]mockAccount)
	}
	m.accounts[ident.Email] = mockAccount{identity: ident, password: password}
}

func (m *MockPasswordAuthenticator) SignUp(ctx context.Context, in ports.SignUpInput) (domainauth.Identity, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, in)
	}
	if m.accounts == nil {
		m.accounts = make(map[string]mockAccount)
	}
	if _, exists := m.accounts[in.Email]; exists {
		return domainauth.Identity{}, errors.New("email already registered")
	}
	m.nextID++
	ident := domainauth.Identity{
		UserID:        fmt.Sprintf("mock-id-%d", m.nextID),
		Email:         in.Email,
		Name:          in.Name,
		RequestedRole: in.RequestedRole,
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	m.accounts[in.Email] = mockAccount{identity: ident, password: in.Password}
	return ident, nil
}

func (m *MockPasswordAuthenticator) SignIn(ctx context.Context, email, password string) (domainauth.Identity, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	acct, ok := m.accounts[email]
	if !ok || acct.password != password {
		return domainauth.Identity{}, ErrInvalidCredentials
	}
	ident := acct.identity
	ident.ExpiresAt = time.Now().Add(time.Hour)
	return ident, nil
}

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL     string
	StatePrefix string
	NoncePrefix string
	DefaultUser domainauth.Identity

	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultUser: domainauth.Identity{
			UserID:        "mock-user-1",
			Email:         "mock.user@example.com",
			Name:          "Mock User",
			RequestedRole: domainauth.RoleAdmin,
			ExpiresAt:     time.Now().Add(time.Hour),
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}
	statePrefix := m.StatePrefix
	if statePrefix == "" {
		statePrefix = "state"
	}
	noncePrefix := m.NoncePrefix
	if noncePrefix == "" {
		noncePrefix = "nonce"
	}

	state := fmt.Sprintf("%s-%d", statePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", noncePrefix, m.callCount)

	return authURL, state, nonce, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	user := m.DefaultUser
	if user.UserID == "" {
		user = domainauth.Identity{
			UserID: "mock-user-1",
			Email:  "mock.user@example.com",
			Name:   "Mock User",
		}
	}
	user.ExpiresAt = time.Now().Add(time.Hour)

	return user, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session

	// Optional error injection
	SaveErr   error
	GetErr    error
	DeleteErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if m.GetErr != nil {
		return domainauth.Session{}, m.GetErr
	}
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int { return len(m.sessions) }

// MockProfileResolver is a test double for the profile resolver. With no
// ResolveFunc it echoes the identity back as a profile.
type MockProfileResolver struct {
	ResolveFunc func(ctx context.Context, ident domainauth.Identity) (*model.UserProfile, error)
}

func (m *MockProfileResolver) Resolve(ctx context.Context, ident domainauth.Identity) (*model.UserProfile, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, ident)
	}
	role := ident.RequestedRole
	if !role.Valid() {
		role = domainauth.RoleAdmin
	}
	return &model.UserProfile{
		ID:        ident.UserID,
		Email:     ident.Email,
		Name:      ident.Name,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}
