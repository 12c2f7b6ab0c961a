package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/domain/model"
	mocks "github.com/zentra-pos/zentra/internal/mocks/auth"
	"github.com/zentra-pos/zentra/internal/ports"
)

func newTestSessionService(passwords ports.PasswordAuthenticator, sessions ports.SessionStore, profiles ports.ProfileResolver) *SessionService {
	return NewSessionService(SessionServiceOptions{
		Passwords: passwords,
		Provider:  mocks.NewMockAuthProvider(),
		Sessions:  sessions,
		Profiles:  profiles,
	})
}

func registeredAuthenticator() *mocks.MockPasswordAuthenticator {
	passwords := mocks.NewMockPasswordAuthenticator()
	passwords.Register(domainauth.Identity{
		UserID:        "user-1",
		Email:         "owner@example.com",
		Name:          "Olivia Owner",
		RequestedRole: domainauth.RoleAdmin,
	}, "hunter22")
	return passwords
}

func TestNewSessionService(t *testing.T) {
	passwords := mocks.NewMockPasswordAuthenticator()
	sessions := mocks.NewMemorySessionStore()

	service := NewSessionService(SessionServiceOptions{
		Passwords: passwords,
		Sessions:  sessions,
	})

	assert.NotNil(t, service)
	assert.Equal(t, passwords, service.passwords)
	assert.Equal(t, sessions, service.sessions)
	assert.NotNil(t, service.logger)
}

func TestSessionService_Login_Success(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := newTestSessionService(registeredAuthenticator(), sessions, &mocks.MockProfileResolver{})

	result, err := service.Login(context.Background(), "owner@example.com", "hunter22")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Session.ID)
	assert.Equal(t, "user-1", result.Session.UserID)
	assert.Equal(t, "owner@example.com", result.Session.Email)
	assert.Equal(t, "Olivia Owner", result.Session.Name)
	assert.Equal(t, domainauth.RoleAdmin, result.Session.Role)
	assert.True(t, result.Session.ExpiresAt.After(time.Now()))
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionService_Login_UnknownEmailGenericError(t *testing.T) {
	service := newTestSessionService(registeredAuthenticator(), mocks.NewMemorySessionStore(), &mocks.MockProfileResolver{})

	result, err := service.Login(context.Background(), "nobody@example.com", "hunter22")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, ErrInvalidLogin, err)
	assert.Equal(t, InvalidLoginMessage, err.Error())
}

func TestSessionService_Login_WrongPasswordSameError(t *testing.T) {
	service := newTestSessionService(registeredAuthenticator(), mocks.NewMemorySessionStore(), &mocks.MockProfileResolver{})

	_, unknownErr := service.Login(context.Background(), "nobody@example.com", "hunter22")
	_, wrongPassErr := service.Login(context.Background(), "owner@example.com", "wrong")

	// Unknown email and wrong password are indistinguishable.
	assert.Equal(t, unknownErr, wrongPassErr)
}

func TestSessionService_Login_EmptyCredentials(t *testing.T) {
	service := newTestSessionService(registeredAuthenticator(), mocks.NewMemorySessionStore(), &mocks.MockProfileResolver{})

	_, err := service.Login(context.Background(), "", "")

	assert.Equal(t, ErrInvalidLogin, err)
}

func TestSessionService_Login_ProfileResolutionFailureFallsBack(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	profiles := &mocks.MockProfileResolver{
		ResolveFunc: func(_ context.Context, _ domainauth.Identity) (*model.UserProfile, error) {
			return nil, errors.New("profile store down")
		},
	}
	service := newTestSessionService(registeredAuthenticator(), sessions, profiles)

	result, err := service.Login(context.Background(), "owner@example.com", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, "user-1", result.Session.UserID)
	assert.Equal(t, "Olivia Owner", result.Session.Name)
	assert.Equal(t, domainauth.RoleAdmin, result.Session.Role)
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionService_Login_SessionSaveError(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	sessions.SaveErr = errors.New("redis down")
	service := newTestSessionService(registeredAuthenticator(), sessions, &mocks.MockProfileResolver{})

	result, err := service.Login(context.Background(), "owner@example.com", "hunter22")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "save session")
}

func TestSessionService_Login_NotConfigured(t *testing.T) {
	service := NewSessionService(SessionServiceOptions{Sessions: mocks.NewMemorySessionStore()})

	_, err := service.Login(context.Background(), "owner@example.com", "hunter22")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSessionService_Signup_DefaultsToAdmin(t *testing.T) {
	passwords := mocks.NewMockPasswordAuthenticator()
	sessions := mocks.NewMemorySessionStore()
	service := newTestSessionService(passwords, sessions, &mocks.MockProfileResolver{})

	result, err := service.Signup(context.Background(), SignupInput{
		Email:    "new@example.com",
		Password: "hunter22",
		Name:     "New Owner",
	})

	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, result.Session.Role)
	assert.Equal(t, "New Owner", result.Session.Name)
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionService_Signup_CarriesRequestedRole(t *testing.T) {
	passwords := mocks.NewMockPasswordAuthenticator()
	service := newTestSessionService(passwords, mocks.NewMemorySessionStore(), &mocks.MockProfileResolver{})

	result, err := service.Signup(context.Background(), SignupInput{
		Email:    "staff@example.com",
		Password: "hunter22",
		Name:     "Sam Staff",
		Role:     domainauth.RoleStaff,
	})

	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleStaff, result.Session.Role)
}

func TestSessionService_Signup_DuplicateEmail(t *testing.T) {
	service := newTestSessionService(registeredAuthenticator(), mocks.NewMemorySessionStore(), &mocks.MockProfileResolver{})

	_, err := service.Signup(context.Background(), SignupInput{
		Email:    "owner@example.com",
		Password: "hunter22",
		Name:     "Olivia Again",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign up")
}

func TestSessionService_BeginLogin_Success(t *testing.T) {
	service := newTestSessionService(nil, mocks.NewMemorySessionStore(), &mocks.MockProfileResolver{})

	result, err := service.BeginLogin(context.Background(), "http://localhost:8080/auth/callback")

	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", result.AuthURL)
	assert.Equal(t, "state-1", result.State)
	assert.Equal(t, "nonce-1", result.Nonce)
}

func TestSessionService_BeginLogin_EmptyRedirectURL(t *testing.T) {
	service := newTestSessionService(nil, mocks.NewMemorySessionStore(), &mocks.MockProfileResolver{})

	result, err := service.BeginLogin(context.Background(), "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "redirect URL is required")
}

func TestSessionService_BeginLogin_NotConfigured(t *testing.T) {
	service := NewSessionService(SessionServiceOptions{Sessions: mocks.NewMemorySessionStore()})

	_, err := service.BeginLogin(context.Background(), "http://localhost:8080/auth/callback")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSessionService_CompleteLogin_Success(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := newTestSessionService(nil, sessions, &mocks.MockProfileResolver{})

	result, err := service.CompleteLogin(context.Background(), CompleteLoginInput{
		Code:  "auth-code",
		State: "state-1",
		Nonce: "nonce-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Session.ID)
	assert.Equal(t, "mock-user-1", result.Session.UserID)
	assert.Equal(t, "mock.user@example.com", result.Session.Email)
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionService_CompleteLogin_MissingParams(t *testing.T) {
	service := newTestSessionService(nil, mocks.NewMemorySessionStore(), &mocks.MockProfileResolver{})
	ctx := context.Background()

	tests := []struct {
		name    string
		input   CompleteLoginInput
		wantErr string
	}{
		{"missing code", CompleteLoginInput{State: "s", Nonce: "n"}, "authorization code is required"},
		{"missing state", CompleteLoginInput{Code: "c", Nonce: "n"}, "state parameter is required"},
		{"missing nonce", CompleteLoginInput{Code: "c", State: "s"}, "nonce parameter is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.CompleteLogin(ctx, tt.input)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSessionService_CompleteLogin_ExchangeError(t *testing.T) {
	provider := &mocks.MockAuthProvider{
		ExchangeFunc: func(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
			return domainauth.Identity{}, errors.New("exchange error")
		},
	}
	service := NewSessionService(SessionServiceOptions{
		Provider: provider,
		Sessions: mocks.NewMemorySessionStore(),
		Profiles: &mocks.MockProfileResolver{},
	})

	result, err := service.CompleteLogin(context.Background(), CompleteLoginInput{
		Code:  "auth-code",
		State: "state-1",
		Nonce: "nonce-1",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "exchange authorization code")
}

func TestSessionService_GetSession_Success(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := newTestSessionService(nil, sessions, &mocks.MockProfileResolver{})
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-1",
		UserID:    "user-1",
		Email:     "owner@example.com",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, sessions.Save(ctx, session))

	result, err := service.GetSession(ctx, "test-session-1")

	require.NoError(t, err)
	assert.Equal(t, session.ID, result.ID)
	assert.Equal(t, session.UserID, result.UserID)
	assert.Equal(t, session.Role, result.Role)
}

func TestSessionService_GetSession_EmptyID(t *testing.T) {
	service := newTestSessionService(nil, mocks.NewMemorySessionStore(), &mocks.MockProfileResolver{})

	result, err := service.GetSession(context.Background(), "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "session ID is required")
}

func TestSessionService_GetSession_NotFound(t *testing.T) {
	service := newTestSessionService(nil, mocks.NewMemorySessionStore(), &mocks.MockProfileResolver{})

	result, err := service.GetSession(context.Background(), "non-existent")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "get session")
}

func TestSessionService_GetSession_Expired(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := newTestSessionService(nil, sessions, &mocks.MockProfileResolver{})
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "expired-session",
		UserID:    "user-1",
		Email:     "owner@example.com",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}
	require.NoError(t, sessions.Save(ctx, session))

	result, err := service.GetSession(ctx, "expired-session")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "session expired")

	// Verify the expired session was cleaned up
	_, err = sessions.Get(ctx, "expired-session")
	assert.Equal(t, mocks.ErrNotFound, err)
}

func TestSessionService_Logout_Success(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := newTestSessionService(nil, sessions, &mocks.MockProfileResolver{})
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, sessions.Save(ctx, session))

	err := service.Logout(ctx, "test-session-1")

	require.NoError(t, err)
	_, err = sessions.Get(ctx, "test-session-1")
	assert.Equal(t, mocks.ErrNotFound, err)
}

func TestSessionService_Logout_EmptyID(t *testing.T) {
	service := newTestSessionService(nil, mocks.NewMemorySessionStore(), &mocks.MockProfileResolver{})

	assert.NoError(t, service.Logout(context.Background(), ""))
}

func TestSessionService_Logout_StoreErrorStillSucceeds(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	sessions.DeleteErr = errors.New("redis down")
	service := newTestSessionService(nil, sessions, &mocks.MockProfileResolver{})

	// Logout is best-effort; the cookie is cleared regardless.
	err := service.Logout(context.Background(), "test-session")

	assert.NoError(t, err)
}

func TestGenerateSessionID(t *testing.T) {
	id1 := generateSessionID()
	id2 := generateSessionID()

	assert.NotEmpty(t, id1)
	assert.NotEmpty(t, id2)
	assert.NotEqual(t, id1, id2) // Should generate unique IDs

	// Should be valid UUID format
	assert.Len(t, id1, 36) // UUID string length
	assert.Contains(t, id1, "-")
}

func TestSessionService_ExpiresAtMissingSession(t *testing.T) {
	// Mock SignIn returning identity with zero expiry still saves a session;
	// the memory store accepts it and GetSession reports it expired.
	passwords := &mocks.MockPasswordAuthenticator{
		SignInFunc: func(_ context.Context, email, _ string) (domainauth.Identity, error) {
			return domainauth.Identity{UserID: "user-9", Email: email}, nil
		},
	}
	sessions := mocks.NewMemorySessionStore()
	service := newTestSessionService(passwords, sessions, &mocks.MockProfileResolver{})

	result, err := service.Login(context.Background(), "x@y.com", "pw")
	require.NoError(t, err)

	_, err = service.GetSession(context.Background(), result.Session.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")
}
