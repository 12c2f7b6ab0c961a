package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/domain/model"
	"github.com/zentra-pos/zentra/internal/ports"

	"github.com/google/uuid"
)

// InvalidLoginMessage is shown verbatim for any credential failure. The same
// message covers unknown email and wrong password so neither can be probed.
const InvalidLoginMessage = "Invalid login credentials. Please check your email and password."

// ErrInvalidLogin is returned by Login for any credential failure.
var ErrInvalidLogin = errors.New(InvalidLoginMessage)

var errSessionExpired = errors.New("session expired")

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Passwords ports.PasswordAuthenticator
	Provider  ports.AuthProvider
	Sessions  ports.SessionStore
	Profiles  ports.ProfileResolver
	Logger    *slog.Logger
}

// SessionService orchestrates authentication flows by coordinating credential
// checks, profile resolution, and session persistence. Either a password
// authenticator or an SSO provider (or both) may be configured.
type SessionService struct {
	passwords ports.PasswordAuthenticator
	provider  ports.AuthProvider
	sessions  ports.SessionStore
	profiles  ports.ProfileResolver
	logger    *slog.Logger
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		passwords: opts.Passwords,
		provider:  opts.Provider,
		sessions:  opts.Sessions,
		profiles:  opts.Profiles,
		logger:    logger,
	}
}

// LoginResult contains the established session and the resolved profile.
type LoginResult struct {
	Session domainauth.Session
	Profile *model.UserProfile
}

// Login checks the credentials and establishes a session. Credential failures
// all surface as ErrInvalidLogin; a profile-store outage does not block login.
func (s *SessionService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.passwords == nil {
		return nil, errors.New("password authentication is not configured")
	}
	if email == "" || password == "" {
		return nil, ErrInvalidLogin
	}

	identity, err := s.passwords.SignIn(ctx, email, password)
	if err != nil {
		s.logger.Info("login rejected", "email", email)
		return nil, ErrInvalidLogin
	}

	return s.establishSession(ctx, identity)
}

// SignupInput groups parameters for Signup.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Role     domainauth.Role
}

// Signup registers a new account and logs it in. The requested role defaults
// to admin, so a fresh signup owns an organization.
func (s *SessionService) Signup(ctx context.Context, input SignupInput) (*LoginResult, error) {
	if s.passwords == nil {
		return nil, errors.New("password authentication is not configured")
	}

	role := input.Role
	if !role.Valid() {
		role = domainauth.RoleAdmin
	}

	identity, err := s.passwords.SignUp(ctx, ports.SignUpInput{
		Email:         input.Email,
		Password:      input.Password,
		Name:          input.Name,
		RequestedRole: role,
	})
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	return s.establishSession(ctx, identity)
}

// BeginLoginResult contains the result of beginning an SSO login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an SSO flow and returns the provider auth URL with state and nonce.
func (s *SessionService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.provider == nil {
		return nil, errors.New("SSO authentication is not configured")
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	input := ports.BeginInput{RedirectURL: redirectURL}
	authURL, state, nonce, err := s.provider.Begin(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing an SSO login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin exchanges the authorization code for an identity, resolves the
// profile, and persists a session.
func (s *SessionService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*LoginResult, error) {
	if s.provider == nil {
		return nil, errors.New("SSO authentication is not configured")
	}
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	exchangeInput := ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	}
	identity, err := s.provider.Exchange(ctx, exchangeInput)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	return s.establishSession(ctx, identity)
}

// GetSession retrieves a session by ID. Expired sessions are deleted and
// reported as an error.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session. It is best-effort: store failures are logged and
// the caller proceeds to clear the cookie regardless.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("session delete failed during logout", "error", err)
	}

	return nil
}

// establishSession resolves the profile for an identity and persists a new
// session. Profile resolution failure falls back to a minimal profile built
// from the identity itself.
func (s *SessionService) establishSession(ctx context.Context, identity domainauth.Identity) (*LoginResult, error) {
	profile := s.resolveProfile(ctx, identity)

	session := domainauth.Session{
		ID:        generateSessionID(),
		UserID:    profile.ID,
		Email:     profile.Email,
		Name:      profile.Name,
		Role:      profile.Role,
		ExpiresAt: identity.ExpiresAt,
	}
	if profile.OrganizationID != nil {
		session.OrganizationID = *profile.OrganizationID
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &LoginResult{Session: session, Profile: profile}, nil
}

func (s *SessionService) resolveProfile(ctx context.Context, identity domainauth.Identity) *model.UserProfile {
	if s.profiles != nil {
		profile, err := s.profiles.Resolve(ctx, identity)
		if err == nil && profile != nil {
			return profile
		}
		if err != nil {
			s.logger.Warn("profile resolution failed, using identity fallback",
				"user_id", identity.UserID, "error", err)
		}
	}

	now := time.Now()
	return &model.UserProfile{
		ID:        identity.UserID,
		Email:     identity.Email,
		Name:      defaultName(identity),
		Role:      defaultRole(identity),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	return uuid.New().String()
}
