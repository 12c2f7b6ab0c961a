package bootstrap

import (
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/zentra-pos/zentra/config"
	"github.com/zentra-pos/zentra/internal/adapters/devauth"
	"github.com/zentra-pos/zentra/internal/adapters/oidc"
	"github.com/zentra-pos/zentra/internal/adapters/password"
	redisstore "github.com/zentra-pos/zentra/internal/adapters/redis"
	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/ports"
)

// authDeps groups dependencies for buildAuth.
type authDeps struct {
	Config     config.AuthConfig
	Identities password.IdentityStore
	Redis      goredis.UniversalClient
	Logger     *slog.Logger
}

// authAdapters holds the wired authentication adapters. Passwords and
// Provider stay nil when the mode does not configure them.
type authAdapters struct {
	Passwords ports.PasswordAuthenticator
	Provider  ports.AuthProvider
	Sessions  ports.SessionStore
}

// buildAuth wires the authenticators for the configured AUTH_MODE.
// Password auth is always available; oauth adds an OIDC provider and mock
// swaps in the dev provider.
func buildAuth(deps authDeps) (authAdapters, error) {
	adapters := authAdapters{
		Sessions: redisstore.NewSessionStore(deps.Redis),
	}

	authenticator, err := password.NewAuthenticator(password.Options{
		Store:           deps.Identities,
		Cost:            deps.Config.BcryptCost,
		SessionDuration: deps.Config.SessionDuration,
	})
	if err != nil {
		return authAdapters{}, fmt.Errorf("password auth: %w", err)
	}
	adapters.Passwords = authenticator

	switch deps.Config.Mode {
	case config.AuthModePassword:
		// Credentials only; no SSO provider.

	case config.AuthModeOAuth:
		provider, providerErr := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     deps.Config.OAuth.ClientID,
			ClientSecret: deps.Config.OAuth.ClientSecret,
			RedirectURL:  deps.Config.OAuth.RedirectURL,
			Scope:        deps.Config.OAuth.Scope,
			DiscoveryURL: deps.Config.OAuth.DiscoveryURL,
		})
		if providerErr != nil {
			return authAdapters{}, fmt.Errorf("oidc provider: %w", providerErr)
		}
		adapters.Provider = provider

	case config.AuthModeMock:
		deps.Logger.Warn("mock authentication enabled; do not use in production")
		provider, providerErr := devauth.NewProvider(devauth.Config{
			UserID:          deps.Config.DevAuth.UserID,
			Email:           deps.Config.DevAuth.Email,
			Name:            deps.Config.DevAuth.Name,
			Role:            domainauth.Role(deps.Config.DevAuth.Role),
			SessionDuration: deps.Config.SessionDuration,
		})
		if providerErr != nil {
			return authAdapters{}, fmt.Errorf("dev auth provider: %w", providerErr)
		}
		adapters.Provider = provider

	default:
		return authAdapters{}, fmt.Errorf("unsupported auth mode: %q", deps.Config.Mode)
	}

	return adapters, nil
}

// SSOEnabled reports whether the configured mode exposes an SSO login flow.
func SSOEnabled(mode config.AuthMode) bool {
	return mode == config.AuthModeOAuth || mode == config.AuthModeMock
}
