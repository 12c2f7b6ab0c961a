package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/zentra-pos/zentra/config"
	"github.com/zentra-pos/zentra/internal/data"
)

type stubIdentityStore struct{}

func (stubIdentityStore) Create(context.Context, data.CreateIdentityParams) (*data.IdentityRecord, error) {
	return nil, data.ErrEmailExists
}

func (stubIdentityStore) GetByEmail(context.Context, string) (*data.IdentityRecord, error) {
	return nil, data.ErrIdentityNotFound
}

func TestBuildAuthPasswordModeHasNoProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	adapters, err := buildAuth(authDeps{
		Config:     config.AuthConfig{Mode: config.AuthModePassword},
		Identities: stubIdentityStore{},
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("buildAuth() error = %v", err)
	}
	if adapters.Passwords == nil {
		t.Fatal("buildAuth() password authenticator is nil")
	}
	if adapters.Provider != nil {
		t.Fatalf("buildAuth() provider = %v, want nil", adapters.Provider)
	}
	if adapters.Sessions == nil {
		t.Fatal("buildAuth() session store is nil")
	}
}

func TestBuildAuthMockModeWiresDevProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	adapters, err := buildAuth(authDeps{
		Config: config.AuthConfig{
			Mode: config.AuthModeMock,
			DevAuth: config.DevAuthConfig{
				UserID: "dev-user",
				Email:  "dev@example.com",
				Name:   "Dev User",
				Role:   "admin",
			},
		},
		Identities: stubIdentityStore{},
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("buildAuth() error = %v", err)
	}
	if adapters.Provider == nil {
		t.Fatal("buildAuth() provider is nil, want dev provider")
	}
}

func TestBuildAuthRejectsUnknownMode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := buildAuth(authDeps{
		Config:     config.AuthConfig{Mode: config.AuthMode("saml")},
		Identities: stubIdentityStore{},
		Logger:     logger,
	})
	if err == nil {
		t.Fatal("buildAuth() error = nil, want unsupported mode error")
	}
}

func TestSSOEnabled(t *testing.T) {
	tests := []struct {
		mode config.AuthMode
		want bool
	}{
		{config.AuthModePassword, false},
		{config.AuthModeOAuth, true},
		{config.AuthModeMock, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			if got := SSOEnabled(tt.mode); got != tt.want {
				t.Fatalf("SSOEnabled(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}
