package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseCreateOwnerFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name: "valid",
			args: []string{"--email", "owner@example.com", "--name", "Owner", "--password", "longenough"},
		},
		{
			name:    "missing email",
			args:    []string{"--name", "Owner", "--password", "longenough"},
			wantErr: "--email is required",
		},
		{
			name:    "missing name",
			args:    []string{"--email", "owner@example.com", "--password", "longenough"},
			wantErr: "--name is required",
		},
		{
			name:    "short password",
			args:    []string{"--email", "owner@example.com", "--name", "Owner", "--password", "short"},
			wantErr: "--password must be at least 8 characters",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := parseCreateOwnerFlags(tc.args)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "owner@example.com", opts.Email)
		})
	}
}

func TestParseSessionClearFlagsRequiresScope(t *testing.T) {
	_, err := parseSessionClearFlags(nil)
	require.ErrorContains(t, err, "--email or --all is required")

	opts, err := parseSessionClearFlags([]string{"--all", "--dry-run"})
	require.NoError(t, err)
	require.True(t, opts.All)
	require.True(t, opts.DryRun)
}

func TestIsLikelyRemoteHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", false},
		{"127.0.0.1", false},
		{"::1", false},
		{"dev-box.local", false},
		{"", false},
		{"10.1.2.3", true},
		{"db.internal.example.com", true},
	}

	for _, tc := range tests {
		t.Run(tc.host, func(t *testing.T) {
			require.Equal(t, tc.want, isLikelyRemoteHost(tc.host))
		})
	}
}

func TestParseMigrateFlagsRejectsNonPositiveTimeout(t *testing.T) {
	_, err := parseMigrateFlags([]string{"--timeout", "0s"})
	require.ErrorContains(t, err, "--timeout must be greater than zero")

	opts, err := parseMigrateFlags(nil)
	require.NoError(t, err)
	require.Equal(t, 5*time.Minute, opts.Timeout)
}

func TestRenderExpiry(t *testing.T) {
	require.Equal(t, "expired", renderExpiry(time.Now().Add(-time.Minute)))
	require.NotEqual(t, "expired", renderExpiry(time.Now().Add(time.Hour)))
}
