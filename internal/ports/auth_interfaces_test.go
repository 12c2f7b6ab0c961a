package ports_test

import (
	"testing"

	mocks "github.com/zentra-pos/zentra/internal/mocks/auth"
	"github.com/zentra-pos/zentra/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.PasswordAuthenticator = (*mocks.MockPasswordAuthenticator)(nil)
	var _ ports.AuthProvider = (*mocks.MockAuthProvider)(nil)
	var _ ports.SessionStore = (*mocks.MemorySessionStore)(nil)
	var _ ports.ProfileResolver = (*mocks.MockProfileResolver)(nil)
}
