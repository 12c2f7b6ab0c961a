package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleStaff.Valid())
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}

func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		want     bool
	}{
		{"admin meets admin", RoleAdmin, RoleAdmin, true},
		{"admin meets manager", RoleAdmin, RoleManager, true},
		{"admin meets staff", RoleAdmin, RoleStaff, true},
		{"manager meets manager", RoleManager, RoleManager, true},
		{"manager fails admin", RoleManager, RoleAdmin, false},
		{"staff fails manager", RoleStaff, RoleManager, false},
		{"staff meets staff", RoleStaff, RoleStaff, true},
		{"unknown role fails everything", Role("root"), RoleStaff, false},
		{"unknown requirement never satisfied", RoleAdmin, Role("superuser"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.required))
		})
	}
}

func TestSession_IsOwner(t *testing.T) {
	assert.True(t, Session{Role: RoleAdmin}.IsOwner())
	assert.False(t, Session{Role: RoleManager}.IsOwner())
	assert.False(t, Session{}.IsOwner())
}
