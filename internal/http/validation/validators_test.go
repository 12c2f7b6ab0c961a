package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	v := Required("name")

	assert.Empty(t, v("something"))
	assert.Equal(t, "name is required", v(""))
	assert.Equal(t, "name is required", v("   "))
}

func TestRequiredRange(t *testing.T) {
	v := RequiredRange("name", 2, 5)

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"valid", "abc", ""},
		{"at minimum", "ab", ""},
		{"at maximum", "abcde", ""},
		{"empty", "", "name is required"},
		{"too short", "a", "name must be between 2 and 5 characters"},
		{"too long", "abcdef", "name must be between 2 and 5 characters"},
		{"trims before counting", "  abc  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v(tt.value))
		})
	}
}

func TestEmail(t *testing.T) {
	v := Email("email")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"valid", "user@example.com", ""},
		{"subdomain", "user@mail.example.com", ""},
		{"empty", "", "email is required"},
		{"no at", "userexample.com", "email must be a valid email address"},
		{"no domain dot", "user@example", "email must be a valid email address"},
		{"spaces", "user name@example.com", "email must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v(tt.value))
		})
	}
}

func TestPassword(t *testing.T) {
	v := Password("password", 8)

	assert.Empty(t, v("longenough"))
	assert.Equal(t, "password is required", v(""))
	assert.Equal(t, "password must be at least 8 characters", v("short"))
}

func TestOneOf(t *testing.T) {
	v := OneOf("role", "manager", "staff")

	assert.Empty(t, v("manager"))
	assert.Empty(t, v("staff"))
	assert.Equal(t, "role must be one of: manager, staff", v("admin"))
	assert.Equal(t, "role must be one of: manager, staff", v(""))
}

func TestOptional(t *testing.T) {
	v := Optional(Email("email"))

	assert.Empty(t, v(""))
	assert.Empty(t, v("   "))
	assert.Empty(t, v("user@example.com"))
	assert.Equal(t, "email must be a valid email address", v("not-an-email"))
}

func TestApply(t *testing.T) {
	rules := map[string][]Validator{
		"email":    {Email("email")},
		"password": {Password("password", 8)},
	}

	errs := Apply(map[string]string{"email": "user@example.com", "password": "hunter22!"}, rules)
	assert.Empty(t, errs)

	errs = Apply(map[string]string{"email": "bad", "password": ""}, rules)
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "password is required", errs["password"])
}
